package errorx

import "fmt"

type Error struct {
	Code    uint64
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// Wrap keeps the code of the base error but replaces its message. The result
// still matches the base error under errors.Is.
func Wrap(base Error, format string, a ...any) Error {
	return Error{Code: base.Code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}
