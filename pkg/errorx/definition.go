package errorx

var (
	ErrGeneric             = Error{1000, "generic error"}
	ErrBadRequest          = Error{1001, "bad request"}
	ErrBadResponse         = Error{1002, "bad response"}
	ErrInternalServerError = Error{1003, "internal server error"}

	// Transaction queue errors.
	ErrInsufficientBalance = Error{2000, "account balance is below the configured floor"}
	ErrConfirmationDenied  = Error{2001, "transaction was denied before submission"}
	ErrSubmissionTimeout   = Error{2002, "network did not acknowledge the transaction in time"}
	ErrSubmitTransaction   = Error{2003, "cannot submit transaction to the network"}
	ErrTransactionReverted = Error{2004, "transaction was included but reverted"}
)
