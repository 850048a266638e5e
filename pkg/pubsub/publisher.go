package pubsub

import "context"

// Pack is one message on the bus. Key is used for partitioning.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
	Stop(ctx context.Context) error
}
