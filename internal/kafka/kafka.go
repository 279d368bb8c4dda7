package kafka

import "context"

// Producer sends a keyed message to a fixed topic.
type Producer interface {
	Send(ctx context.Context, key, value []byte) error
}
