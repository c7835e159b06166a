package db

import (
	"context"
)

// OutboxCollection defines the interface for notification outbox operations.
type OutboxCollection interface {
	InsertOutboxEntry(ctx context.Context, entry OutboxEntry) error
	CountPending(ctx context.Context) (int64, error)
}
