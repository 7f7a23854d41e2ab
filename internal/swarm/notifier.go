package swarm

import (
	"context"

	"github.com/google/uuid"
)

// Notifier receives one human-readable event per swarm mutation. Record is
// fire-and-forget: implementations report their own failures and never
// return them to the caller.
type Notifier interface {
	Record(ctx context.Context, userID, fileID *uuid.UUID, message string)
}

type nopNotifier struct{}

func (nopNotifier) Record(context.Context, *uuid.UUID, *uuid.UUID, string) {}
