package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/swarm"
)

// Fanout delivers every event to each sink in order.
type Fanout []swarm.Notifier

func (f Fanout) Record(ctx context.Context, userID, fileID *uuid.UUID, message string) {
	for _, n := range f {
		if n != nil {
			n.Record(ctx, userID, fileID, message)
		}
	}
}
