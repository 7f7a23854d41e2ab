package activity

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rohits-web03/minitracker/internal/metrics"
	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

// Recorder appends swarm events to the activity log. A failed write is
// logged and counted, never returned.
type Recorder struct {
	store swarm.ActivityStore
	log   zerolog.Logger
}

func NewRecorder(store swarm.ActivityStore, log zerolog.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

func (r *Recorder) Record(ctx context.Context, userID, fileID *uuid.UUID, message string) {
	_, err := r.store.CreateActivity(ctx, models.Activity{
		UserID:  userID,
		FileID:  fileID,
		Message: message,
	})
	if err != nil {
		metrics.ActivityFailuresTotal.WithLabelValues("store").Inc()
		r.log.Error().Err(err).Str("message", message).Msg("Failed to record activity")
	}
}
