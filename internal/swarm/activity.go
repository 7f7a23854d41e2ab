package swarm

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

const DefaultActivityLimit = 50

// ListActivity returns the most recent events of a file's swarm, newest
// first. A non-positive limit means DefaultActivityLimit.
func (s *Service) ListActivity(ctx context.Context, fileID uuid.UUID, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	acts, err := s.activities.ListActivity(ctx, fileID, limit)
	if err != nil {
		return nil, wrapStore(err)
	}
	return acts, nil
}
