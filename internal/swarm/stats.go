package swarm

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

type SwarmCounts struct {
	Seeders  int `json:"seeders"`
	Leechers int `json:"leechers"`
}

// Stats counts seeders and leechers for each of the given files with a
// single peer read. Every requested file is present in the result.
func (s *Service) Stats(ctx context.Context, files []models.File) (map[uuid.UUID]SwarmCounts, error) {
	counts := make(map[uuid.UUID]SwarmCounts, len(files))
	if len(files) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		counts[f.ID] = SwarmCounts{}
		ids = append(ids, f.ID)
	}

	peers, err := s.store.FindPeersByFiles(ctx, ids)
	if err != nil {
		return nil, wrapStore(err)
	}
	for _, p := range peers {
		c, ok := counts[p.FileID]
		if !ok {
			continue
		}
		if p.Status == models.StatusSeeder {
			c.Seeders++
		} else {
			c.Leechers++
		}
		counts[p.FileID] = c
	}
	return counts, nil
}
