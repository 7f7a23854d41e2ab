package swarm

import (
	"context"
	"time"
)

// RunTicker calls Tick every interval until ctx is done. Tick failures are
// logged and do not stop the loop. It blocks and returns nil on shutdown.
func (s *Service) RunTicker(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			res, err := s.Tick(ctx)
			if err != nil {
				s.log.Error().Err(err).Int("updated", res.Updated).Msg("Auto tick failed")
				continue
			}
			s.log.Debug().Int("updated", res.Updated).Msg("Auto tick")
		}
	}
}
