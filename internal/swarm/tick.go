package swarm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rohits-web03/minitracker/internal/metrics"
	"github.com/rohits-web03/minitracker/internal/models"
)

const (
	minTickDelta = 5.0
	maxTickDelta = 20.0
)

type TickResult struct {
	// Updated counts the leechers in the snapshot taken at the start of the
	// tick, including those that became seeders during it.
	Updated int `json:"updated"`
}

// Tick advances every leecher of every swarm by one simulation step.
//
// The leecher set is read once; peers that leave or change concurrently are
// skipped for this step. The whole snapshot is always processed, even when a
// caller goes away mid-tick. Write failures on individual peers are reported
// together after the pass.
func (s *Service) Tick(ctx context.Context) (TickResult, error) {
	ctx = context.WithoutCancel(ctx)

	leechers, err := s.store.FindAllLeechers(ctx)
	if err != nil {
		return TickResult{}, wrapStore(err)
	}
	metrics.TicksTotal.Inc()
	metrics.TickLeechers.Set(float64(len(leechers)))

	var errs []error
	for _, p := range leechers {
		err := s.advance(ctx, p)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
			metrics.TickSkippedTotal.Inc()
			s.log.Debug().Str("peerId", p.ID.String()).Err(err).Msg("peer changed during tick, skipped")
		default:
			errs = append(errs, fmt.Errorf("peer %s: %w", p.ID, err))
		}
	}

	result := TickResult{Updated: len(leechers)}
	if len(errs) > 0 {
		return result, fmt.Errorf("%w: %w", ErrStore, errors.Join(errs...))
	}
	return result, nil
}

func (s *Service) advance(ctx context.Context, p models.Peer) error {
	next := p
	next.Progress = math.Min(100, p.Progress+s.rand.Next(minTickDelta, maxTickDelta))
	completed := next.Progress >= 100
	if completed {
		next.Status = models.StatusSeeder
		next.Progress = 100
	}
	next.UpdatedAt = s.now()

	if err := s.store.SavePeer(ctx, next); err != nil {
		return err
	}
	if completed {
		metrics.CompletionsTotal.Inc()
		s.notify(ctx, p.UserID, &p.FileID,
			fmt.Sprintf("%s completed download and became a seeder", p.ClientName))
	}
	return nil
}
