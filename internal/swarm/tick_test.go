package swarm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

func TestTickNoLeechers(t *testing.T) {
	env := newTestEnv(t)
	f := env.registerFile(t, "file", 10)
	env.join(t, f.ID, "seed", models.StatusSeeder)

	res, err := env.svc.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("updated = %d, want 0", res.Updated)
	}
	p, _ := env.store.peer(env.store.filterPeers(func(models.Peer) bool { return true })[0].ID)
	if p.Progress != 100 || p.Status != models.StatusSeeder {
		t.Fatalf("seeder must not change: %+v", p)
	}
}

func TestTickAdvancesLeechers(t *testing.T) {
	tests := []struct {
		name         string
		start        float64
		delta        float64
		wantProgress float64
		wantStatus   models.PeerStatus
		wantEvent    bool
	}{
		{"partial step", 0, 12, 12, models.StatusLeecher, false},
		{"reaches exactly 100", 90, 10, 100, models.StatusSeeder, true},
		{"overshoot is capped", 95, 19, 100, models.StatusSeeder, true},
		{"just below completion", 80, 19.5, 99.5, models.StatusLeecher, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.delta)
			fileID := uuid.New()
			p := env.putLeecher(t, fileID, "peer", tt.start)

			res, err := env.svc.Tick(context.Background())
			if err != nil {
				t.Fatalf("Tick: %v", err)
			}
			if res.Updated != 1 {
				t.Fatalf("updated = %d, want 1", res.Updated)
			}
			if got := env.rand.calls[0]; got != [2]float64{minTickDelta, maxTickDelta} {
				t.Fatalf("delta drawn from %v", got)
			}

			got, _ := env.store.peer(p.ID)
			if got.Progress != tt.wantProgress || got.Status != tt.wantStatus {
				t.Fatalf("got %s/%v, want %s/%v", got.Status, got.Progress, tt.wantStatus, tt.wantProgress)
			}
			if got.Version != p.Version+1 {
				t.Fatalf("version = %d, want %d", got.Version, p.Version+1)
			}

			msgs := env.notifier.messages()
			if tt.wantEvent {
				if len(msgs) != 1 || msgs[0] != "peer completed download and became a seeder" {
					t.Fatalf("unexpected events %v", msgs)
				}
				if *env.notifier.events[0].fileID != fileID {
					t.Fatalf("completion event has wrong file")
				}
			} else if len(msgs) != 0 {
				t.Fatalf("unexpected events %v", msgs)
			}
		})
	}
}

func TestTickProgressBounds(t *testing.T) {
	env := newTestEnv(t)
	env.svc.rand = NewRand()
	fileID := uuid.New()

	start := make(map[uuid.UUID]float64)
	for i := 0; i < 100; i++ {
		p := env.putLeecher(t, fileID, "p", float64(i))
		start[p.ID] = p.Progress
	}

	res, err := env.svc.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.Updated != 100 {
		t.Fatalf("updated = %d, want 100", res.Updated)
	}

	completions := 0
	for id, before := range start {
		p, _ := env.store.peer(id)
		if p.Progress < min(100, before+minTickDelta) || p.Progress > min(100, before+maxTickDelta) {
			t.Fatalf("progress %v -> %v outside bounds", before, p.Progress)
		}
		if (p.Progress >= 100) != (p.Status == models.StatusSeeder) {
			t.Fatalf("status %s inconsistent with progress %v", p.Status, p.Progress)
		}
		if p.Status == models.StatusSeeder {
			completions++
		}
	}
	if got := len(env.notifier.messages()); got != completions {
		t.Fatalf("events = %d, completions = %d", got, completions)
	}
}

func TestTickSkipsPeerThatLeft(t *testing.T) {
	env := newTestEnv(t, 50)
	fileID := uuid.New()
	gone := env.putLeecher(t, fileID, "gone", 60)
	stays := env.putLeecher(t, fileID, "stays", 0)

	env.store.afterRead = func() {
		env.store.afterRead = nil
		if err := env.svc.Leave(context.Background(), gone.ID, nil); err != nil {
			t.Errorf("Leave: %v", err)
		}
	}

	res, err := env.svc.Tick(context.Background())
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if res.Updated != 2 {
		t.Fatalf("updated = %d, want 2", res.Updated)
	}
	if _, ok := env.store.peer(gone.ID); ok {
		t.Fatalf("departed peer was resurrected")
	}
	if p, _ := env.store.peer(stays.ID); p.Progress != 50 {
		t.Fatalf("remaining peer progress = %v, want 50", p.Progress)
	}
	for _, m := range env.notifier.messages() {
		if m == "gone completed download and became a seeder" {
			t.Fatalf("no completion event expected for a departed peer")
		}
	}
}

func TestTickSkipsConcurrentlyModifiedPeer(t *testing.T) {
	env := newTestEnv(t, 10)
	p := env.putLeecher(t, uuid.New(), "racer", 30)

	env.store.afterRead = func() {
		env.store.afterRead = nil
		cur, _ := env.store.FindPeerByID(context.Background(), p.ID)
		cur.Progress = 70
		if err := env.store.SavePeer(context.Background(), cur); err != nil {
			t.Errorf("SavePeer: %v", err)
		}
	}

	if _, err := env.svc.Tick(context.Background()); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	got, _ := env.store.peer(p.ID)
	if got.Progress != 70 {
		t.Fatalf("concurrent write lost: progress = %v", got.Progress)
	}
}

func TestTickAggregatesStoreErrors(t *testing.T) {
	env := newTestEnv(t, 10)
	fileID := uuid.New()
	env.putLeecher(t, fileID, "a", 0)
	env.putLeecher(t, fileID, "b", 0)
	env.store.saveErr = errBoom

	res, err := env.svc.Tick(context.Background())
	if !errors.Is(err, ErrStore) || !errors.Is(err, errBoom) {
		t.Fatalf("expected ErrStore wrapping errBoom, got %v", err)
	}
	if res.Updated != 2 {
		t.Fatalf("updated = %d, want 2", res.Updated)
	}
	if got := len(env.rand.calls); got != 2 {
		t.Fatalf("expected every leecher to be attempted, got %d", got)
	}
}

func TestTickReadFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.findErr = errBoom
	if _, err := env.svc.Tick(context.Background()); !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestTickCompletesAfterCancel(t *testing.T) {
	env := newTestEnv(t, 100)
	p := env.putLeecher(t, uuid.New(), "p", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := env.svc.Tick(ctx); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if got, _ := env.store.peer(p.ID); got.Status != models.StatusSeeder {
		t.Fatalf("tick should finish despite cancelled context")
	}
}

func TestTickConcurrentWithLeave(t *testing.T) {
	env := newTestEnv(t)
	env.svc.rand = NewRand()
	fileID := uuid.New()

	var peers []models.Peer
	for i := 0; i < 50; i++ {
		peers = append(peers, env.putLeecher(t, fileID, "p", 0))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			if _, err := env.svc.Tick(context.Background()); err != nil {
				t.Errorf("Tick: %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, p := range peers {
			if err := env.svc.Leave(context.Background(), p.ID, nil); err != nil {
				t.Errorf("Leave: %v", err)
			}
		}
	}()
	wg.Wait()

	for _, p := range peers {
		if _, ok := env.store.peer(p.ID); ok {
			t.Fatalf("peer %s resurrected after leave", p.ID)
		}
	}
}
