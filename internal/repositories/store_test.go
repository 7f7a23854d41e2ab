package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStore(db)
}

func makeFile(t *testing.T, s *Store, name string) models.File {
	t.Helper()
	f := models.File{
		ID:          uuid.New(),
		Name:        name,
		SizeMB:      25,
		InfoHash:    uuid.NewString()[:20],
		PieceSizeMB: 10,
		PieceCount:  3,
	}
	if err := s.CreateFile(context.Background(), f); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	return f
}

func makePeer(t *testing.T, s *Store, fileID uuid.UUID, status models.PeerStatus) models.Peer {
	t.Helper()
	progress := 0.0
	if status == models.StatusSeeder {
		progress = 100
	}
	p := models.Peer{
		ID:         uuid.New(),
		FileID:     fileID,
		ClientName: "client",
		Status:     status,
		Progress:   progress,
	}
	if err := s.CreatePeer(context.Background(), p); err != nil {
		t.Fatalf("CreatePeer: %v", err)
	}
	return p
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := Open("oracle", ""); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestFileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	f := makeFile(t, s, "ubuntu.iso")

	got, err := s.FindFileByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("FindFileByID: %v", err)
	}
	if got.Name != f.Name || got.PieceCount != 3 || got.InfoHash != f.InfoHash {
		t.Fatalf("unexpected file %+v", got)
	}

	if _, err := s.FindFileByID(ctx, uuid.New()); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	makeFile(t, s, "debian.iso")
	files, err := s.FindFiles(ctx)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
}

func TestPeerQueries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := makeFile(t, s, "a")
	b := makeFile(t, s, "b")
	makePeer(t, s, a.ID, models.StatusSeeder)
	makePeer(t, s, a.ID, models.StatusLeecher)
	makePeer(t, s, b.ID, models.StatusLeecher)

	peers, err := s.FindPeersByFile(ctx, a.ID)
	if err != nil || len(peers) != 2 {
		t.Fatalf("FindPeersByFile: %d peers, err %v", len(peers), err)
	}
	peers, err = s.FindPeersByFiles(ctx, []uuid.UUID{a.ID, b.ID})
	if err != nil || len(peers) != 3 {
		t.Fatalf("FindPeersByFiles: %d peers, err %v", len(peers), err)
	}
	peers, err = s.FindPeersByFiles(ctx, nil)
	if err != nil || len(peers) != 0 {
		t.Fatalf("FindPeersByFiles(nil): %d peers, err %v", len(peers), err)
	}
	leechers, err := s.FindAllLeechers(ctx)
	if err != nil || len(leechers) != 2 {
		t.Fatalf("FindAllLeechers: %d peers, err %v", len(leechers), err)
	}
	for _, p := range leechers {
		if p.Status != models.StatusLeecher {
			t.Fatalf("unexpected status %s", p.Status)
		}
	}
}

func TestDeletePeer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := makePeer(t, s, makeFile(t, s, "a").ID, models.StatusLeecher)

	if err := s.DeletePeer(ctx, p.ID); err != nil {
		t.Fatalf("DeletePeer: %v", err)
	}
	if _, err := s.FindPeerByID(ctx, p.ID); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeletePeer(ctx, p.ID); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestSavePeer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := makePeer(t, s, makeFile(t, s, "a").ID, models.StatusLeecher)

	next := p
	next.Progress = 40
	next.UpdatedAt = time.Now().UTC()
	if err := s.SavePeer(ctx, next); err != nil {
		t.Fatalf("SavePeer: %v", err)
	}
	got, err := s.FindPeerByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("FindPeerByID: %v", err)
	}
	if got.Progress != 40 || got.Version != p.Version+1 {
		t.Fatalf("unexpected peer after save: progress %v version %d", got.Progress, got.Version)
	}

	// Writing from the stale snapshot must not overwrite the newer state.
	stale := p
	stale.Progress = 10
	if err := s.SavePeer(ctx, stale); !errors.Is(err, swarm.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	got, _ = s.FindPeerByID(ctx, p.ID)
	if got.Progress != 40 {
		t.Fatalf("stale write applied: progress %v", got.Progress)
	}
}

func TestSavePeerDoesNotResurrect(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := makePeer(t, s, makeFile(t, s, "a").ID, models.StatusLeecher)

	if err := s.DeletePeer(ctx, p.ID); err != nil {
		t.Fatalf("DeletePeer: %v", err)
	}
	p.Progress = 100
	p.Status = models.StatusSeeder
	if err := s.SavePeer(ctx, p); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindPeerByID(ctx, p.ID); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("deleted peer came back")
	}
}

func TestActivityLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fileID := uuid.New()
	other := uuid.New()

	for i := 1; i <= 5; i++ {
		a, err := s.CreateActivity(ctx, models.Activity{FileID: &fileID, Message: fmt.Sprintf("event %d", i)})
		if err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
		if a.ID == 0 {
			t.Fatalf("expected assigned id")
		}
	}
	if _, err := s.CreateActivity(ctx, models.Activity{FileID: &other, Message: "elsewhere"}); err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	acts, err := s.ListActivity(ctx, fileID, 2)
	if err != nil {
		t.Fatalf("ListActivity: %v", err)
	}
	if len(acts) != 2 || acts[0].Message != "event 5" || acts[1].Message != "event 4" {
		t.Fatalf("unexpected activity %+v", acts)
	}

	acts, err = s.ListActivity(ctx, uuid.New(), 10)
	if err != nil || len(acts) != 0 {
		t.Fatalf("unknown file: %d records, err %v", len(acts), err)
	}
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got, err := s.FindUserByUsername(ctx, "alice"); err != nil || got.ID != u.ID {
		t.Fatalf("FindUserByUsername: %+v, %v", got, err)
	}
	if _, err := s.FindUserByID(ctx, uuid.New()); !errors.Is(err, swarm.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	f := models.File{ID: uuid.New(), Name: "mine", InfoHash: "abc", CreatedBy: &u.ID, PieceSizeMB: 10, PieceCount: 1}
	if err := s.CreateFile(ctx, f); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	p := models.Peer{ID: uuid.New(), FileID: f.ID, UserID: &u.ID, ClientName: "c", Status: models.StatusLeecher}
	if err := s.CreatePeer(ctx, p); err != nil {
		t.Fatalf("CreatePeer: %v", err)
	}

	if n, err := s.CountFilesByCreator(ctx, u.ID); err != nil || n != 1 {
		t.Fatalf("CountFilesByCreator = %d, %v", n, err)
	}
	if n, err := s.CountPeersByUser(ctx, u.ID); err != nil || n != 1 {
		t.Fatalf("CountPeersByUser = %d, %v", n, err)
	}
}

func TestServiceOverSQLite(t *testing.T) {
	s := newTestStore(t)
	svc := swarm.NewService(s, s)
	ctx := context.Background()

	f, err := svc.RegisterFile(ctx, swarm.RegisterFileInput{Name: "distro.iso", SizeMB: 55})
	if err != nil {
		t.Fatalf("RegisterFile: %v", err)
	}
	if f.PieceCount != 6 {
		t.Fatalf("expected 6 pieces, got %d", f.PieceCount)
	}

	var peers []models.Peer
	for i := 0; i < 20; i++ {
		p, err := svc.Join(ctx, swarm.JoinInput{FileID: f.ID, ClientName: fmt.Sprintf("peer-%d", i), Status: models.StatusLeecher})
		if err != nil {
			t.Fatalf("Join: %v", err)
		}
		peers = append(peers, p)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			if _, err := svc.Tick(ctx); err != nil {
				t.Errorf("Tick: %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, p := range peers[:10] {
			if err := svc.Leave(ctx, p.ID, nil); err != nil {
				t.Errorf("Leave: %v", err)
			}
		}
	}()
	wg.Wait()

	remaining, err := svc.ListPeers(ctx, f.ID)
	if err != nil {
		t.Fatalf("ListPeers: %v", err)
	}
	if len(remaining) != 10 {
		t.Fatalf("expected 10 peers after leaves, got %d", len(remaining))
	}
	for _, p := range remaining {
		if p.Status == models.StatusSeeder && p.Progress != 100 {
			t.Fatalf("seeder with progress %v", p.Progress)
		}
		if p.Status == models.StatusLeecher && p.Progress >= 100 {
			t.Fatalf("leecher with progress %v", p.Progress)
		}
	}
}
