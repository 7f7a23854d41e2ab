package swarm

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

type fakeStore struct {
	mu         sync.Mutex
	files      map[uuid.UUID]models.File
	peers      map[uuid.UUID]models.Peer
	activities []models.Activity

	saveErr   error
	findErr   error
	afterRead func() // runs after FindAllLeechers returns its snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		files: make(map[uuid.UUID]models.File),
		peers: make(map[uuid.UUID]models.Peer),
	}
}

func (f *fakeStore) CreateFile(_ context.Context, file models.File) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[file.ID] = file
	return nil
}

func (f *fakeStore) FindFileByID(_ context.Context, id uuid.UUID) (models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[id]
	if !ok {
		return models.File{}, ErrNotFound
	}
	return file, nil
}

func (f *fakeStore) FindFiles(context.Context) ([]models.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.File, 0, len(f.files))
	for _, file := range f.files {
		out = append(out, file)
	}
	return out, nil
}

func (f *fakeStore) CreatePeer(_ context.Context, p models.Peer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peers[p.ID] = p
	return nil
}

func (f *fakeStore) DeletePeer(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.peers[id]; !ok {
		return ErrNotFound
	}
	delete(f.peers, id)
	return nil
}

func (f *fakeStore) FindPeerByID(_ context.Context, id uuid.UUID) (models.Peer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.peers[id]
	if !ok {
		return models.Peer{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) FindPeersByFile(_ context.Context, fileID uuid.UUID) ([]models.Peer, error) {
	return f.filterPeers(func(p models.Peer) bool { return p.FileID == fileID }), nil
}

func (f *fakeStore) FindPeersByFiles(_ context.Context, ids []uuid.UUID) ([]models.Peer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return f.filterPeers(func(p models.Peer) bool { return set[p.FileID] }), nil
}

func (f *fakeStore) FindAllLeechers(context.Context) ([]models.Peer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	out := f.filterPeers(models.Peer.IsLeecher)
	if f.afterRead != nil {
		f.afterRead()
	}
	return out, nil
}

func (f *fakeStore) SavePeer(_ context.Context, p models.Peer) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.peers[p.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != p.Version {
		return ErrConflict
	}
	p.Version++
	f.peers[p.ID] = p
	return nil
}

func (f *fakeStore) CreateActivity(_ context.Context, a models.Activity) (models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uint(len(f.activities) + 1)
	f.activities = append(f.activities, a)
	return a, nil
}

func (f *fakeStore) ListActivity(_ context.Context, fileID uuid.UUID, limit int) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Activity
	for i := len(f.activities) - 1; i >= 0 && len(out) < limit; i-- {
		a := f.activities[i]
		if a.FileID != nil && *a.FileID == fileID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) filterPeers(keep func(models.Peer) bool) []models.Peer {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Peer
	for _, p := range f.peers {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *fakeStore) peer(id uuid.UUID) (models.Peer, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.peers[id]
	return p, ok
}

// scriptedRand returns its values in order, then repeats the last one.
type scriptedRand struct {
	mu     sync.Mutex
	values []float64
	calls  [][2]float64
}

func (r *scriptedRand) Next(min, max float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2]float64{min, max})
	if len(r.values) == 0 {
		return min
	}
	v := r.values[0]
	if len(r.values) > 1 {
		r.values = r.values[1:]
	}
	return v
}

type recordedEvent struct {
	userID  *uuid.UUID
	fileID  *uuid.UUID
	message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Record(_ context.Context, userID, fileID *uuid.UUID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{userID: userID, fileID: fileID, message: message})
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.message)
	}
	return out
}

var errBoom = errors.New("boom")
