package swarm

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

// Store persists files and peers. Lookups of missing records return
// ErrNotFound.
type Store interface {
	CreateFile(ctx context.Context, f models.File) error
	FindFileByID(ctx context.Context, id uuid.UUID) (models.File, error)
	FindFiles(ctx context.Context) ([]models.File, error)

	CreatePeer(ctx context.Context, p models.Peer) error
	DeletePeer(ctx context.Context, id uuid.UUID) error
	FindPeerByID(ctx context.Context, id uuid.UUID) (models.Peer, error)
	FindPeersByFile(ctx context.Context, fileID uuid.UUID) ([]models.Peer, error)
	FindPeersByFiles(ctx context.Context, fileIDs []uuid.UUID) ([]models.Peer, error)
	FindAllLeechers(ctx context.Context) ([]models.Peer, error)

	// SavePeer writes back Status, Progress and UpdatedAt of an existing
	// peer, provided the stored Version still equals p.Version, and bumps
	// the version. It never inserts: a deleted peer yields ErrNotFound and a
	// version mismatch yields ErrConflict.
	SavePeer(ctx context.Context, p models.Peer) error
}

// ActivityStore persists the append-only swarm event log.
type ActivityStore interface {
	CreateActivity(ctx context.Context, a models.Activity) (models.Activity, error)
	// ListActivity returns at most limit records for the file, newest first.
	ListActivity(ctx context.Context, fileID uuid.UUID, limit int) ([]models.Activity, error)
}
