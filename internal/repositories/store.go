package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

// Store is the gorm-backed tracker store. It serves files, peers, the
// activity log and users.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateFile(ctx context.Context, f models.File) error {
	return translate(s.db.WithContext(ctx).Create(&f).Error)
}

func (s *Store) FindFileByID(ctx context.Context, id uuid.UUID) (models.File, error) {
	var f models.File
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	return f, translate(err)
}

func (s *Store) FindFiles(ctx context.Context) ([]models.File, error) {
	var files []models.File
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&files).Error
	return files, translate(err)
}

func (s *Store) CreatePeer(ctx context.Context, p models.Peer) error {
	return translate(s.db.WithContext(ctx).Create(&p).Error)
}

func (s *Store) DeletePeer(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Peer{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return swarm.ErrNotFound
	}
	return nil
}

func (s *Store) FindPeerByID(ctx context.Context, id uuid.UUID) (models.Peer, error) {
	var p models.Peer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return p, translate(err)
}

func (s *Store) FindPeersByFile(ctx context.Context, fileID uuid.UUID) ([]models.Peer, error) {
	var peers []models.Peer
	err := s.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at asc").
		Find(&peers).Error
	return peers, translate(err)
}

func (s *Store) FindPeersByFiles(ctx context.Context, fileIDs []uuid.UUID) ([]models.Peer, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}
	var peers []models.Peer
	err := s.db.WithContext(ctx).Where("file_id IN ?", fileIDs).Find(&peers).Error
	return peers, translate(err)
}

func (s *Store) FindAllLeechers(ctx context.Context) ([]models.Peer, error) {
	var peers []models.Peer
	err := s.db.WithContext(ctx).
		Where("status = ?", models.StatusLeecher).
		Order("created_at asc").
		Find(&peers).Error
	return peers, translate(err)
}

// SavePeer is a compare-and-write on the peer's version. gorm's Save is not
// used because it inserts rows that no longer exist.
func (s *Store) SavePeer(ctx context.Context, p models.Peer) error {
	db := s.db.WithContext(ctx)
	res := db.Model(&models.Peer{}).
		Where("id = ? AND version = ?", p.ID, p.Version).
		Updates(map[string]any{
			"status":     p.Status,
			"progress":   p.Progress,
			"updated_at": p.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := db.Model(&models.Peer{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return swarm.ErrNotFound
	}
	return swarm.ErrConflict
}

func (s *Store) CreateActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return models.Activity{}, translate(err)
	}
	return a, nil
}

func (s *Store) ListActivity(ctx context.Context, fileID uuid.UUID, limit int) ([]models.Activity, error) {
	var acts []models.Activity
	err := s.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&acts).Error
	return acts, translate(err)
}

func (s *Store) CreateUser(ctx context.Context, u models.User) error {
	return translate(s.db.WithContext(ctx).Create(&u).Error)
}

func (s *Store) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return u, translate(err)
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return u, translate(err)
}

func (s *Store) CountFilesByCreator(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.File{}).Where("created_by = ?", userID).Count(&n).Error
	return n, translate(err)
}

func (s *Store) CountPeersByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Peer{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translate(err)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return swarm.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return swarm.ErrAlreadyExists
	default:
		return err
	}
}
