// Package profile keeps the informational user records that swarm actions
// can be attributed to, together with per-user activity counts.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

type Store interface {
	CreateUser(ctx context.Context, u models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	CountFilesByCreator(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPeersByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Stats struct {
	FilesCreated   int64 `json:"filesCreated"`
	PeersSimulated int64 `json:"peersSimulated"`
}

type Profile struct {
	models.User
	Stats Stats `json:"stats"`
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Register creates a user. Usernames are unique.
func (s *Service) Register(ctx context.Context, username, email string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("%w: username required", swarm.ErrInvalidArgument)
	}

	_, err := s.store.FindUserByUsername(ctx, username)
	switch {
	case err == nil:
		return models.User{}, fmt.Errorf("%w: username is already taken", swarm.ErrAlreadyExists)
	case !errors.Is(err, swarm.ErrNotFound):
		return models.User{}, storeErr(err)
	}

	now := s.now()
	u := models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return models.User{}, storeErr(err)
	}
	return u, nil
}

// Get returns a user with the number of files they registered and peers
// they joined.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Profile, error) {
	u, err := s.store.FindUserByID(ctx, id)
	if err != nil {
		return Profile{}, storeErr(err)
	}
	files, err := s.store.CountFilesByCreator(ctx, id)
	if err != nil {
		return Profile{}, storeErr(err)
	}
	peers, err := s.store.CountPeersByUser(ctx, id)
	if err != nil {
		return Profile{}, storeErr(err)
	}
	return Profile{User: u, Stats: Stats{FilesCreated: files, PeersSimulated: peers}}, nil
}

func storeErr(err error) error {
	if errors.Is(err, swarm.ErrNotFound) || errors.Is(err, swarm.ErrAlreadyExists) {
		return err
	}
	return fmt.Errorf("%w: %v", swarm.ErrStore, err)
}
