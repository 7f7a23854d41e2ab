package swarm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/metrics"
	"github.com/rohits-web03/minitracker/internal/models"
)

const (
	minDownloadSpeed = 5.0
	maxDownloadSpeed = 15.0
)

type JoinInput struct {
	FileID     uuid.UUID
	UserID     *uuid.UUID
	ClientName string
	Status     models.PeerStatus
}

// Join adds a peer to a file's swarm. Seeders start complete, leechers start
// at zero. Peers are not deduplicated by user.
func (s *Service) Join(ctx context.Context, in JoinInput) (models.Peer, error) {
	if in.FileID == uuid.Nil {
		return models.Peer{}, invalidArgument("fileId required")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return models.Peer{}, invalidArgument("clientName required")
	}
	if !in.Status.Valid() {
		return models.Peer{}, invalidArgument("status must be %q or %q", models.StatusSeeder, models.StatusLeecher)
	}

	if _, err := s.store.FindFileByID(ctx, in.FileID); err != nil {
		return models.Peer{}, wrapStore(err)
	}

	progress := 0.0
	if in.Status == models.StatusSeeder {
		progress = 100
	}

	now := s.now()
	peer := models.Peer{
		ID:            uuid.New(),
		FileID:        in.FileID,
		UserID:        in.UserID,
		ClientName:    in.ClientName,
		Status:        in.Status,
		Progress:      progress,
		DownloadSpeed: s.rand.Next(minDownloadSpeed, maxDownloadSpeed),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreatePeer(ctx, peer); err != nil {
		return models.Peer{}, wrapStore(err)
	}
	metrics.PeersJoinedTotal.WithLabelValues(string(peer.Status)).Inc()

	s.notify(ctx, in.UserID, &peer.FileID,
		fmt.Sprintf("%s joined swarm as %s", peer.ClientName, peer.Status))
	return peer, nil
}

// Leave removes a peer from its swarm. actor is the user performing the
// removal and may be nil.
func (s *Service) Leave(ctx context.Context, peerID uuid.UUID, actor *uuid.UUID) error {
	if peerID == uuid.Nil {
		return invalidArgument("peerId required")
	}

	peer, err := s.store.FindPeerByID(ctx, peerID)
	if err != nil {
		return wrapStore(err)
	}
	if err := s.store.DeletePeer(ctx, peerID); err != nil {
		return wrapStore(err)
	}
	metrics.PeersLeftTotal.Inc()

	s.notify(ctx, actor, &peer.FileID, fmt.Sprintf("%s left the swarm", peer.ClientName))
	return nil
}
