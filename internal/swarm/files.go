package swarm

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/metrics"
	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/utils"
)

type RegisterFileInput struct {
	Name      string
	SizeMB    float64
	CreatedBy *uuid.UUID
}

// FileSummary is a file together with the current health of its swarm.
type FileSummary struct {
	models.File
	SwarmCounts
}

// RegisterFile creates a torrent record and plans its pieces. Negative or
// NaN sizes are clamped to zero.
func (s *Service) RegisterFile(ctx context.Context, in RegisterFileInput) (models.File, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.File{}, invalidArgument("name required")
	}
	size := in.SizeMB
	if math.IsInf(size, 0) {
		return models.File{}, invalidArgument("sizeMB must be finite")
	}
	if math.IsNaN(size) || size < 0 {
		size = 0
	}

	infoHash, err := utils.GenerateInfoHash()
	if err != nil {
		return models.File{}, fmt.Errorf("generate info hash: %w", err)
	}

	now := s.now()
	file := models.File{
		ID:          uuid.New(),
		Name:        in.Name,
		SizeMB:      size,
		InfoHash:    infoHash,
		CreatedBy:   in.CreatedBy,
		PieceSizeMB: s.pieceSizeMB,
		PieceCount:  PlanPieces(size, s.pieceSizeMB),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateFile(ctx, file); err != nil {
		return models.File{}, wrapStore(err)
	}
	metrics.FilesRegisteredTotal.Inc()

	s.notify(ctx, in.CreatedBy, &file.ID,
		fmt.Sprintf("Created file \"%s\" with %d pieces", file.Name, file.PieceCount))
	return file, nil
}

// ListFilesWithStats returns every file with its seeder and leecher counts.
func (s *Service) ListFilesWithStats(ctx context.Context) ([]FileSummary, error) {
	files, err := s.store.FindFiles(ctx)
	if err != nil {
		return nil, wrapStore(err)
	}
	counts, err := s.Stats(ctx, files)
	if err != nil {
		return nil, err
	}
	out := make([]FileSummary, 0, len(files))
	for _, f := range files {
		out = append(out, FileSummary{File: f, SwarmCounts: counts[f.ID]})
	}
	return out, nil
}

// ListPeers returns the swarm of one file. An unknown file has an empty swarm.
func (s *Service) ListPeers(ctx context.Context, fileID uuid.UUID) ([]models.Peer, error) {
	peers, err := s.store.FindPeersByFile(ctx, fileID)
	if err != nil {
		return nil, wrapStore(err)
	}
	return peers, nil
}

func (s *Service) GetFile(ctx context.Context, id uuid.UUID) (models.File, error) {
	f, err := s.store.FindFileByID(ctx, id)
	if err != nil {
		return models.File{}, wrapStore(err)
	}
	return f, nil
}
