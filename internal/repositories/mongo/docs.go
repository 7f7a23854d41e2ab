package mongo

import (
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

type fileDoc struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	SizeMB      float64 `bson:"sizeMB"`
	InfoHash    string  `bson:"infoHash"`
	CreatedBy   string  `bson:"createdBy,omitempty"`
	PieceSizeMB float64 `bson:"pieceSizeMB"`
	PieceCount  int     `bson:"pieceCount"`
	CreatedAt   int64   `bson:"createdAt"`
	UpdatedAt   int64   `bson:"updatedAt"`
}

type peerDoc struct {
	ID            string  `bson:"_id"`
	FileID        string  `bson:"fileId"`
	UserID        string  `bson:"userId,omitempty"`
	ClientName    string  `bson:"clientName"`
	Status        string  `bson:"status"`
	Progress      float64 `bson:"progress"`
	DownloadSpeed float64 `bson:"downloadSpeed"`
	Version       int64   `bson:"version"`
	CreatedAt     int64   `bson:"createdAt"`
	UpdatedAt     int64   `bson:"updatedAt"`
}

type activityDoc struct {
	ID        int64  `bson:"_id"`
	UserID    string `bson:"userId,omitempty"`
	FileID    string `bson:"fileId,omitempty"`
	Message   string `bson:"message"`
	CreatedAt int64  `bson:"createdAt"`
}

type userDoc struct {
	ID        string `bson:"_id"`
	Username  string `bson:"username"`
	Email     string `bson:"email,omitempty"`
	CreatedAt int64  `bson:"createdAt"`
	UpdatedAt int64  `bson:"updatedAt"`
}

func toFileDoc(f models.File) fileDoc {
	return fileDoc{
		ID:          f.ID.String(),
		Name:        f.Name,
		SizeMB:      f.SizeMB,
		InfoHash:    f.InfoHash,
		CreatedBy:   idString(f.CreatedBy),
		PieceSizeMB: f.PieceSizeMB,
		PieceCount:  f.PieceCount,
		CreatedAt:   f.CreatedAt.UnixMilli(),
		UpdatedAt:   f.UpdatedAt.UnixMilli(),
	}
}

func fromFileDoc(d fileDoc) models.File {
	return models.File{
		ID:          uuidOrNil(d.ID),
		Name:        d.Name,
		SizeMB:      d.SizeMB,
		InfoHash:    d.InfoHash,
		CreatedBy:   parseID(d.CreatedBy),
		PieceSizeMB: d.PieceSizeMB,
		PieceCount:  d.PieceCount,
		CreatedAt:   timeFromMilli(d.CreatedAt),
		UpdatedAt:   timeFromMilli(d.UpdatedAt),
	}
}

func toPeerDoc(p models.Peer) peerDoc {
	return peerDoc{
		ID:            p.ID.String(),
		FileID:        p.FileID.String(),
		UserID:        idString(p.UserID),
		ClientName:    p.ClientName,
		Status:        string(p.Status),
		Progress:      p.Progress,
		DownloadSpeed: p.DownloadSpeed,
		Version:       p.Version,
		CreatedAt:     p.CreatedAt.UnixMilli(),
		UpdatedAt:     p.UpdatedAt.UnixMilli(),
	}
}

func fromPeerDoc(d peerDoc) models.Peer {
	return models.Peer{
		ID:            uuidOrNil(d.ID),
		FileID:        uuidOrNil(d.FileID),
		UserID:        parseID(d.UserID),
		ClientName:    d.ClientName,
		Status:        models.PeerStatus(d.Status),
		Progress:      d.Progress,
		DownloadSpeed: d.DownloadSpeed,
		Version:       d.Version,
		CreatedAt:     timeFromMilli(d.CreatedAt),
		UpdatedAt:     timeFromMilli(d.UpdatedAt),
	}
}

func toActivityDoc(a models.Activity) activityDoc {
	return activityDoc{
		ID:        int64(a.ID),
		UserID:    idString(a.UserID),
		FileID:    idString(a.FileID),
		Message:   a.Message,
		CreatedAt: a.CreatedAt.UnixMilli(),
	}
}

func fromActivityDoc(d activityDoc) models.Activity {
	return models.Activity{
		ID:        uint(d.ID),
		UserID:    parseID(d.UserID),
		FileID:    parseID(d.FileID),
		Message:   d.Message,
		CreatedAt: timeFromMilli(d.CreatedAt),
	}
}

func toUserDoc(u models.User) userDoc {
	return userDoc{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UnixMilli(),
		UpdatedAt: u.UpdatedAt.UnixMilli(),
	}
}

func fromUserDoc(d userDoc) models.User {
	return models.User{
		ID:        uuidOrNil(d.ID),
		Username:  d.Username,
		Email:     d.Email,
		CreatedAt: timeFromMilli(d.CreatedAt),
		UpdatedAt: timeFromMilli(d.UpdatedAt),
	}
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func parseID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func timeFromMilli(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func uuidOrNil(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
