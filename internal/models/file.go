package models

import (
	"time"

	"github.com/google/uuid"
)

// File is a logical torrent registered with the tracker. Piece accounting is
// fixed at registration and never recomputed.
type File struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string     `json:"name" gorm:"not null"`
	SizeMB      float64    `json:"sizeMB" gorm:"not null;default:0"`
	InfoHash    string     `json:"infoHash" gorm:"uniqueIndex;not null"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty" gorm:"type:uuid;index"` // weak reference to User
	PieceSizeMB float64    `json:"pieceSizeMB" gorm:"not null;default:10"`
	PieceCount  int        `json:"pieceCount" gorm:"not null;default:1"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}
