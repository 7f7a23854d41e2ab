package models

import (
	"time"

	"github.com/google/uuid"
)

type PeerStatus string

const (
	StatusSeeder  PeerStatus = "seeder"
	StatusLeecher PeerStatus = "leecher"
)

func (s PeerStatus) Valid() bool {
	return s == StatusSeeder || s == StatusLeecher
}

// Peer is one member of a file's swarm. A seeder always has Progress 100, a
// leecher has Progress in [0,100).
type Peer struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FileID        uuid.UUID  `json:"fileId" gorm:"type:uuid;index;not null"` // foreign key
	UserID        *uuid.UUID `json:"userId,omitempty" gorm:"type:uuid;index"`
	ClientName    string     `json:"clientName" gorm:"not null"`
	Status        PeerStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	Progress      float64    `json:"progress" gorm:"not null;default:0"`      // download %
	DownloadSpeed float64    `json:"downloadSpeed" gorm:"not null;default:5"` // abstract units
	Version       int64      `json:"-" gorm:"not null;default:0"`             // bumped on every write-back
	CreatedAt     time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p Peer) IsLeecher() bool {
	return p.Status == StatusLeecher
}
