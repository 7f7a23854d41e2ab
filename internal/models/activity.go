package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an append-only swarm event.
type Activity struct {
	ID        uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *uuid.UUID `json:"userId,omitempty" gorm:"type:uuid;index"`
	FileID    *uuid.UUID `json:"fileId,omitempty" gorm:"type:uuid;index"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime;index"`
}
