package model

import (
	"time"

	"github.com/google/uuid"
)

// 評価は1〜5
const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	UID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"uid"`
	Rating     int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string     `gorm:"type:text;not null" json:"review_text"`
	UserUID    *uuid.UUID `gorm:"type:uuid;index" json:"user_uid"`
	BookUID    *uuid.UUID `gorm:"type:uuid;index" json:"book_uid"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
