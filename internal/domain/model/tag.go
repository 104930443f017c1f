package model

import (
	"time"

	"github.com/google/uuid"
)

type Tag struct {
	UID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
