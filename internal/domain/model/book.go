package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	UID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"uid"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Author        string     `gorm:"type:varchar(255);not null" json:"author"`
	Publisher     string     `gorm:"type:varchar(255);not null" json:"publisher"`
	PublishedDate time.Time  `gorm:"type:date;not null" json:"published_date"`
	PageCount     int        `gorm:"not null" json:"page_count"`
	Language      string     `gorm:"type:varchar(50);not null" json:"language"`
	UserUID       *uuid.UUID `gorm:"type:uuid;index" json:"user_uid"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Tags    []Tag    `gorm:"many2many:book_tags;joinForeignKey:BookUID;joinReferences:TagUID" json:"tags,omitempty"`
	Reviews []Review `gorm:"foreignKey:BookUID;references:UID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}
