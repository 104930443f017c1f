package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	UID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Username     string    `gorm:"type:varchar(255);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(255);not null" json:"last_name"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsVerified   bool      `gorm:"not null;default:false" json:"is_verified"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	// 投稿した本・レビュー（/me で使う）
	Books   []Book   `gorm:"foreignKey:UserUID;references:UID" json:"books,omitempty"`
	Reviews []Review `gorm:"foreignKey:UserUID;references:UID" json:"reviews,omitempty"`
}
