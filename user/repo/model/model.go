package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Email          string    `gorm:"uniqueIndex:users_email_key;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	ProfilePicture string    `gorm:"default:''" json:"profile_picture"`
	Role           Role      `gorm:"default:'user'" json:"role"`
	Approved       bool      `gorm:"default:false;index" json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
