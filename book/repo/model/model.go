package model

import "time"

// Book is one catalog entry. File paths are opaque references into the
// static storage layer; this service only records them.
type Book struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Author      string    `gorm:"default:''" json:"author"`
	Description string    `gorm:"type:text" json:"description"`
	CoverPath   string    `gorm:"default:''" json:"cover_path"`
	PDFPath     string    `gorm:"default:''" json:"pdf_path"`
	EPUBPath    string    `gorm:"default:''" json:"epub_path"`
	Approved    bool      `gorm:"default:false;index" json:"approved"`
	UploaderID  int64     `gorm:"not null;index" json:"uploader_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookComment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID    int64     `gorm:"not null;index" json:"book_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
