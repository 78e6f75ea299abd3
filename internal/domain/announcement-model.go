package domain

import (
	"time"

	"gorm.io/gorm"
)

type Announcement struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `gorm:"type:text;not null" json:"body"`
	AuthorID uint   `gorm:"index" json:"author_id"`
	Pinned   bool   `gorm:"default:false" json:"pinned"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
