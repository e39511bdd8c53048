package models

import "time"

type Category struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	ParentID  *uint      `json:"parent_id" gorm:"index"`
	Title     string     `json:"title" gorm:"size:255;not null;default:''"`
	URL       string     `json:"url" gorm:"size:255"`
	Ordering  int        `json:"ordering" gorm:"default:0"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// CategoryNode is a top-level category with its direct children.
type CategoryNode struct {
	Category
	Children []Category `json:"children"`
}

// PostIdentifier is a keyword shown next to a post title, e.g. "VIDEO".
type PostIdentifier struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"size:255;not null"`
}
