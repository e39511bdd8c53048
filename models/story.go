package models

import "time"

type StoryStatus string

const (
	StoryPending  StoryStatus = "PENDING"
	StoryActive   StoryStatus = "ACTIVE"
	StoryArchived StoryStatus = "ARCHIVED"
)

func (s StoryStatus) Valid() bool {
	switch s {
	case StoryPending, StoryActive, StoryArchived:
		return true
	}
	return false
}

// Story is a time-boxed, curated collection of posts.
type Story struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	Status         StoryStatus `json:"status" gorm:"size:20;not null;default:'PENDING';index"`
	Title          string      `json:"title" gorm:"size:255;not null"`
	Description    string      `json:"description" gorm:"size:255"`
	StartDate      time.Time   `json:"start_date"`
	EndDate        *time.Time  `json:"end_date"`
	ShowInHomePage bool        `json:"show_in_home_page" gorm:"not null;default:false"`
	CoverPhoto     string      `json:"cover_photo" gorm:"size:500"`
	Slug           string      `json:"slug" gorm:"size:191;not null;uniqueIndex:uk_stories_slug"`
	CustomSlug     bool        `json:"custom_slug" gorm:"not null;default:false"`
	Ordering       int         `json:"ordering" gorm:"not null;default:0"`
	Views          int64       `json:"views" gorm:"not null;default:0"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	DeletedAt      *time.Time  `json:"deleted_at"`
}

type StoryContent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"not null;uniqueIndex:uk_story_contents_story_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:uk_story_contents_story_post;index"`
	CreatedAt time.Time `json:"created_at"`
}

type StoryFilter struct {
	Status   StoryStatus
	HomePage *bool
	Page
}
