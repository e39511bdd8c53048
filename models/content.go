package models

import "time"

type ContentType string

const (
	ContentMainText  ContentType = "Main Text"
	ContentText      ContentType = "Text"
	ContentAccordion ContentType = "Accordion"
	ContentVideo     ContentType = "Video"
	ContentGallery   ContentType = "Gallery"
	ContentQuote     ContentType = "Quote"
)

func ContentTypes() []ContentType {
	return []ContentType{ContentMainText, ContentText, ContentAccordion, ContentVideo, ContentGallery, ContentQuote}
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes() {
		if ct == t {
			return true
		}
	}
	return false
}

// Content is an ordered block of a post body. Text is Markdown.
type Content struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	PostID      uint        `json:"post_id" gorm:"not null;index"`
	ContentType ContentType `json:"content_type" gorm:"size:30;not null;default:'Main Text'"`
	Ordering    int         `json:"ordering" gorm:"not null;default:1"`
	Title       string      `json:"title" gorm:"size:255"`
	Text        string      `json:"text" gorm:"type:text"`
	PhotoID     *uint       `json:"photo_id" gorm:"index"`
	Video       string      `json:"video" gorm:"size:500"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Photo *Photo `json:"photo,omitempty" gorm:"foreignKey:PhotoID"`

	// HTML is the rendered text, filled on public reads only.
	HTML string `json:"html,omitempty" gorm:"-"`
}

type Photo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"size:500;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
