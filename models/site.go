package models

import "time"

// SiteSettings is the single row of front-end copy the public site renders.
type SiteSettings struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	Copyright             string    `json:"copyright" gorm:"size:255"`
	Logo                  string    `json:"logo" gorm:"size:500"`
	FooterText            string    `json:"footer_text" gorm:"type:text"`
	FooterSocialMediaText string    `json:"footer_social_media_text" gorm:"size:255"`
	SearchPlaceholder     string    `json:"search_placeholder" gorm:"size:255"`
	AuthorWidgetTitle     string    `json:"author_widget_title" gorm:"size:255"`
	SliderVideoTitle      string    `json:"slider_video_title" gorm:"size:255"`
	SliderButtonTitle     string    `json:"slider_button_title" gorm:"size:255"`
	ItemNowPlayingText    string    `json:"item_now_playing_text" gorm:"size:255"`
	TermsAndConditions    string    `json:"terms_and_conditions" gorm:"type:text"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type SocialPosition string

const (
	PositionSide   SocialPosition = "side"
	PositionHeader SocialPosition = "header"
	PositionFooter SocialPosition = "footer"
)

func (p SocialPosition) Valid() bool {
	switch p {
	case PositionSide, PositionHeader, PositionFooter:
		return true
	}
	return false
}

// SocialMedia is an account link shown in one of the site's link bars.
type SocialMedia struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	Title    string         `json:"title" gorm:"size:255;not null"`
	Icon     string         `json:"icon" gorm:"size:500"`
	Link     string         `json:"link" gorm:"size:500;not null"`
	Position SocialPosition `json:"position" gorm:"size:16;not null;index"`
}

// ContactMessage is a message sent through the public contact form.
type ContactMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"first_name" gorm:"size:255;not null"`
	LastName    string    `json:"last_name" gorm:"size:255;not null"`
	Email       string    `json:"email" gorm:"size:254;not null"`
	PhoneNumber *string   `json:"phone_number" gorm:"size:32"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	SendDate    time.Time `json:"send_date" gorm:"index"`
}

// Opinion is reader feedback about the site itself.
type Opinion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"first_name" gorm:"size:255;not null"`
	LastName  string    `json:"last_name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:254;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	SendDate  time.Time `json:"send_date" gorm:"index"`
}

type Video struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	URL       string    `json:"url" gorm:"size:500;not null"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Gallery is a captioned showcase entry built on a library photo.
type Gallery struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	PhotoID     uint      `json:"photo_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Photo *Photo `json:"photo,omitempty" gorm:"foreignKey:PhotoID"`
}
