package models

import "time"

// PostInput is the payload for creating or updating a post. Absent keys stay nil,
// so updates touch only what the caller sent. The last block holds
// server-controlled fields whose mere presence is rejected where not allowed.
type PostInput struct {
	Title                 *string     `json:"title"`
	Slug                  *string     `json:"slug"`
	CustomSlug            *bool       `json:"custom_slug"`
	Category              *[]uint     `json:"category"`
	Keyword               *uint       `json:"keyword"`
	ShortDescription      *string     `json:"short_description"`
	TitleType             *TitleType  `json:"title_type"`
	IsAdvertisement       *bool       `json:"is_advertisement"`
	Status                *PostStatus `json:"status"`
	SocialMetaTitle       *string     `json:"social_meta_title"`
	SocialMetaDescription *string     `json:"social_meta_description"`
	SeoMetaTitle          *string     `json:"seo_meta_title"`
	SeoMetaDescription    *string     `json:"seo_meta_description"`
	SeoMetaKeywords       *[]string   `json:"seo_meta_keywords"`
	EndDate               *time.Time  `json:"end_date"`
	IsEditorsChoice       *bool       `json:"is_editors_choice"`
	IsMultimedia          *bool       `json:"is_multimedia"`
	ShowInHomePage        *bool       `json:"show_in_home_page"`
	TopNews               *TopNews    `json:"top_news"`

	IsApproved  *bool      `json:"is_approved"`
	Views       *int64     `json:"views"`
	PublishDate *time.Time `json:"publish_date"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

type ContentInput struct {
	PostID      *uint        `json:"post"`
	ContentType *ContentType `json:"content_type"`
	Ordering    *int         `json:"ordering"`
	Title       *string      `json:"title"`
	Text        *string      `json:"text"`
	PhotoID     *uint        `json:"photo"`
	Video       *string      `json:"video"`
}

type CommentInput struct {
	PostID           *uint  `json:"post"`
	RepliedCommentID *uint  `json:"replied_comment"`
	Body             string `json:"comment"`
}

type StoryInput struct {
	Status         *StoryStatus `json:"status"`
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	StartDate      *time.Time   `json:"start_date"`
	EndDate        *time.Time   `json:"end_date"`
	ShowInHomePage *bool        `json:"show_in_home_page"`
	CoverPhoto     *string      `json:"cover_photo"`
	Slug           *string      `json:"slug"`
	CustomSlug     *bool        `json:"custom_slug"`
	Ordering       *int         `json:"ordering"`
}

type CategoryInput struct {
	ParentID *uint  `json:"parent"`
	Title    string `json:"title" binding:"required,max=255"`
	URL      string `json:"url" binding:"max=255"`
	Ordering int    `json:"ordering"`
}

type KeywordInput struct {
	Title string `json:"title" binding:"required,max=255"`
}

type PhotoInput struct {
	Title string `json:"title" binding:"required,max=255"`
	URL   string `json:"url" binding:"required,url,max=500"`
}

type FeedbackInput struct {
	PostID uint   `json:"post" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdate struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=150"`
	LastName    *string `json:"last_name" binding:"omitempty,max=150"`
	Profession  *string `json:"profession" binding:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=50"`
	Avatar      *string `json:"avatar" binding:"omitempty,max=500"`
}

type PasswordChange struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UserAdminUpdate is what an administrator may change on an account.
type UserAdminUpdate struct {
	Role     *Role `json:"role"`
	IsActive *bool `json:"is_active"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

type VideoInput struct {
	Title string `json:"title" binding:"required,max=255"`
	URL   string `json:"url" binding:"required,url,max=500"`
	Text  string `json:"text"`
}

type GalleryInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	PhotoID     uint   `json:"photo" binding:"required"`
	Description string `json:"description"`
}

// SiteSettingsInput is a partial update; nil fields keep their value.
type SiteSettingsInput struct {
	Copyright             *string `json:"copyright" binding:"omitempty,max=255"`
	Logo                  *string `json:"logo" binding:"omitempty,max=500"`
	FooterText            *string `json:"footer_text"`
	FooterSocialMediaText *string `json:"footer_social_media_text" binding:"omitempty,max=255"`
	SearchPlaceholder     *string `json:"search_placeholder" binding:"omitempty,max=255"`
	AuthorWidgetTitle     *string `json:"author_widget_title" binding:"omitempty,max=255"`
	SliderVideoTitle      *string `json:"slider_video_title" binding:"omitempty,max=255"`
	SliderButtonTitle     *string `json:"slider_button_title" binding:"omitempty,max=255"`
	ItemNowPlayingText    *string `json:"item_now_playing_text" binding:"omitempty,max=255"`
	TermsAndConditions    *string `json:"terms_and_conditions"`
}

type SocialMediaInput struct {
	Title    string         `json:"title" binding:"required,max=255"`
	Icon     string         `json:"icon" binding:"omitempty,max=500"`
	Link     string         `json:"link" binding:"required,max=500"`
	Position SocialPosition `json:"position" binding:"required"`
}

// ContactInput is shared by the contact form and opinion submissions; the
// phone number only applies to the contact form.
type ContactInput struct {
	FirstName   string  `json:"first_name" binding:"max=255"`
	LastName    string  `json:"last_name" binding:"max=255"`
	Email       string  `json:"email" binding:"required,email,max=254"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
	Message     string  `json:"message"`
}
