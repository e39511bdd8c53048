package models

import (
	"time"
)

type PostStatus string

const (
	StatusOpen      PostStatus = "Open"
	StatusClosed    PostStatus = "Closed"
	StatusStaffOnly PostStatus = "Staff only"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusStaffOnly:
		return true
	}
	return false
}

type TitleType string

const (
	TitlePlain TitleType = "Plain"
	TitleBold  TitleType = "Bold"
	TitleRed   TitleType = "Red"
)

func (t TitleType) Valid() bool {
	switch t {
	case TitlePlain, TitleBold, TitleRed:
		return true
	}
	return false
}

// TopNews is the home page slot a post is pinned to.
type TopNews int

const (
	TopNewsLeft  TopNews = 1
	TopNewsRight TopNews = 2
)

func (t TopNews) Valid() bool {
	return t == TopNewsLeft || t == TopNewsRight
}

type Post struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	Title                 string          `json:"title" gorm:"size:255;not null"`
	Slug                  string          `json:"slug" gorm:"size:191;not null;uniqueIndex:uk_posts_slug"`
	CustomSlug            bool            `json:"custom_slug" gorm:"not null;default:false"`
	AuthorID              uint            `json:"author_id" gorm:"not null;index"`
	KeywordID             *uint           `json:"keyword_id" gorm:"index"`
	ShortDescription      string          `json:"short_description" gorm:"type:text"`
	TitleType             TitleType       `json:"title_type" gorm:"size:20;not null;default:'Plain'"`
	IsApproved            bool            `json:"is_approved" gorm:"not null;default:false;index"`
	IsAdvertisement       bool            `json:"is_advertisement" gorm:"not null;default:false"`
	Status                PostStatus      `json:"status" gorm:"size:20;not null;default:'Open';index"`
	SocialMetaTitle       string          `json:"social_meta_title" gorm:"size:255"`
	SocialMetaDescription string          `json:"social_meta_description" gorm:"type:text"`
	SeoMetaTitle          string          `json:"seo_meta_title" gorm:"size:255"`
	SeoMetaDescription    string          `json:"seo_meta_description" gorm:"type:text"`
	SeoMetaKeywords       StringSliceType `json:"seo_meta_keywords"`
	Views                 int64           `json:"views" gorm:"not null;default:1"`
	PublishDate           time.Time       `json:"publish_date" gorm:"index"`
	EndDate               *time.Time      `json:"end_date"`
	IsEditorsChoice       bool            `json:"is_editors_choice" gorm:"not null;default:false"`
	IsMultimedia          bool            `json:"is_multimedia" gorm:"not null;default:false"`
	ShowInHomePage        bool            `json:"show_in_home_page" gorm:"not null;default:false"`
	TopNews               *TopNews        `json:"top_news"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             *time.Time      `json:"deleted_at" gorm:"index"`

	Author     User            `json:"author" gorm:"foreignKey:AuthorID"`
	Keyword    *PostIdentifier `json:"keyword,omitempty" gorm:"foreignKey:KeywordID"`
	Categories []Category      `json:"category" gorm:"many2many:post_categories"`
	Contents   []Content       `json:"contents,omitempty" gorm:"foreignKey:PostID"`
}

// IsDraft reports whether the post is still waiting for approval.
func (p *Post) IsDraft() bool {
	return !p.IsApproved
}

// PubliclyVisible reports whether anonymous readers may see the post.
func (p *Post) PubliclyVisible() bool {
	return p.IsApproved && p.Status == StatusOpen
}

// SyncDeletedAt keeps the soft-delete marker in step with the status:
// closing stamps it, reopening clears it.
func (p *Post) SyncDeletedAt(now time.Time) {
	if p.Status == StatusClosed {
		if p.DeletedAt == nil {
			p.DeletedAt = &now
		}
		return
	}
	p.DeletedAt = nil
}

func (p *Post) CategoryIDs() []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// PostFilter narrows post listings. Nil pointers mean "any".
type PostFilter struct {
	PublicOnly    bool
	Status        PostStatus
	Approved      *bool
	CategoryID    uint
	AuthorID      uint
	KeywordID     uint
	Search        string
	EditorsChoice *bool
	HomePage      *bool
	Multimedia    *bool
	TopNews       *TopNews
	IDs           []uint
	Page
}

// PostCard is the list projection of a post for a given reader.
type PostCard struct {
	Post
	ReactionCounts
	CommentCount      int64 `json:"comment_count"`
	IsSavedByAuthUser bool  `json:"is_saved_by_auth_user"`
}

// PostDetail is the read-only projection returned by the public detail endpoint.
// None of its derived fields are ever written back to the post row.
type PostDetail struct {
	Post
	ReactionCounts
	CommentCount      int64         `json:"comment_count"`
	IsSavedByAuthUser bool          `json:"is_saved_by_auth_user"`
	Comments          []CommentNode `json:"comments"`
	RelatedPosts      []Post        `json:"related_posts"`
}

// FeedResponse is a page of post cards.
type FeedResponse struct {
	Posts      []PostCard `json:"posts"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int64      `json:"total"`
	HasMore    bool       `json:"has_more"`
	TotalPages int        `json:"total_pages"`
}

// Feedback is an internal note left on a post by a staff member.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	PostDate  time.Time `json:"post_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}
