package models

import (
	"time"
)

// Comment targets either a post or another comment, never both.
type Comment struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PostID           *uint     `json:"post_id" gorm:"index"`
	RepliedCommentID *uint     `json:"replied_comment_id" gorm:"index"`
	CommentedByID    uint      `json:"commented_by_id" gorm:"not null;index"`
	Body             string    `json:"comment" gorm:"column:comment;type:text;not null"`
	PostDate         time.Time `json:"post_date"`
	IsApproved       bool      `json:"is_approved" gorm:"not null;default:false;index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	CommentedBy User `json:"commented_by" gorm:"foreignKey:CommentedByID"`
}

func (c *Comment) IsReply() bool {
	return c.RepliedCommentID != nil
}

// CommentNode is a comment with its reactions and approved replies, as seen by one reader.
type CommentNode struct {
	Comment
	ReactionCounts
	Replies []CommentNode `json:"replies,omitempty"`
}

type CommentFilter struct {
	PostID   uint
	Approved *bool
	Page
}
