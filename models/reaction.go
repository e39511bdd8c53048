package models

import "time"

type SubjectType string

const (
	SubjectPost    SubjectType = "post"
	SubjectComment SubjectType = "comment"
)

func (t SubjectType) Valid() bool {
	return t == SubjectPost || t == SubjectComment
}

type Direction string

const (
	Like    Direction = "like"
	Dislike Direction = "dislike"
)

func (d Direction) Valid() bool {
	return d == Like || d == Dislike
}

func (d Direction) Opposite() Direction {
	if d == Like {
		return Dislike
	}
	return Like
}

// Subject identifies something that can be reacted to.
type Subject struct {
	Type SubjectType
	ID   uint
}

// ReactionSet is the like or dislike companion of a post or comment.
// Exactly one set per (subject, direction) exists for the subject's lifetime.
type ReactionSet struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	SubjectType SubjectType `json:"subject_type" gorm:"size:20;not null;uniqueIndex:uk_reaction_sets_subject"`
	SubjectID   uint        `json:"subject_id" gorm:"not null;uniqueIndex:uk_reaction_sets_subject"`
	Direction   Direction   `json:"direction" gorm:"size:10;not null;uniqueIndex:uk_reaction_sets_subject"`
	CreatedAt   time.Time   `json:"created_at"`
}

type ReactionMember struct {
	ReactionSetID uint      `json:"reaction_set_id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"primaryKey;index"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReactionCounts are derived from set cardinality; the flags are relative to one reader.
type ReactionCounts struct {
	LikeCount            int64 `json:"like_count"`
	DislikeCount         int64 `json:"dislike_count"`
	IsLikedByAuthUser    bool  `json:"is_liked_by_auth_user"`
	IsDislikedByAuthUser bool  `json:"is_disliked_by_auth_user"`
}

// ReactionMembers lists who reacted to a subject.
type ReactionMembers struct {
	Likes    []uint `json:"likes"`
	Dislikes []uint `json:"dislikes"`
}
