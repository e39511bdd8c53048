package models

import (
	"strings"
	"time"
)

type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;not null;size:191"`
	Password    string     `json:"-" gorm:"not null;size:255"`
	FirstName   string     `json:"first_name" gorm:"size:150"`
	LastName    string     `json:"last_name" gorm:"size:150"`
	Profession  string     `json:"profession" gorm:"size:255"`
	PhoneNumber string     `json:"phone_number" gorm:"size:50"`
	Avatar      *string    `json:"avatar" gorm:"size:500"`
	Role        Role       `json:"role" gorm:"not null;default:1;index"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FullName joins first and last name, falling back to the email address.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// SavedPost is a reader's bookmark of a post.
type SavedPost struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	StaffOnly  bool
	ActiveOnly bool
	Role       Role
	Search     string
	Page
}

// Author is the public view of a staff member.
type Author struct {
	ID         uint    `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Profession string  `json:"profession"`
	Avatar     *string `json:"avatar"`
	Role       string  `json:"role"`
}

func NewAuthor(u *User) Author {
	return Author{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Profession: u.Profession,
		Avatar:     u.Avatar,
		Role:       u.Role.String(),
	}
}
