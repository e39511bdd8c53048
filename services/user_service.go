package services

import (
	"context"
	"fmt"

	"newsroom-api/models"
)

const authorPostsPageSize = 4

// UserService exposes staff members as public authors and lets admins manage accounts.
type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Authors(ctx context.Context, page models.Page) ([]models.Author, int64, error) {
	users, total, err := s.users.List(ctx, models.UserFilter{
		StaffOnly:  true,
		ActiveOnly: true,
		Page:       page.Normalize(models.DefaultPageSize),
	})
	if err != nil {
		return nil, 0, err
	}
	authors := make([]models.Author, 0, len(users))
	for i := range users {
		authors = append(authors, models.NewAuthor(&users[i]))
	}
	return authors, total, nil
}

// Author returns an active staff member; readers and disabled accounts are not found.
func (s *UserService) Author(ctx context.Context, id uint) (*models.Author, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsStaff() || !user.IsActive {
		return nil, notFound("author")
	}
	author := models.NewAuthor(user)
	return &author, nil
}

// AuthorPostsFilter is the public filter for an author's page.
func AuthorPostsFilter(authorID uint, page int) models.PostFilter {
	return models.PostFilter{
		AuthorID: authorID,
		Page:     models.Page{Page: page, Limit: authorPostsPageSize},
	}
}

func (s *UserService) List(ctx context.Context, actor models.Actor, filter models.UserFilter) ([]models.User, int64, error) {
	if err := Authorize(actor, ActionUserManage); err != nil {
		return nil, 0, err
	}
	filter.Page = filter.Page.Normalize(models.DefaultPageSize)
	return s.users.List(ctx, filter)
}

// Update changes an account's role or active flag. Admins cannot lock
// themselves out.
func (s *UserService) Update(ctx context.Context, actor models.Actor, id uint, in models.UserAdminUpdate) (*models.User, error) {
	if err := Authorize(actor, ActionUserManage); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, NewValidationError("role", fmt.Sprintf("%d is not a valid choice.", int(*in.Role)))
		}
		if id == actor.ID && *in.Role != models.RoleAdmin {
			return nil, forbidden("administrators cannot demote themselves")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		if id == actor.ID && !*in.IsActive {
			return nil, forbidden("administrators cannot deactivate themselves")
		}
		user.IsActive = *in.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
