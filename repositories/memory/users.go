package memory

import (
	"context"
	"sort"
	"strings"

	"newsroom-api/models"
	"newsroom-api/services"
)

type UserRepository struct {
	db *DB
}

func (db *DB) Users() *UserRepository {
	return &UserRepository{db: db}
}

func (db *DB) emailTaken(email string, excludeID uint) bool {
	for id, u := range db.users {
		if id != excludeID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.emailTaken(user.Email, 0) {
		return services.ErrConflict
	}
	now := r.db.now()
	user.ID = r.db.next("users")
	user.CreatedAt = now
	user.UpdatedAt = now
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, services.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; !ok {
		return services.ErrNotFound
	}
	if r.db.emailTaken(user.Email, user.ID) {
		return services.ErrConflict
	}
	user.UpdatedAt = r.db.now()
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) List(_ context.Context, filter models.UserFilter) ([]models.User, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []models.User
	for _, u := range r.db.users {
		if filter.StaffOnly && !u.Role.IsStaff() {
			continue
		}
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		if filter.Role != 0 && u.Role != filter.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Page), int64(len(out)), nil
}
