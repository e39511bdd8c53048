package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsroom-api/models"
	"newsroom-api/utils"
)

const passwordRules = "Password must be at least 6 characters and mix 3 of: upper case, lower case, digits, symbols."

// AuthService handles registration, login and the caller's own profile.
type AuthService struct {
	users  UserRepository
	tokens *TokenManager
	log    *slog.Logger
	now    func() time.Time
}

func NewAuthService(users UserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    slog.Default().With("service", "auth"),
		now:    time.Now,
	}
}

// Register creates a reader account and logs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	verr := &ValidationError{}
	if !utils.IsValidEmail(email) {
		verr.Add("email", "Enter a valid email address.")
	}
	if !utils.IsValidPassword(req.Password) {
		verr.Add("password", passwordRules)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      models.RoleUser,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: a user with this email already exists", ErrConflict)
		}
		return nil, err
	}

	s.log.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to the current actor. Role and active
// flag are read from storage so changes apply before the token expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Actor, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.Actor{}, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, ErrNotFound) {
		return models.Actor{}, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
	}
	if err != nil {
		return models.Actor{}, err
	}
	if !user.IsActive {
		return models.Actor{}, ErrInactiveUser
	}
	return user.Actor(), nil
}

func (s *AuthService) Profile(ctx context.Context, actor models.Actor) (*models.User, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, actor.ID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor models.Actor, in models.ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Profession != nil {
		user.Profession = strings.TrimSpace(*in.Profession)
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Avatar != nil {
		avatar := strings.TrimSpace(*in.Avatar)
		if avatar == "" {
			user.Avatar = nil
		} else if !utils.IsValidURL(avatar) {
			return nil, NewValidationError("avatar", "Enter a valid URL.")
		} else {
			user.Avatar = &avatar
		}
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, actor models.Actor, in models.PasswordChange) error {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.OldPassword)); err != nil {
		return NewValidationError("old_password", "Wrong password.")
	}
	if !utils.IsValidPassword(in.NewPassword) {
		return NewValidationError("new_password", passwordRules)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	return s.users.Update(ctx, user)
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
