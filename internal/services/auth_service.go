package services

import (
	"strings"

	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/security"
	"github.com/mroshb/buynothing/pkg/errors"
	"github.com/mroshb/buynothing/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository the account flows need.
type UserStore interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	UpdateProfile(userID uint, displayName, avatarURL string) error
}

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Signup(email, password, displayName string) (*models.User, error) {
	if !security.ValidateEmail(email) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid email address")
	}
	if !security.ValidatePassword(password) {
		return nil, errors.New(errors.ErrCodeValidation, "password must be 8-72 characters")
	}

	displayName = security.SanitizeDisplayName(displayName)
	if displayName == "" {
		return nil, errors.New(errors.ErrCodeValidation, "display name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		AvatarURL:    models.DefaultAvatarPrefix + utils.RandomSeed(8),
	}

	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile changes the caller's display name and/or avatar. Empty
// fields keep their current value.
func (s *AuthService) UpdateProfile(userID uint, displayName, avatarURL string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if displayName != "" {
		displayName = security.SanitizeDisplayName(displayName)
		if displayName == "" {
			return nil, errors.New(errors.ErrCodeValidation, "display name is required")
		}
		user.DisplayName = displayName
	}

	if avatarURL != "" {
		if !strings.HasPrefix(avatarURL, "https://") || len(avatarURL) > 500 {
			return nil, errors.New(errors.ErrCodeValidation, "avatar must be an https URL")
		}
		user.AvatarURL = avatarURL
	}

	if err := s.users.UpdateProfile(userID, user.DisplayName, user.AvatarURL); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Do not leak whether the account exists
		return "", nil, errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, errors.New(errors.ErrCodeUnauthorized, "invalid email or password")
	}

	token, err := security.GenerateJWT(user.ID, user.Email, s.jwtSecret)
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to create token")
	}

	return token, user, nil
}
