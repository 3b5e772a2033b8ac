package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rayysidd/mun/internal/auth"
	"github.com/rayysidd/mun/internal/constants"
	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/repository"
	"github.com/rayysidd/mun/internal/utils"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   utils.Hasher
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher utils.Hasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// CredentialsInput carries a username and password for register and login.
type CredentialsInput struct {
	Username string
	Password string
}

// AuthResult is a freshly issued bearer token and the user it identifies.
type AuthResult struct {
	Token string
	User  *models.User
}

// Register creates a new user and signs them in.
func (s *AuthService) Register(ctx context.Context, input CredentialsInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrCredentialsRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !isNotFound(err) {
		return nil, apierrors.Internal("failed to check username", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apierrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apierrors.Wrap(ErrUsernameTaken, err)
		}
		return nil, apierrors.Internal("failed to create user", err)
	}

	return s.issue(user)
}

// Login verifies credentials and returns a token for the user.
func (s *AuthService) Login(ctx context.Context, input CredentialsInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, apierrors.Internal("failed to find user", err)
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, apierrors.Internal("failed to find user", err)
	}

	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apierrors.Internal("failed to sign token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
