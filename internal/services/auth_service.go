package services

import (
	"context"
	"errors"

	"github.com/mahmoudhijazi1/diet-platform/internal/config"
	"github.com/mahmoudhijazi1/diet-platform/internal/models"
	"github.com/mahmoudhijazi1/diet-platform/internal/repository"
	"github.com/mahmoudhijazi1/diet-platform/internal/utils"
)

type AuthService struct {
	userStore UserStore
	cfg       *config.Config
}

func NewAuthService(userStore UserStore, cfg *config.Config) *AuthService {
	return &AuthService{userStore: userStore, cfg: cfg}
}

// Authenticate validates a username/password pair. The same error comes
// back for an unknown user and for a wrong password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userStore.GetByUsername(ctx, utils.NormalizeUsername(username), nil)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues a signed access token carrying the
// user's identity, role and tenant affiliation.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	return utils.GenerateJWT(user, s.cfg)
}

// Me returns the account behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, caller *utils.Claims) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, caller.UserID, nil)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
