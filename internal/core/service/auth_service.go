package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartoffice/platform/internal/core/domain"
	"github.com/smartoffice/platform/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users  ports.CredentialStore
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger

	// dummyHash is compared against when the username is unknown so a failed
	// lookup costs the same as a wrong password.
	dummyHash string
}

func NewAuthService(
	users ports.CredentialStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) (*AuthService, error) {
	dummy, err := hasher.Hash("smartoffice-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		dummyHash: dummy,
	}, nil
}

// Register validates the input and stores a new credential record with a
// hashed password. A taken username yields domain.ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	// Fast path only; the store's unique constraint decides concurrent races.
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Insert(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         r,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.log.Error().Err(err).Str("username", username).Msg("failed to store user")
		}
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login exchanges credentials for a session token. Unknown usernames and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			s.log.Debug().Str("username", username).Msg("login for unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Debug().Str("username", username).Msg("login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &ports.LoginResult{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}
