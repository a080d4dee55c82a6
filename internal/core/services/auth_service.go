package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vncsmyrnk/jarvis/internal/config"
	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type AuthService struct {
	accounts   ports.AccountRepository
	hasher     ports.PasswordHasher
	codec      ports.TokenCodec
	log        logging.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
	expiresIn  int64

	dummyMu   sync.Mutex
	dummyHash string
}

func NewAuthService(
	accounts ports.AccountRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	cfg *config.AuthConfig,
	log logging.Logger,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		hasher:     hasher,
		codec:      codec,
		log:        log,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		expiresIn:  cfg.ExpiresIn(),
	}
}

var _ ports.AuthService = (*AuthService)(nil)

func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (int64, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" || strings.TrimSpace(input.FirstName) == "" {
		return 0, fmt.Errorf("%w: username, password and first_name are required", domain.ErrInvalidInput)
	}

	_, err := s.accounts.GetByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return 0, domain.ErrUsernameTaken
	case !errors.Is(err, domain.ErrAccountNotFound):
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return 0, err
	}

	account := &domain.Account{
		Username:     input.Username,
		FirstName:    input.FirstName,
		PasswordHash: hash,
	}
	// The unique index still guards a concurrent signup for the same name.
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info(ctx, "user created", "user_id", account.ID)
	return account.ID, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Spend the same hashing time as a real mismatch.
		if dummy := s.dummy(); dummy != "" {
			_, _ = s.hasher.Verify(ctx, password, dummy)
		}
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(ctx, password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(account.Username)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	account, err := s.accountFromToken(ctx, refreshToken, domain.TokenRefresh)
	if err != nil {
		return nil, err
	}
	return s.issue(account.Username)
}

func (s *AuthService) Validate(ctx context.Context, accessToken string) (*domain.Identity, error) {
	account, err := s.accountFromToken(ctx, accessToken, domain.TokenAccess)
	if err != nil {
		return nil, err
	}
	return account.Identity(), nil
}

func (s *AuthService) Profile(ctx context.Context, accessToken string) (*domain.Identity, error) {
	return s.Validate(ctx, accessToken)
}

// accountFromToken collapses every token or lookup failure into ErrUnauthorized
// while keeping the cause in the chain for logging.
func (s *AuthService) accountFromToken(ctx context.Context, raw string, kind domain.TokenKind) (*domain.Account, error) {
	subject, err := s.codec.Verify(raw, kind)
	if err != nil {
		s.log.Debug(ctx, "token rejected", "kind", kind, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	account, err := s.accounts.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return account, nil
}

func (s *AuthService) issue(subject string) (*domain.TokenPair, error) {
	access, err := s.codec.Mint(subject, domain.TokenAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.Mint(subject, domain.TokenRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    s.expiresIn,
	}, nil
}

// dummy returns the hash compared against on unknown usernames. It is built
// outside any request context and retried until it succeeds once.
func (s *AuthService) dummy() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		ctx := context.Background()
		hash, err := s.hasher.Hash(ctx, "jarvis-dummy-password")
		if err != nil {
			s.log.Warn(ctx, "failed to prepare dummy hash", "error", err)
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}
