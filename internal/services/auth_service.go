package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/para-athletics/athlete-monitor/internal/models"
	"github.com/para-athletics/athlete-monitor/internal/repositories"
	"github.com/para-athletics/athlete-monitor/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

// HashPassword derives the stored digest: hex of an unsalted SHA-256 over
// the plaintext. Registration and login must derive the identical value,
// and the stored hashes must stay equal to the ones the legacy store wrote.
// Do not add a salt here without migrating every existing record.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Register creates a credential record. Returns (false, nil) when the
// username is already taken; the record on disk is left untouched.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (bool, error) {
	if err := s.validator.Validate(req); err != nil {
		return false, err
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: HashPassword(req.Password),
		Role:         req.Role,
	}

	err := s.repo.User().Create(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			s.logger.Info("registration rejected, username taken", "username", req.Username)
			return false, nil
		}
		return false, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "username", req.Username, "role", req.Role)
	return true, nil
}

// Authenticate verifies a username/password pair against the store. The
// lookup matches on username and hash together, so a miss carries no hint
// of which half was wrong.
func (s *authService) Authenticate(ctx context.Context, req LoginRequest) (*models.Identity, error) {
	user, err := s.repo.User().GetByCredentials(ctx, req.Username, HashPassword(req.Password))
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return &models.Identity{
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
