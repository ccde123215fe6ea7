package credential

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/qagen/qagen/internal/apperr"
)

const (
	MsgMissingParams = "Missing required query parameters: user, environment"
	MsgNoDatabase    = "DATABASE_URL is not configured for database access."
)

type Service struct {
	repo   CredentialRepository
	logger zerolog.Logger
}

// NewService accepts a nil repo; every call then reports the missing
// database as an environment error.
func NewService(repo CredentialRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Find returns the first credential for user and environment. Both are
// trimmed and compared case-insensitively.
func (s *Service) Find(ctx context.Context, user, environment string) (*Credential, error) {
	user = strings.TrimSpace(user)
	environment = strings.TrimSpace(environment)
	if user == "" || environment == "" {
		return nil, apperr.Validation(MsgMissingParams)
	}
	if s.repo == nil {
		return nil, apperr.Environment(MsgNoDatabase, nil)
	}

	c, err := s.repo.Find(ctx, user, environment)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user", c.User).Str("environment", c.Environment).Msg("credential served")
	return c, nil
}

func (s *Service) List(ctx context.Context, environment string, limit, offset int) ([]*Credential, int, error) {
	if s.repo == nil {
		return nil, 0, apperr.Environment(MsgNoDatabase, nil)
	}
	return s.repo.List(ctx, strings.TrimSpace(environment), limit, offset)
}
