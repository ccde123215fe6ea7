package credential

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("credentials not found")

type CredentialRepository interface {
	// Find matches user and environment case-insensitively.
	Find(ctx context.Context, user, environment string) (*Credential, error)
	List(ctx context.Context, environment string, limit, offset int) ([]*Credential, int, error)
}
