// Package save persists built artifacts. A Saver may prompt the user for a
// destination, write to a storage URL, or stream the artifact as an HTTP
// download. A user cancelling a prompt is reported as ErrCancelled and is
// not treated as a failure by Fallback.
package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/artifact"
)

var (
	ErrCancelled   = errors.New("save cancelled by user")
	ErrUnsupported = errors.New("save target not supported")
)

// Saver persists an artifact.
type Saver interface {
	Save(ctx context.Context, a *artifact.Artifact) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, a *artifact.Artifact) error

func (f SaverFunc) Save(ctx context.Context, a *artifact.Artifact) error { return f(ctx, a) }

type fallbackSaver struct {
	primary   Saver
	secondary Saver
	logger    zerolog.Logger
}

// Fallback tries primary first. Cancellation ends the save successfully;
// any other primary failure hands the artifact to secondary. When both fail
// the result is an environment error.
func Fallback(primary, secondary Saver, logger zerolog.Logger) Saver {
	return &fallbackSaver{primary: primary, secondary: secondary, logger: logger}
}

func (s *fallbackSaver) Save(ctx context.Context, a *artifact.Artifact) error {
	err := s.primary.Save(ctx, a)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCancelled) {
		s.logger.Info().Str("file", a.FileName).Msg("save cancelled")
		return nil
	}

	s.logger.Debug().Err(err).Str("file", a.FileName).Msg("primary save unavailable, using fallback")
	ferr := s.secondary.Save(ctx, a)
	if ferr == nil || errors.Is(ferr, ErrCancelled) {
		return nil
	}
	return apperr.Environment(
		fmt.Sprintf("unable to save %s", a.FileName),
		errors.Join(err, ferr),
	)
}
