package scenario

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/artifact"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/save"
)

const artifactKind = "zip"

type Service struct {
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	cleanNames bool
}

func NewService(m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{metrics: m, logger: logger, cleanNames: true}
}

// SetCleanNames controls whether test case names pass through
// names.Normalize before scripts are built. Enabled by default.
func (s *Service) SetCleanNames(v bool) { s.cleanNames = v }

// Preview renders the scripts without packaging them.
func (s *Service) Preview(ctx context.Context, data ScenarioData) (*Bundle, error) {
	if s.cleanNames {
		data = CleanNames(data)
	}
	b, err := Build(data)
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindOf(err)))
		return nil, err
	}
	return b, nil
}

// Generate builds the <scenario>.zip artifact.
func (s *Service) Generate(ctx context.Context, data ScenarioData) (*artifact.Artifact, error) {
	for _, w := range Warnings(data) {
		s.logger.Warn().Str("name", w.Value).Str("normalized", w.Normalized).Msg("risky name")
	}

	b, err := s.Preview(ctx, data)
	if err != nil {
		return nil, err
	}
	z, err := b.Zip()
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindOf(err)))
		return nil, err
	}
	a, err := z.Build()
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindInternal))
		return nil, fmt.Errorf("build archive: %w", err)
	}

	s.metrics.ArtifactGenerated(artifactKind, a.Size())
	s.logger.Info().
		Str("scenario", b.Scenario).
		Int("scripts", len(b.Scripts)).
		Int("bytes", a.Size()).
		Msg("scenario archive generated")
	return a, nil
}

// Export generates the archive and hands it to saver.
func (s *Service) Export(ctx context.Context, data ScenarioData, saver save.Saver) (*artifact.Artifact, error) {
	a, err := s.Generate(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := saver.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
