package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/artifact"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/save"
)

const (
	artifactKind = "xlsx"
	sheetName    = "Patients"
	fileStamp    = "20060102_150405"
	xlsxExt      = ".xlsx"
)

// Request describes one workbook.
type Request struct {
	Batches     []Batch `json:"batches" yaml:"batches"`
	FileName    string  `json:"file_name" yaml:"file_name"`
	PatientOnly bool    `json:"patient_only" yaml:"patient_only"`
}

type Service struct {
	addresses AddressSource
	newRandom func() Random
	maxTotal  int
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService wires the synthesizer. newRandom is called once per request.
// maxTotal caps the records per request; zero means unlimited.
func NewService(addresses AddressSource, newRandom func() Random, maxTotal int, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		addresses: addresses,
		newRandom: newRandom,
		maxTotal:  maxTotal,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) validate(req Request) error {
	if len(req.Batches) == 0 {
		return apperr.Validation("at least one batch is required")
	}
	if s.maxTotal <= 0 {
		return nil
	}
	// Each count is checked against what is left so the sum cannot overflow.
	total := 0
	for _, b := range req.Batches {
		if b.Count <= 0 {
			continue
		}
		if b.Count > s.maxTotal-total {
			return apperr.Validation("requested records exceed the limit of %d", s.maxTotal)
		}
		total += b.Count
	}
	return nil
}

// Records synthesizes the rows for req without building a workbook.
func (s *Service) Records(ctx context.Context, req Request) ([]Record, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	pool, err := s.addresses.Addresses(ctx)
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindOf(err)))
		return nil, err
	}
	if len(pool) == 0 {
		s.logger.Warn().Msg("address pool is empty, address columns will be blank")
	}

	records, err := Synthesize(req.Batches, pool, s.newRandom())
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindOf(err)))
		return nil, err
	}
	return records, nil
}

// FileName returns the workbook name for req, defaulting to a timestamped
// name.
func (s *Service) FileName(req Request) string {
	name := strings.TrimSpace(req.FileName)
	if name == "" {
		return "Patients_" + s.now().Format(fileStamp) + xlsxExt
	}
	if strings.HasSuffix(strings.ToLower(name), xlsxExt) {
		name = name[:len(name)-len(xlsxExt)]
	}
	return name + xlsxExt
}

// Generate builds the patient workbook.
func (s *Service) Generate(ctx context.Context, req Request) (*artifact.Artifact, error) {
	records, err := s.Records(ctx, req)
	if err != nil {
		return nil, err
	}

	schema := SchemaFor(req.PatientOnly)
	wb := artifact.NewWorkbook(s.FileName(req), sheetName, schema.Columns)
	for col, w := range MinWidths {
		wb.MinWidth(col, w)
	}
	for _, r := range records {
		wb.AddRow(schema.Row(r)...)
	}

	a, err := wb.Build()
	if err != nil {
		s.metrics.GenerationFailed(artifactKind, string(apperr.KindInternal))
		return nil, fmt.Errorf("build workbook: %w", err)
	}

	s.metrics.RecordsAdded(len(records))
	s.metrics.ArtifactGenerated(artifactKind, a.Size())
	s.logger.Info().
		Str("file", a.FileName).
		Str("schema", schema.Name).
		Int("batches", len(req.Batches)).
		Int("records", len(records)).
		Msg("patient workbook generated")
	return a, nil
}

// Export generates the workbook and hands it to saver.
func (s *Service) Export(ctx context.Context, req Request, saver save.Saver) (*artifact.Artifact, error) {
	a, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := saver.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
