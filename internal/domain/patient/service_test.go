package patient

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/artifact"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/save"
)

type failingSource struct{ err error }

func (f failingSource) Addresses(context.Context) ([]Address, error) { return nil, f.err }

func newTestService(m *metrics.Metrics, max int) *Service {
	svc := NewService(StaticAddresses(testPool), func() Random { return NewRandom(9) }, max, m, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	return svc
}

func TestService_FileName(t *testing.T) {
	svc := newTestService(nil, 0)
	tests := []struct {
		in, want string
	}{
		{"", "Patients_20240305_140709.xlsx"},
		{"  ", "Patients_20240305_140709.xlsx"},
		{"Cohort", "Cohort.xlsx"},
		{"Cohort.xlsx", "Cohort.xlsx"},
		{"Cohort.XLSX", "Cohort.xlsx"},
	}
	for _, tt := range tests {
		if got := svc.FileName(Request{FileName: tt.in}); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestService_Generate(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m, 0)
	req := Request{
		Batches:  []Batch{{StartName: "EPRNAAAA", Count: 3}, {StartName: "QAPTAAAA", Count: 2}},
		FileName: "Cohort",
	}

	a, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.FileName != "Cohort.xlsx" || a.MIMEType != artifact.MIMEXLSX {
		t.Errorf("unexpected artifact %s %s", a.FileName, a.MIMEType)
	}

	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(FullSchema.Columns) {
		t.Errorf("expected %d header cells, got %d", len(FullSchema.Columns), len(rows[0]))
	}
	if rows[4][3] != "QAPTAAAA" || rows[4][0] != "1" {
		t.Errorf("expected second batch to restart ordinals, got %v", rows[4][:4])
	}

	if got := testutil.ToFloat64(m.RecordsSynthesized); got != 5 {
		t.Errorf("expected 5 synthesized records, got %v", got)
	}
	if got := testutil.ToFloat64(m.ArtifactsGenerated.WithLabelValues("xlsx")); got != 1 {
		t.Errorf("expected 1 workbook, got %v", got)
	}
}

func TestService_Generate_PatientOnly(t *testing.T) {
	svc := newTestService(nil, 0)
	a, err := svc.Generate(context.Background(), Request{
		Batches:     []Batch{{StartName: "EPRNAAAA", Count: 1}},
		PatientOnly: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(sheetName)
	if len(rows[0]) != 14 {
		t.Errorf("expected 14 columns, got %d", len(rows[0]))
	}
}

func TestService_Validation(t *testing.T) {
	svc := newTestService(nil, 10)
	if _, err := svc.Generate(context.Background(), Request{}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for no batches, got %v", err)
	}
	_, err := svc.Generate(context.Background(), Request{Batches: []Batch{{StartName: "EPRNAAAA", Count: 11}}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error over limit, got %v", err)
	}
}

func TestService_ValidationSumDoesNotWrap(t *testing.T) {
	svc := newTestService(nil, 10000)
	huge := Batch{StartName: "EPRNAAAA", Count: 1 << 62}
	_, err := svc.Records(context.Background(), Request{Batches: []Batch{huge, huge, huge, huge}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Counts that fit individually but not together.
	_, err = svc.Records(context.Background(), Request{Batches: []Batch{
		{StartName: "EPRNAAAA", Count: 6000},
		{StartName: "QAPTAAAA", Count: 6000},
	}})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for combined total, got %v", err)
	}
}

func TestService_HugeCountWithoutLimitOverflows(t *testing.T) {
	svc := newTestService(nil, 0)
	_, err := svc.Records(context.Background(), Request{Batches: []Batch{{StartName: "EPRNAAAA", Count: 1 << 62}}})
	if !apperr.Is(err, apperr.KindOverflow) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestService_Overflow(t *testing.T) {
	m := metrics.New()
	svc := newTestService(m, 0)
	_, err := svc.Generate(context.Background(), Request{Batches: []Batch{{StartName: "EPRNZZZZ", Count: 2}}})
	if !apperr.Is(err, apperr.KindOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	if got := testutil.ToFloat64(m.GenerationFailures.WithLabelValues("xlsx", "OVERFLOW")); got != 1 {
		t.Errorf("expected 1 overflow failure, got %v", got)
	}
}

func TestService_AddressFailure(t *testing.T) {
	loadErr := apperr.Environment("Failed to load address data", errors.New("offline"))
	svc := NewService(failingSource{err: loadErr}, func() Random { return NewRandom(1) }, 0, nil, zerolog.Nop())
	_, err := svc.Generate(context.Background(), Request{Batches: []Batch{{StartName: "EPRNAAAA", Count: 1}}})
	if !apperr.Is(err, apperr.KindEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
}

func TestService_Export(t *testing.T) {
	svc := newTestService(nil, 0)
	var saved *artifact.Artifact
	saver := save.SaverFunc(func(_ context.Context, a *artifact.Artifact) error {
		saved = a
		return nil
	})
	a, err := svc.Export(context.Background(), Request{Batches: []Batch{{StartName: "EPRNAAAA", Count: 1}}}, saver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != a {
		t.Error("expected saver to receive the generated workbook")
	}
}
