package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/qagen/qagen/internal/platform/artifact"
)

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_GenerateWorkbook(t *testing.T) {
	h := NewHandler(newTestService(nil, 0))
	c, rec := postJSON(echo.New(), `{"batches":[{"start_name":"EPRNAAAA","count":2}],"file_name":"Cohort"}`)

	if err := h.GenerateWorkbook(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != artifact.MIMEXLSX {
		t.Errorf("expected xlsx content type, got %s", got)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "Cohort.xlsx") {
		t.Errorf("unexpected disposition %s", rec.Header().Get(echo.HeaderContentDisposition))
	}
}

func TestHandler_GenerateWorkbook_Errors(t *testing.T) {
	h := NewHandler(newTestService(nil, 0))
	tests := []struct {
		body string
		code int
	}{
		{`{"batches":[]}`, http.StatusBadRequest},
		{`{"batches":[{"start_name":"BAD","count":1}]}`, http.StatusBadRequest},
		{`{"batches":[{"start_name":"EPRNZZZZ","count":3}]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		c, _ := postJSON(echo.New(), tt.body)
		err := h.GenerateWorkbook(c)
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("%s: expected *echo.HTTPError, got %v", tt.body, err)
		}
		if he.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.body, tt.code, he.Code)
		}
	}
}

func TestHandler_GenerateWorkbook_OverflowDetails(t *testing.T) {
	e := echo.New()
	NewHandler(newTestService(nil, 0)).RegisterRoutes(e.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/xlsx",
		strings.NewReader(`{"batches":[{"start_name":"eprnzzzy","count":1152921504606846976}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Message string `json:"message"`
		Details struct {
			Start     string `json:"start"`
			Generated int    `json:"generated"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message == "" || body.Details.Start != "EPRNZZZY" || body.Details.Generated != 2 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestHandler_PreviewRecords(t *testing.T) {
	h := NewHandler(newTestService(nil, 0))
	c, rec := postJSON(echo.New(), `{"batches":[{"start_name":"EPRNAAAA","count":150}],"patient_only":true}`)

	if err := h.PreviewRecords(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		FileName string     `json:"file_name"`
		Columns  []string   `json:"columns"`
		Rows     [][]string `json:"rows"`
		Total    int        `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 150 || len(resp.Rows) != previewLimit {
		t.Errorf("expected 150 total and %d rows, got %d/%d", previewLimit, resp.Total, len(resp.Rows))
	}
	if len(resp.Columns) != 14 || resp.Rows[0][3] != "EPRNAAAA" {
		t.Errorf("unexpected preview %v / %v", resp.Columns, resp.Rows[0])
	}
	if resp.FileName != "Patients_20240305_140709.xlsx" {
		t.Errorf("unexpected file name %s", resp.FileName)
	}
}
