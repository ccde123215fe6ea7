package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{Validation("scenario name is required"), http.StatusBadRequest},
		{Overflow(errors.New("overflow"), "EPRNZZZZ", 1), http.StatusUnprocessableEntity},
		{Format("invalid address data format", nil), http.StatusBadGateway},
		{Environment("save unsupported", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("generate: %w", Validation("author is required"))
	if KindOf(err) != KindValidation {
		t.Errorf("expected VALIDATION, got %s", KindOf(err))
	}
	if !Is(err, KindValidation) {
		t.Error("expected Is to match VALIDATION")
	}
	if Is(nil, KindValidation) {
		t.Error("nil must not match any kind")
	}
}

func TestWrapValidation_Unwraps(t *testing.T) {
	base := errors.New("count must be positive")
	err := WrapValidation(base)
	if !errors.Is(err, base) {
		t.Error("expected wrapped error to unwrap to base")
	}
	if err.Error() != base.Error() {
		t.Errorf("expected message %q, got %q", base.Error(), err.Error())
	}
}

func TestOverflow_Details(t *testing.T) {
	err := Overflow(errors.New("sequence overflow after 2 names"), "EPRNZZZY", 2)
	if err.Details["generated"] != 2 {
		t.Errorf("expected generated=2, got %v", err.Details["generated"])
	}
	if err.Details["start"] != "EPRNZZZY" {
		t.Errorf("expected start EPRNZZZY, got %v", err.Details["start"])
	}
}

func TestBody(t *testing.T) {
	if got := Body(Validation("bad batch")); got != "bad batch" {
		t.Errorf("expected plain message, got %v", got)
	}
	if got := Body(errors.New("plain")); got != "plain" {
		t.Errorf("expected plain message, got %v", got)
	}

	body, ok := Body(Overflow(errors.New("sequence overflow"), "EPRNZZZY", 2)).(map[string]any)
	if !ok {
		t.Fatalf("expected map body for overflow")
	}
	if body["message"] != "sequence overflow" {
		t.Errorf("unexpected message %v", body["message"])
	}
	details, _ := body["details"].(map[string]any)
	if details["start"] != "EPRNZZZY" || details["generated"] != 2 {
		t.Errorf("unexpected details %v", details)
	}
}
