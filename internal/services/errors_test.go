package services_test

import (
	"errors"
	"strings"
	"testing"

	"pitcount/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrIngest, "ingest", "read", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrIngest) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"ingest", "read", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "dedupe", "scan", "bad pool", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("nil marker should default to validation, got %v", err)
	}
}

func TestMarkersAreDistinct(t *testing.T) {
	structural := services.Wrap(services.ErrStructural, "dedupe", "scan", "duplicate row reference", nil)
	if errors.Is(structural, services.ErrIngest) {
		t.Fatalf("structural error should not match ingest marker")
	}
	if !errors.Is(structural, services.ErrStructural) {
		t.Fatalf("structural error lost its marker: %v", structural)
	}
}
