package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFrom_MapsTypedErrors(t *testing.T) {
	err := NotFound(errors.New("no such employee"))

	ae := From(err)
	if ae.Status != http.StatusNotFound || ae.Code != CodeNotFound {
		t.Fatalf("unexpected mapping: %+v", ae)
	}
}

func TestFrom_UnwrapsThroughWrapping(t *testing.T) {
	inner := Upstream(errors.New("completion service down"))
	wrapped := fmt.Errorf("generate plan: %w", inner)

	ae := From(wrapped)
	if ae.Code != CodeUpstream || ae.Status != http.StatusBadGateway {
		t.Fatalf("wrapped error lost its classification: %+v", ae)
	}
}

func TestFrom_DefaultsToInternal(t *testing.T) {
	ae := From(errors.New("plain failure"))
	if ae.Status != http.StatusInternalServerError || ae.Code != CodeInternal {
		t.Fatalf("unexpected default: %+v", ae)
	}
}

func TestUnparseable_CarriesRawOutput(t *testing.T) {
	raw := "not json"
	err := Unparseable(raw, errors.New("bad output"))

	if err.Raw != raw {
		t.Fatalf("raw output must be preserved, got %q", err.Raw)
	}
	if err.Status != http.StatusBadGateway || err.Code != CodeUnparseable {
		t.Fatalf("unexpected classification: %+v", err)
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Validation(errors.New("bad input")))

	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation code through wrapping")
	}
	if IsCode(err, CodeNotFound) {
		t.Fatalf("wrong code must not match")
	}
	if IsCode(errors.New("plain"), CodeValidation) {
		t.Fatalf("untyped error must not match")
	}
}
