package services

import (
	"errors"
	"testing"

	"github.com/manishchum/Lucid-Prototype/internal/apierr"
)

func TestExtractPlanReasoning_StrictJSON(t *testing.T) {
	raw := `{"plan": {"modules": [{"title": "Intro"}]}, "reasoning": {"summary": "short"}}`

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := ex.Plan.(map[string]any)
	if !ok {
		t.Fatalf("expected plan object, got %T", ex.Plan)
	}
	if _, ok := plan["modules"]; !ok {
		t.Fatalf("plan lost modules key: %v", plan)
	}
	reasoning, ok := ex.Reasoning.(map[string]any)
	if !ok || reasoning["summary"] != "short" {
		t.Fatalf("unexpected reasoning: %v", ex.Reasoning)
	}
}

func TestExtractPlanReasoning_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"plan\": {\"modules\": []}, \"reasoning\": {}}\n```"

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ex.Plan.(map[string]any); !ok {
		t.Fatalf("expected plan object, got %T", ex.Plan)
	}
}

func TestExtractPlanReasoning_ObjectWithoutKeysIsPlan(t *testing.T) {
	raw := `{"modules": [{"title": "Only"}]}`

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := ex.Plan.(map[string]any)
	if !ok {
		t.Fatalf("expected plan object, got %T", ex.Plan)
	}
	if _, ok := plan["modules"]; !ok {
		t.Fatalf("whole object should become the plan: %v", plan)
	}
	if ex.Reasoning != nil {
		t.Fatalf("expected nil reasoning, got %v", ex.Reasoning)
	}
}

func TestExtractPlanReasoning_SanitizeRecoversNearJSON(t *testing.T) {
	// Typographic quotes, a compound key, a trailing comma, and prose around
	// the object. Each defeats strict parsing on its own.
	raw := "Here is your plan:\n{“plan”: {\"modules\": []}, \"strengths\" and \"weaknesses\": {\"a\": 1,}, \"reasoning\": {}}\nLet me know."

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ex.Plan.(map[string]any); !ok {
		t.Fatalf("expected plan object, got %T (%v)", ex.Plan, ex.Plan)
	}
}

func TestSanitizeJSON_MergesCompoundKeys(t *testing.T) {
	out := SanitizeJSON(`{"strengths" and "weaknesses": {"a": 1}}`)
	want := `{"strengths and weaknesses": {"a": 1}}`
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestSanitizeJSON_TruncatesToOutermostObject(t *testing.T) {
	out := SanitizeJSON("Sure! {\"a\": 1} Hope that helps.")
	if out != `{"a": 1}` {
		t.Fatalf("got %q", out)
	}
}

func TestExtractPlanReasoning_RegexRecoversPlanBlock(t *testing.T) {
	// Valid plan block embedded in output that is broken elsewhere, so both
	// strict and sanitized parses fail.
	raw := `{"plan": {"modules": [{"title": "A"}]}, "reasoning": {"summary": } }`

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan, ok := ex.Plan.(map[string]any)
	if !ok {
		t.Fatalf("expected recovered plan object, got %T", ex.Plan)
	}
	if _, ok := plan["modules"]; !ok {
		t.Fatalf("recovered plan lost modules: %v", plan)
	}
	if ex.Reasoning != nil {
		t.Fatalf("broken reasoning block must not surface: %v", ex.Reasoning)
	}
}

func TestExtractPlanReasoning_RegexRecoversReasoningAlone(t *testing.T) {
	raw := `{"foo": oops, "reasoning": {"summary": "ok"}, "bar": }`

	ex, err := ExtractPlanReasoning(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Plan != nil {
		t.Fatalf("expected nil plan, got %v", ex.Plan)
	}
	reasoning, ok := ex.Reasoning.(map[string]any)
	if !ok || reasoning["summary"] != "ok" {
		t.Fatalf("unexpected reasoning: %v", ex.Reasoning)
	}
}

func TestExtractPlanReasoning_TotalFailureCarriesRaw(t *testing.T) {
	raw := "I could not produce a plan today."

	_, err := ExtractPlanReasoning(raw)
	if err == nil {
		t.Fatalf("expected error")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected apierr.Error, got %T", err)
	}
	if ae.Code != apierr.CodeUnparseable {
		t.Fatalf("expected code %s, got %s", apierr.CodeUnparseable, ae.Code)
	}
	if ae.Raw != raw {
		t.Fatalf("expected raw output carried verbatim, got %q", ae.Raw)
	}
}

func TestStripCodeFences_LeavesPlainTextAlone(t *testing.T) {
	if out := StripCodeFences(`{"a": 1}`); out != `{"a": 1}` {
		t.Fatalf("got %q", out)
	}
}
