package services

import (
	"encoding/json"
	"reflect"
	"testing"
)

func planFromJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func objectives(t *testing.T, plan any, moduleIdx int) []any {
	t.Helper()
	obj, ok := plan.(map[string]any)
	if !ok {
		t.Fatalf("plan is not an object: %T", plan)
	}
	modules, ok := obj["modules"].([]any)
	if !ok || moduleIdx >= len(modules) {
		t.Fatalf("plan has no module %d: %v", moduleIdx, obj["modules"])
	}
	mod, ok := modules[moduleIdx].(map[string]any)
	if !ok {
		t.Fatalf("module %d is not an object", moduleIdx)
	}
	out, ok := mod["objectives"].([]any)
	if !ok {
		t.Fatalf("module %d objectives is not an array: %T", moduleIdx, mod["objectives"])
	}
	return out
}

func TestNormalizePlan_SerializesObjectObjectives(t *testing.T) {
	plan := planFromJSON(t, `{"modules": [{"title": "M1", "objectives": ["learn X", {"goal": "Y"}]}]}`)

	out := NormalizePlan(plan)

	got := objectives(t, out, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 objectives, got %d", len(got))
	}
	if got[0] != "learn X" {
		t.Fatalf("string objective must pass through, got %v", got[0])
	}
	s, ok := got[1].(string)
	if !ok {
		t.Fatalf("object objective must become a string, got %T", got[1])
	}
	var round map[string]any
	if err := json.Unmarshal([]byte(s), &round); err != nil || round["goal"] != "Y" {
		t.Fatalf("serialized objective must round-trip, got %q", s)
	}
}

func TestNormalizePlan_WrapsSingleObjectObjectives(t *testing.T) {
	plan := planFromJSON(t, `{"modules": [{"objectives": {"goal": "Y"}}]}`)

	out := NormalizePlan(plan)

	got := objectives(t, out, 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 objective, got %d", len(got))
	}
	if _, ok := got[0].(string); !ok {
		t.Fatalf("expected serialized string, got %T", got[0])
	}
}

func TestNormalizePlan_UnwrapsLearningPlanWrapper(t *testing.T) {
	plan := planFromJSON(t, `{"learning_plan": {"modules": [{"title": "A"}]}}`)

	out := NormalizePlan(plan)

	obj, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", out)
	}
	if _, ok := obj["modules"]; !ok {
		t.Fatalf("wrapper not unwrapped: %v", obj)
	}
	if _, ok := obj["learning_plan"]; ok {
		t.Fatalf("wrapper key must not survive: %v", obj)
	}
}

func TestNormalizePlan_UnwrapsNestedPlanWrapper(t *testing.T) {
	plan := planFromJSON(t, `{"plan": {"modules": []}}`)

	out := NormalizePlan(plan)

	obj, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", out)
	}
	if _, ok := obj["modules"]; !ok {
		t.Fatalf("wrapper not unwrapped: %v", obj)
	}
}

func TestNormalizePlan_PrefersTopLevelModules(t *testing.T) {
	// A top-level modules key wins even when a wrapper key is also present.
	plan := planFromJSON(t, `{"modules": [{"title": "top"}], "plan": {"modules": [{"title": "inner"}]}}`)

	out := NormalizePlan(plan)

	obj := out.(map[string]any)
	modules := obj["modules"].([]any)
	if modules[0].(map[string]any)["title"] != "top" {
		t.Fatalf("top-level modules must win: %v", modules)
	}
}

func TestNormalizePlan_Idempotent(t *testing.T) {
	plan := planFromJSON(t, `{"learning_plan": {"modules": [{"objectives": [{"goal": "Y"}, "plain"]}]}}`)

	once := NormalizePlan(plan)
	before, err := json.Marshal(once)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Re-normalize a decoded copy so in-place mutation cannot mask changes.
	twice := NormalizePlan(planFromJSON(t, string(before)))
	after, err := json.Marshal(twice)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("normalization must be idempotent:\nonce:  %s\ntwice: %s", before, after)
	}
}

func TestNormalizePlan_PassesThroughNonObjects(t *testing.T) {
	if out := NormalizePlan(nil); out != nil {
		t.Fatalf("nil must pass through, got %v", out)
	}
	if out := NormalizePlan("free text"); out != "free text" {
		t.Fatalf("scalar must pass through, got %v", out)
	}
	arr := []any{"a"}
	if out := NormalizePlan(arr); !reflect.DeepEqual(out, arr) {
		t.Fatalf("array must pass through, got %v", out)
	}
}

func TestNormalizePlan_ModulesWithoutObjectivesUntouched(t *testing.T) {
	plan := planFromJSON(t, `{"modules": [{"title": "A"}, "not an object"]}`)

	out := NormalizePlan(plan)

	obj := out.(map[string]any)
	modules := obj["modules"].([]any)
	if len(modules) != 2 {
		t.Fatalf("modules must be preserved, got %v", modules)
	}
}
