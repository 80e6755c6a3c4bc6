package services

import (
  "encoding/json"
)

// unwrapPlan accepts the historically-observed response wrappers in order:
// {modules}, {learning_plan:{modules}}, {plan:{modules}}. Anything else is
// passed through untouched.
func unwrapPlan(plan any) any {
  obj, ok := plan.(map[string]any)
  if !ok {
    return plan
  }
  if _, ok := obj["modules"]; ok {
    return obj
  }
  for _, key := range []string{"learning_plan", "plan"} {
    if inner, ok := obj[key].(map[string]any); ok {
      if _, ok := inner["modules"]; ok {
        return inner
      }
    }
  }
  return plan
}

// NormalizePlan produces the canonical render-ready shape: every module's
// objectives field becomes a sequence of scalar strings, with object-typed
// entries serialized to their JSON text since downstream consumers render
// text only. Normalizing an already-normalized plan is a no-op.
func NormalizePlan(plan any) any {
  plan = unwrapPlan(plan)

  obj, ok := plan.(map[string]any)
  if !ok {
    return plan
  }
  modules, ok := obj["modules"].([]any)
  if !ok {
    return plan
  }

  for _, m := range modules {
    mod, ok := m.(map[string]any)
    if !ok {
      continue
    }
    raw, present := mod["objectives"]
    if !present {
      continue
    }
    switch objectives := raw.(type) {
    case []any:
      for i, entry := range objectives {
        objectives[i] = scalarObjective(entry)
      }
    case map[string]any:
      mod["objectives"] = []any{scalarObjective(objectives)}
    }
  }
  return obj
}

func scalarObjective(entry any) any {
  switch entry.(type) {
  case map[string]any, []any:
    b, err := json.Marshal(entry)
    if err != nil {
      return entry
    }
    return string(b)
  default:
    return entry
  }
}
