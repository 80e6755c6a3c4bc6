package services

import (
  "encoding/json"
  "fmt"
  "regexp"
  "strings"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
)

// Extraction is the structured result recovered from raw completion output.
// Reasoning may be nil when only the plan block could be recovered; that is
// valid output, not an error.
type Extraction struct {
  Plan      any
  Reasoning any
}

var (
  fenceOpenRe  = regexp.MustCompile("(?i)^```json\\s*")
  fenceCloseRe = regexp.MustCompile("(?i)```$")

  compoundKeyRe    = regexp.MustCompile(`"([^"\n]+)"\s+and\s+"([^"\n]+)"\s*:`)
  trailingComma    = regexp.MustCompile(`,\s*([}\]])`)
  planBlockRe      = regexp.MustCompile(`(?s)"plan"\s*:\s*(\{.*?\})\s*(,|\})`)
  reasoningBlockRe = regexp.MustCompile(`(?s)"reasoning"\s*:\s*(\{.*?\})\s*(,|\})`)

  smartQuotes = strings.NewReplacer(
    "“", `"`,
    "”", `"`,
    "’", "'",
  )
)

// StripCodeFences removes a leading ```json marker and a trailing ``` marker.
func StripCodeFences(raw string) string {
  out := strings.TrimSpace(raw)
  out = fenceOpenRe.ReplaceAllString(out, "")
  out = fenceCloseRe.ReplaceAllString(out, "")
  return strings.TrimSpace(out)
}

// SanitizeJSON applies the text normalizations that recover the most common
// near-JSON failure modes in completion output: typographic quotes, compound
// keys like `"A" and "B":`, trailing commas, and prose outside the outermost
// object.
func SanitizeJSON(s string) string {
  out := strings.TrimSpace(s)
  out = smartQuotes.Replace(out)
  out = compoundKeyRe.ReplaceAllString(out, `"$1 and $2":`)
  out = trailingComma.ReplaceAllString(out, "$1")
  firstBrace := strings.Index(out, "{")
  lastBrace := strings.LastIndex(out, "}")
  if firstBrace != -1 && lastBrace != -1 && lastBrace > firstBrace {
    out = out[firstBrace : lastBrace+1]
  }
  return out
}

// tryParse parses raw as JSON. When the parsed value carries plan or
// reasoning keys those are used; otherwise the whole value is the plan.
func tryParse(raw string) (*Extraction, bool) {
  var parsed any
  if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
    return nil, false
  }
  if obj, ok := parsed.(map[string]any); ok {
    planVal, hasPlan := obj["plan"]
    reasoningVal, hasReasoning := obj["reasoning"]
    if hasPlan || hasReasoning {
      return &Extraction{Plan: planVal, Reasoning: reasoningVal}, true
    }
  }
  return &Extraction{Plan: parsed, Reasoning: nil}, true
}

func extractBlock(re *regexp.Regexp, s string) any {
  m := re.FindStringSubmatch(s)
  if m == nil {
    return nil
  }
  var parsed any
  if err := json.Unmarshal([]byte(SanitizeJSON(m[1])), &parsed); err != nil {
    return nil
  }
  return parsed
}

// ExtractPlanReasoning turns raw completion output into (plan, reasoning)
// using progressively looser strategies, stopping at the first success:
//  1. strict parse of the fence-stripped text
//  2. sanitize then strict parse
//  3. independent regex extraction of the plan and reasoning sub-objects,
//     where a failure on one block does not discard the other
func ExtractPlanReasoning(raw string) (*Extraction, error) {
  cleaned := StripCodeFences(raw)

  if ex, ok := tryParse(cleaned); ok {
    return ex, nil
  }

  sanitized := SanitizeJSON(cleaned)
  if ex, ok := tryParse(sanitized); ok {
    return ex, nil
  }

  planBlock := extractBlock(planBlockRe, sanitized)
  reasoningBlock := extractBlock(reasoningBlockRe, sanitized)
  if planBlock != nil || reasoningBlock != nil {
    return &Extraction{Plan: planBlock, Reasoning: reasoningBlock}, nil
  }

  return nil, apierr.Unparseable(raw, fmt.Errorf("completion output is not parseable as JSON"))
}
