package services

import (
	"strings"
	"testing"
)

func TestComposePlanPrompt_CarriesInputsAndOutputContract(t *testing.T) {
	prompt := ComposePlanPrompt(`[{"score": 4}]`, `[{"title": "M1"}]`, "Learning Style: CS\nAnalysis: structured", "KPI: Close rate, Score: 60")

	for _, want := range []string{
		`[{"score": 4}]`,
		`[{"title": "M1"}]`,
		"Learning Style: CS",
		"KPI: Close rate",
		"Assessment Results (baseline only):",
		"Output ONLY a single JSON object with two top-level keys: plan and reasoning",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestComposePlanPrompt_OmitsAbsentContext(t *testing.T) {
	prompt := ComposePlanPrompt("[]", "[]", "", "")

	if strings.Contains(prompt, "Learning Style:") {
		t.Fatalf("unclassified employee must not get a style section:\n%s", prompt)
	}
	if strings.Contains(prompt, "KPI:") {
		t.Fatalf("employee without KPIs must not get a KPI section:\n%s", prompt)
	}
}

func TestComposeLearningStylePrompt_PairsAllFortyQuestions(t *testing.T) {
	if len(LearningStyleQuestions) != surveyLength {
		t.Fatalf("survey must have %d questions, got %d", surveyLength, len(LearningStyleQuestions))
	}

	answers := make([]int, surveyLength)
	for i := range answers {
		answers[i] = 3
	}
	prompt := ComposeLearningStylePrompt(answers)

	if !strings.Contains(prompt, "Q1: ") || !strings.Contains(prompt, "Q40: ") {
		t.Fatalf("prompt must pair every question with its answer:\n%s", prompt)
	}
	if !strings.Contains(prompt, "A40: 3") {
		t.Fatalf("prompt missing answer values:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"dominant_style"`) {
		t.Fatalf("prompt missing output contract:\n%s", prompt)
	}
}

func TestComposeQuizPrompt_ScopesToStyleWhenKnown(t *testing.T) {
	withStyle := ComposeQuizPrompt("Safety", "content", "AR", 5)
	if !strings.Contains(withStyle, "learning style is AR") {
		t.Fatalf("styled quiz prompt missing style:\n%s", withStyle)
	}
	if !strings.Contains(withStyle, "5-question") {
		t.Fatalf("quiz prompt missing question count:\n%s", withStyle)
	}

	without := ComposeQuizPrompt("Safety", "content", "", 5)
	if strings.Contains(without, "learning style") {
		t.Fatalf("unscoped quiz prompt must not mention a style:\n%s", without)
	}
}

func TestComposeQuizFeedbackPrompt_CarriesAttempt(t *testing.T) {
	prompt := ComposeQuizFeedbackPrompt(`[{"question": "Q"}]`, "[0, 1]")

	if !strings.Contains(prompt, `[{"question": "Q"}]`) || !strings.Contains(prompt, "[0, 1]") {
		t.Fatalf("feedback prompt missing attempt data:\n%s", prompt)
	}
	if !strings.Contains(prompt, `{"score": number, "max_score": number, "feedback"`) {
		t.Fatalf("feedback prompt missing output contract:\n%s", prompt)
	}
}
