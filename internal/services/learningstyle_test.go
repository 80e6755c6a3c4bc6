package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/manishchum/Lucid-Prototype/internal/apierr"
	"github.com/manishchum/Lucid-Prototype/internal/repos"
)

const goodClassification = "```json\n{\"scores\": {\"CS\": 38, \"AS\": 25, \"AR\": 20, \"CR\": 17}, \"dominant_style\": \"CS\", \"secondary_style\": \"AS\", \"report\": \"Strongly concrete sequential.\"}\n```"

func newStyleService(t *testing.T, ai *fakeCompletion) (LearningStyleService, repos.LearningStyleRepo) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	repo := repos.NewLearningStyleRepo(db, log)
	return NewLearningStyleService(db, log, repo, ai), repo
}

func fullSurvey() []int {
	answers := make([]int, surveyLength)
	for i := range answers {
		answers[i] = (i % 5) + 1
	}
	return answers
}

func TestSubmit_RejectsWrongAnswerCount(t *testing.T) {
	svc, _ := newStyleService(t, &fakeCompletion{})

	_, err := svc.Submit(context.Background(), uuid.New(), make([]int, 10))
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmit_RejectsOutOfRangeAnswer(t *testing.T) {
	svc, _ := newStyleService(t, &fakeCompletion{})

	answers := fullSurvey()
	answers[7] = 6
	_, err := svc.Submit(context.Background(), uuid.New(), answers)
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	answers[7] = 0
	_, err = svc.Submit(context.Background(), uuid.New(), answers)
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmit_RejectsSecondSubmission(t *testing.T) {
	svc, _ := newStyleService(t, &fakeCompletion{responses: []string{goodClassification}})
	employeeID := uuid.New()

	if _, err := svc.Submit(context.Background(), employeeID, fullSurvey()); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(context.Background(), employeeID, fullSurvey())
	if !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("survey answers are write-once, got %v", err)
	}
}

func TestSubmit_StoresAnswersAndClassifiesAsync(t *testing.T) {
	ai := &fakeCompletion{responses: []string{goodClassification}}
	svc, repo := newStyleService(t, ai)
	employeeID := uuid.New()

	record, err := svc.Submit(context.Background(), employeeID, fullSurvey())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	var stored []int
	if err := json.Unmarshal(record.Answers, &stored); err != nil || len(stored) != surveyLength {
		t.Fatalf("answers must round-trip, got %v (%v)", stored, err)
	}

	// Classification lands asynchronously.
	deadline := time.Now().Add(3 * time.Second)
	for {
		got, err := repo.GetByEmployeeID(context.Background(), nil, employeeID)
		if err != nil {
			t.Fatalf("load record: %v", err)
		}
		if got != nil && got.StyleCode != "" {
			if got.StyleCode != "CS" {
				t.Fatalf("expected CS, got %q", got.StyleCode)
			}
			if got.Analysis == "" {
				t.Fatalf("expected analysis text to be stored")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("classification never landed")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSubmit_ClassificationFailureKeepsAnswers(t *testing.T) {
	ai := &fakeCompletion{responses: []string{"not json at all"}}
	svc, repo := newStyleService(t, ai)
	employeeID := uuid.New()

	if _, err := svc.Submit(context.Background(), employeeID, fullSurvey()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Give the background classification time to fail.
	deadline := time.Now().Add(2 * time.Second)
	for ai.calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	got, err := repo.GetByEmployeeID(context.Background(), nil, employeeID)
	if err != nil {
		t.Fatalf("load record: %v", err)
	}
	if got == nil {
		t.Fatalf("answers must survive a failed classification")
	}
	if got.StyleCode != "" {
		t.Fatalf("failed classification must not set a style, got %q", got.StyleCode)
	}
}

func TestSubmit_ClassificationKeepsTypographicQuotes(t *testing.T) {
	// The report is valid JSON containing typographic quotes; they must reach
	// storage untouched, not be rewritten by the near-JSON sanitizer.
	report := "You prefer “hands-on” learning."
	ai := &fakeCompletion{responses: []string{`{"scores": {"CS": 10, "AS": 8, "AR": 6, "CR": 40}, "dominant_style": "CR", "secondary_style": "CS", "report": "` + report + `"}`}}
	svc, repo := newStyleService(t, ai)
	employeeID := uuid.New()

	if _, err := svc.Submit(context.Background(), employeeID, fullSurvey()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		got, err := repo.GetByEmployeeID(context.Background(), nil, employeeID)
		if err != nil {
			t.Fatalf("load record: %v", err)
		}
		if got != nil && got.StyleCode != "" {
			if got.Analysis != report {
				t.Fatalf("report must survive verbatim, got %q", got.Analysis)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("classification never landed")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestClassify_RejectsUnknownStyleCode(t *testing.T) {
	ai := &fakeCompletion{responses: []string{`{"scores": {}, "dominant_style": "XX", "secondary_style": "AS", "report": "r"}`}}
	svcIface, _ := newStyleService(t, ai)
	svc := svcIface.(*learningStyleService)

	err := svc.classify(context.Background(), uuid.New(), fullSurvey())
	if !apierr.IsCode(err, apierr.CodeUnparseable) {
		t.Fatalf("expected unparseable_response, got %v", err)
	}
}

func TestClassify_RejectsEmptyReport(t *testing.T) {
	ai := &fakeCompletion{responses: []string{`{"scores": {}, "dominant_style": "AR", "secondary_style": "CS", "report": ""}`}}
	svcIface, _ := newStyleService(t, ai)
	svc := svcIface.(*learningStyleService)

	err := svc.classify(context.Background(), uuid.New(), fullSurvey())
	if !apierr.IsCode(err, apierr.CodeUnparseable) {
		t.Fatalf("expected unparseable_response, got %v", err)
	}
}

func TestGet_MissingRecordIsNotFound(t *testing.T) {
	svc, _ := newStyleService(t, &fakeCompletion{})

	_, err := svc.Get(context.Background(), uuid.New())
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
