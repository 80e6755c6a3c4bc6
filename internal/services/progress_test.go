package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/manishchum/Lucid-Prototype/internal/apierr"
	"github.com/manishchum/Lucid-Prototype/internal/repos"
	"github.com/manishchum/Lucid-Prototype/internal/types"
)

func newProgressService(t *testing.T) (ProgressService, *quizEnv) {
	t.Helper()
	env := newQuizEnv(t, &fakeCompletion{})
	log := newTestLogger(t)
	svc := NewProgressService(
		env.db, log,
		repos.NewEmployeeAssessmentRepo(env.db, log),
		repos.NewModuleProgressRepo(env.db, log),
	)
	return svc, env
}

func TestMarkViewed_CreatesProgressRow(t *testing.T) {
	svc, env := newProgressService(t)

	if err := svc.MarkViewed(context.Background(), env.employeeID, env.moduleID); err != nil {
		t.Fatalf("mark viewed: %v", err)
	}

	var rows []types.ModuleProgress
	if err := env.db.Where("employee_id = ?", env.employeeID).Find(&rows).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if len(rows) != 1 || rows[0].ViewedAt == nil {
		t.Fatalf("expected one viewed row, got %v", rows)
	}
}

func TestMarkViewed_SecondViewIsNoOp(t *testing.T) {
	svc, env := newProgressService(t)

	if err := svc.MarkViewed(context.Background(), env.employeeID, env.moduleID); err != nil {
		t.Fatalf("first view: %v", err)
	}
	var before types.ModuleProgress
	if err := env.db.Where("employee_id = ?", env.employeeID).First(&before).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}

	if err := svc.MarkViewed(context.Background(), env.employeeID, env.moduleID); err != nil {
		t.Fatalf("second view: %v", err)
	}

	var rows []types.ModuleProgress
	if err := env.db.Where("employee_id = ?", env.employeeID).Find(&rows).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("second view must not add rows, got %d", len(rows))
	}
	if rows[0].ViewedAt == nil || !rows[0].ViewedAt.Equal(*before.ViewedAt) {
		t.Fatalf("first view timestamp must be preserved: %v vs %v", rows[0].ViewedAt, before.ViewedAt)
	}
}

func TestMarkViewed_RejectsMissingIDs(t *testing.T) {
	svc, env := newProgressService(t)

	if err := svc.MarkViewed(context.Background(), uuid.Nil, env.moduleID); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.MarkViewed(context.Background(), env.employeeID, uuid.Nil); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestScoreHistory_ReturnsAllResults(t *testing.T) {
	svc, env := newProgressService(t)
	defID := env.seedQuiz("")

	for i := 0; i < 3; i++ {
		if err := env.db.Create(&types.EmployeeAssessment{
			ID:           uuid.New(),
			EmployeeID:   env.employeeID,
			AssessmentID: defID,
			Score:        float64(i + 1),
			MaxScore:     5,
		}).Error; err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	history, err := svc.ScoreHistory(context.Background(), env.employeeID)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected full history, got %d rows", len(history))
	}
	for _, h := range history {
		if h.Assessment == nil {
			t.Fatalf("history must resolve the assessment definition: %+v", h)
		}
	}
}

func TestListProgress_EmptyForNewEmployee(t *testing.T) {
	svc, _ := newProgressService(t)

	rows, err := svc.ListProgress(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list progress: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
