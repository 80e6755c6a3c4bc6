package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/manishchum/Lucid-Prototype/internal/logger"
	"github.com/manishchum/Lucid-Prototype/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.Company{},
		&types.Employee{},
		&types.AssessmentDefinition{},
		&types.EmployeeAssessment{},
		&types.TrainingModule{},
		&types.ProcessedModule{},
		&types.LearningStyleRecord{},
		&types.TrainingPlan{},
		&types.ModuleProgress{},
		&types.KPI{},
		&types.EmployeeKPI{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeCompletion scripts completion output and records every request so tests
// can assert on call counts and prompt content.
type fakeCompletion struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []CompletionRequest
}

func (f *fakeCompletion) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("fake completion: no scripted response")
	}
	out := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return out, nil
}

func (f *fakeCompletion) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeCompletion) lastRequest(t *testing.T) CompletionRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatalf("no completion requests recorded")
	}
	return f.requests[len(f.requests)-1]
}
