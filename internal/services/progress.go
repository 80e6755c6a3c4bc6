package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/repos"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type ProgressService interface {
  ScoreHistory(ctx context.Context, employeeID uuid.UUID) ([]*types.EmployeeAssessment, error)
  MarkViewed(ctx context.Context, employeeID, moduleID uuid.UUID) error
  ListProgress(ctx context.Context, employeeID uuid.UUID) ([]*types.ModuleProgress, error)
}

type progressService struct {
  db  *gorm.DB
  log *logger.Logger

  resultRepo   repos.EmployeeAssessmentRepo
  progressRepo repos.ModuleProgressRepo
}

func NewProgressService(db *gorm.DB, baseLog *logger.Logger, resultRepo repos.EmployeeAssessmentRepo, progressRepo repos.ModuleProgressRepo) ProgressService {
  return &progressService{
    db:           db,
    log:          baseLog.With("service", "ProgressService"),
    resultRepo:   resultRepo,
    progressRepo: progressRepo,
  }
}

func (s *progressService) ScoreHistory(ctx context.Context, employeeID uuid.UUID) ([]*types.EmployeeAssessment, error) {
  if employeeID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id"))
  }
  results, err := s.resultRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load score history: %w", err)
  }
  return results, nil
}

func (s *progressService) MarkViewed(ctx context.Context, employeeID, moduleID uuid.UUID) error {
  if employeeID == uuid.Nil || moduleID == uuid.Nil {
    return apierr.Validation(fmt.Errorf("missing employee_id or module_id"))
  }

  now := time.Now()
  existing, err := s.progressRepo.GetByEmployeeAndModule(ctx, nil, employeeID, moduleID)
  if err != nil {
    return fmt.Errorf("load module progress: %w", err)
  }
  if existing != nil {
    if existing.ViewedAt != nil {
      return nil
    }
    if err := s.progressRepo.UpdateFields(ctx, nil, existing.ID, map[string]any{
      "viewed_at":  now,
      "updated_at": now,
    }); err != nil {
      return fmt.Errorf("update module progress: %w", err)
    }
    return nil
  }

  if _, err := s.progressRepo.Create(ctx, nil, &types.ModuleProgress{
    ID:         uuid.New(),
    EmployeeID: employeeID,
    ModuleID:   moduleID,
    ViewedAt:   &now,
    CreatedAt:  now,
    UpdatedAt:  now,
  }); err != nil {
    return fmt.Errorf("create module progress: %w", err)
  }
  return nil
}

func (s *progressService) ListProgress(ctx context.Context, employeeID uuid.UUID) ([]*types.ModuleProgress, error) {
  if employeeID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing employee_id"))
  }
  rows, err := s.progressRepo.GetByEmployeeID(ctx, nil, employeeID)
  if err != nil {
    return nil, fmt.Errorf("load module progress: %w", err)
  }
  return rows, nil
}
