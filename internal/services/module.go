package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/manishchum/Lucid-Prototype/internal/apierr"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/repos"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type ModuleService interface {
  ListCompanyModules(ctx context.Context, companyID uuid.UUID) ([]*types.ProcessedModule, error)
}

type moduleService struct {
  db  *gorm.DB
  log *logger.Logger

  moduleRepo repos.ModuleRepo
}

func NewModuleService(db *gorm.DB, baseLog *logger.Logger, moduleRepo repos.ModuleRepo) ModuleService {
  return &moduleService{
    db:         db,
    log:        baseLog.With("service", "ModuleService"),
    moduleRepo: moduleRepo,
  }
}

func (s *moduleService) ListCompanyModules(ctx context.Context, companyID uuid.UUID) ([]*types.ProcessedModule, error) {
  if companyID == uuid.Nil {
    return nil, apierr.Validation(fmt.Errorf("missing company_id"))
  }

  trainingModules, err := s.moduleRepo.GetTrainingModulesByCompanyID(ctx, nil, companyID)
  if err != nil {
    return nil, fmt.Errorf("load training modules: %w", err)
  }
  originalIDs := make([]uuid.UUID, 0, len(trainingModules))
  for _, tm := range trainingModules {
    if tm != nil {
      originalIDs = append(originalIDs, tm.ID)
    }
  }

  processed, err := s.moduleRepo.GetProcessedByOriginalModuleIDs(ctx, nil, originalIDs)
  if err != nil {
    return nil, fmt.Errorf("load processed modules: %w", err)
  }
  return processed, nil
}
