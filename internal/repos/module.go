package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type ModuleRepo interface {
  CreateTrainingModules(ctx context.Context, tx *gorm.DB, modules []*types.TrainingModule) ([]*types.TrainingModule, error)
  CreateProcessedModules(ctx context.Context, tx *gorm.DB, modules []*types.ProcessedModule) ([]*types.ProcessedModule, error)
  GetTrainingModulesByCompanyID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.TrainingModule, error)
  GetProcessedByOriginalModuleIDs(ctx context.Context, tx *gorm.DB, originalModuleIDs []uuid.UUID) ([]*types.ProcessedModule, error)
  GetProcessedByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProcessedModule, error)
}

type moduleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
  repoLog := baseLog.With("repo", "ModuleRepo")
  return &moduleRepo{db: db, log: repoLog}
}

func (r *moduleRepo) CreateTrainingModules(ctx context.Context, tx *gorm.DB, modules []*types.TrainingModule) ([]*types.TrainingModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(modules) == 0 {
    return []*types.TrainingModule{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
    return nil, err
  }
  return modules, nil
}

func (r *moduleRepo) CreateProcessedModules(ctx context.Context, tx *gorm.DB, modules []*types.ProcessedModule) ([]*types.ProcessedModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(modules) == 0 {
    return []*types.ProcessedModule{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
    return nil, err
  }
  return modules, nil
}

func (r *moduleRepo) GetTrainingModulesByCompanyID(ctx context.Context, tx *gorm.DB, companyID uuid.UUID) ([]*types.TrainingModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.TrainingModule
  if err := transaction.WithContext(ctx).
    Where("company_id = ?", companyID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *moduleRepo) GetProcessedByOriginalModuleIDs(ctx context.Context, tx *gorm.DB, originalModuleIDs []uuid.UUID) ([]*types.ProcessedModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ProcessedModule
  if len(originalModuleIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("original_module_id IN ?", originalModuleIDs).
    Order("order_index ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *moduleRepo) GetProcessedByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ProcessedModule, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ProcessedModule
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
