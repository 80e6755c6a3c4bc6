package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type ModuleProgressRepo interface {
  Create(ctx context.Context, tx *gorm.DB, progress *types.ModuleProgress) (*types.ModuleProgress, error)
  GetByEmployeeAndModule(ctx context.Context, tx *gorm.DB, employeeID, moduleID uuid.UUID) (*types.ModuleProgress, error)
  GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.ModuleProgress, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, fields map[string]any) error
}

type moduleProgressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewModuleProgressRepo(db *gorm.DB, baseLog *logger.Logger) ModuleProgressRepo {
  repoLog := baseLog.With("repo", "ModuleProgressRepo")
  return &moduleProgressRepo{db: db, log: repoLog}
}

func (r *moduleProgressRepo) Create(ctx context.Context, tx *gorm.DB, progress *types.ModuleProgress) (*types.ModuleProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).Create(progress).Error; err != nil {
    return nil, err
  }
  return progress, nil
}

func (r *moduleProgressRepo) GetByEmployeeAndModule(ctx context.Context, tx *gorm.DB, employeeID, moduleID uuid.UUID) (*types.ModuleProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ModuleProgress
  if err := transaction.WithContext(ctx).
    Where("employee_id = ? AND module_id = ?", employeeID, moduleID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *moduleProgressRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.ModuleProgress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ModuleProgress
  if err := transaction.WithContext(ctx).
    Where("employee_id = ?", employeeID).
    Order("updated_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *moduleProgressRepo) UpdateFields(ctx context.Context, tx *gorm.DB, progressID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.ModuleProgress{}).
    Where("id = ?", progressID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
