package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type TrainingPlanRepo interface {
  Create(ctx context.Context, tx *gorm.DB, plan *types.TrainingPlan) (*types.TrainingPlan, error)
  GetLatestAssigned(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.TrainingPlan, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, planID uuid.UUID, fields map[string]any) error
}

type trainingPlanRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTrainingPlanRepo(db *gorm.DB, baseLog *logger.Logger) TrainingPlanRepo {
  repoLog := baseLog.With("repo", "TrainingPlanRepo")
  return &trainingPlanRepo{db: db, log: repoLog}
}

func (r *trainingPlanRepo) Create(ctx context.Context, tx *gorm.DB, plan *types.TrainingPlan) (*types.TrainingPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
    return nil, err
  }
  return plan, nil
}

func (r *trainingPlanRepo) GetLatestAssigned(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.TrainingPlan, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.TrainingPlan
  if err := transaction.WithContext(ctx).
    Where("employee_id = ? AND status = ?", employeeID, types.PlanStatusAssigned).
    Order("created_at DESC").
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *trainingPlanRepo) UpdateFields(ctx context.Context, tx *gorm.DB, planID uuid.UUID, fields map[string]any) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.TrainingPlan{}).
    Where("id = ?", planID).
    Updates(fields).Error; err != nil {
    return err
  }
  return nil
}
