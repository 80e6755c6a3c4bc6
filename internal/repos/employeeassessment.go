package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type EmployeeAssessmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, results []*types.EmployeeAssessment) ([]*types.EmployeeAssessment, error)
  GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeAssessment, error)
}

type employeeAssessmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEmployeeAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeAssessmentRepo {
  repoLog := baseLog.With("repo", "EmployeeAssessmentRepo")
  return &employeeAssessmentRepo{db: db, log: repoLog}
}

func (r *employeeAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.EmployeeAssessment) ([]*types.EmployeeAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(results) == 0 {
    return []*types.EmployeeAssessment{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByEmployeeID loads results with the joined assessment definition so
// callers can partition on its kind.
func (r *employeeAssessmentRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeAssessment, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.EmployeeAssessment
  if err := transaction.WithContext(ctx).
    Preload("Assessment").
    Where("employee_id = ?", employeeID).
    Order("created_at ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
