package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type EmployeeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, employees []*types.Employee) ([]*types.Employee, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) ([]*types.Employee, error)
}

type employeeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
  repoLog := baseLog.With("repo", "EmployeeRepo")
  return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employees []*types.Employee) ([]*types.Employee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(employees) == 0 {
    return []*types.Employee{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&employees).Error; err != nil {
    return nil, err
  }
  return employees, nil
}

func (r *employeeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, employeeIDs []uuid.UUID) ([]*types.Employee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Employee
  if len(employeeIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", employeeIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
