package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type KPIRepo interface {
  CreateKPIs(ctx context.Context, tx *gorm.DB, kpis []*types.KPI) ([]*types.KPI, error)
  CreateEmployeeKPIs(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeKPI) ([]*types.EmployeeKPI, error)
  GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeKPI, error)
}

type kpiRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewKPIRepo(db *gorm.DB, baseLog *logger.Logger) KPIRepo {
  repoLog := baseLog.With("repo", "KPIRepo")
  return &kpiRepo{db: db, log: repoLog}
}

func (r *kpiRepo) CreateKPIs(ctx context.Context, tx *gorm.DB, kpis []*types.KPI) ([]*types.KPI, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(kpis) == 0 {
    return []*types.KPI{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&kpis).Error; err != nil {
    return nil, err
  }
  return kpis, nil
}

func (r *kpiRepo) CreateEmployeeKPIs(ctx context.Context, tx *gorm.DB, rows []*types.EmployeeKPI) ([]*types.EmployeeKPI, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.EmployeeKPI{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *kpiRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) ([]*types.EmployeeKPI, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.EmployeeKPI
  if err := transaction.WithContext(ctx).
    Preload("KPI").
    Where("employee_id = ?", employeeID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
