package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type LearningStyleRepo interface {
  Create(ctx context.Context, tx *gorm.DB, record *types.LearningStyleRecord) (*types.LearningStyleRecord, error)
  GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.LearningStyleRecord, error)
  UpdateClassification(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, styleCode, analysis string) error
}

type learningStyleRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLearningStyleRepo(db *gorm.DB, baseLog *logger.Logger) LearningStyleRepo {
  repoLog := baseLog.With("repo", "LearningStyleRepo")
  return &learningStyleRepo{db: db, log: repoLog}
}

func (r *learningStyleRepo) Create(ctx context.Context, tx *gorm.DB, record *types.LearningStyleRecord) (*types.LearningStyleRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
    return nil, err
  }
  return record, nil
}

func (r *learningStyleRepo) GetByEmployeeID(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID) (*types.LearningStyleRecord, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.LearningStyleRecord
  if err := transaction.WithContext(ctx).
    Where("employee_id = ?", employeeID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

// UpdateClassification fills in the style code and analysis after the
// classification call succeeds. The survey answers themselves are never
// touched again.
func (r *learningStyleRepo) UpdateClassification(ctx context.Context, tx *gorm.DB, employeeID uuid.UUID, styleCode, analysis string) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if err := transaction.WithContext(ctx).
    Model(&types.LearningStyleRecord{}).
    Where("employee_id = ?", employeeID).
    Updates(map[string]any{
      "learning_style": styleCode,
      "gpt_analysis":   analysis,
      "updated_at":     time.Now(),
    }).Error; err != nil {
    return err
  }
  return nil
}
