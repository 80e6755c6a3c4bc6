package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/manishchum/Lucid-Prototype/internal/logger"
  "github.com/manishchum/Lucid-Prototype/internal/types"
)

type AssessmentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, defs []*types.AssessmentDefinition) ([]*types.AssessmentDefinition, error)
  FindModuleQuiz(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, learningStyle string) (*types.AssessmentDefinition, error)
}

type assessmentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
  repoLog := baseLog.With("repo", "AssessmentRepo")
  return &assessmentRepo{db: db, log: repoLog}
}

func (r *assessmentRepo) Create(ctx context.Context, tx *gorm.DB, defs []*types.AssessmentDefinition) ([]*types.AssessmentDefinition, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(defs) == 0 {
    return []*types.AssessmentDefinition{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&defs).Error; err != nil {
    return nil, err
  }
  return defs, nil
}

func (r *assessmentRepo) FindModuleQuiz(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, learningStyle string) (*types.AssessmentDefinition, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.AssessmentDefinition
  if err := transaction.WithContext(ctx).
    Where("type = ? AND module_id = ? AND learning_style = ?", types.AssessmentKindModule, moduleID, learningStyle).
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
