package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// LearningStyleRecord holds one employee's 40 Likert survey answers plus the
// Gregorc classification filled in after the analysis call succeeds.
// At most one row per employee; the survey answers are write-once.
type LearningStyleRecord struct {
  ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  EmployeeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex;column:employee_id" json:"employee_id"`
  Answers    datatypes.JSON `gorm:"not null;column:answers" json:"answers"`
  StyleCode  string         `gorm:"column:learning_style" json:"learning_style,omitempty"`
  Analysis   string         `gorm:"column:gpt_analysis" json:"gpt_analysis,omitempty"`
  CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (LearningStyleRecord) TableName() string {
  return "employee_learning_style"
}
