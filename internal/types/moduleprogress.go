package types

import (
  "time"
  "github.com/google/uuid"
)

// ModuleProgress is the per-employee, per-module completion marker used for
// presentation. It never feeds back into plan generation.
type ModuleProgress struct {
  ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_module_progress_emp_mod;column:employee_id" json:"employee_id"`
  ModuleID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_module_progress_emp_mod;column:module_id" json:"module_id"`
  ViewedAt     *time.Time `gorm:"column:viewed_at" json:"viewed_at,omitempty"`
  QuizScore    *float64   `gorm:"column:quiz_score" json:"quiz_score,omitempty"`
  MaxScore     *float64   `gorm:"column:max_score" json:"max_score,omitempty"`
  QuizFeedback string     `gorm:"column:quiz_feedback" json:"quiz_feedback,omitempty"`
  CompletedAt  *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
  CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (ModuleProgress) TableName() string {
  return "module_progress"
}
