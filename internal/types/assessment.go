package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  AssessmentKindBaseline = "baseline"
  AssessmentKindModule   = "module"
)

// AssessmentDefinition is the question set for either the company-wide
// baseline assessment or a per-module quiz. Module quizzes are additionally
// scoped to a learning style so each style gets its own generated variant.
type AssessmentDefinition struct {
  ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  CompanyID     *uuid.UUID     `gorm:"type:uuid;index;column:company_id" json:"company_id,omitempty"`
  Type          string         `gorm:"not null;index;column:type" json:"type"`
  ModuleID      *uuid.UUID     `gorm:"type:uuid;index;column:module_id" json:"module_id,omitempty"`
  LearningStyle string         `gorm:"column:learning_style" json:"learning_style,omitempty"`
  Questions     datatypes.JSON `gorm:"column:questions" json:"questions"`
  CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time      `gorm:"not null" json:"updated_at"`
}

func (AssessmentDefinition) TableName() string {
  return "assessments"
}

// EmployeeAssessment is an immutable record of one completed assessment
// instance. Rows are only ever inserted.
type EmployeeAssessment struct {
  ID           uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
  EmployeeID   uuid.UUID             `gorm:"type:uuid;not null;index;column:employee_id" json:"employee_id"`
  AssessmentID uuid.UUID             `gorm:"type:uuid;not null;index;column:assessment_id" json:"assessment_id"`
  Score        float64               `gorm:"not null;column:score" json:"score"`
  MaxScore     float64               `gorm:"not null;column:max_score" json:"max_score"`
  Feedback     string                `gorm:"column:feedback" json:"feedback"`
  Assessment   *AssessmentDefinition `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
  CreatedAt    time.Time             `gorm:"not null" json:"created_at"`
}

func (EmployeeAssessment) TableName() string {
  return "employee_assessments"
}
