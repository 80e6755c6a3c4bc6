package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const PlanStatusAssigned = "assigned"

// TrainingPlan is the cached generation artifact. AssessmentHash fingerprints
// the baseline-assessment inputs the plan was derived from; an unchanged hash
// means the stored plan is authoritative and no completion call is needed.
type TrainingPlan struct {
  ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  EmployeeID     uuid.UUID      `gorm:"type:uuid;not null;index;column:employee_id" json:"employee_id"`
  PlanJSON       datatypes.JSON `gorm:"column:plan_json" json:"plan_json"`
  Reasoning      datatypes.JSON `gorm:"column:reasoning" json:"reasoning"`
  Status         string         `gorm:"not null;index;column:status" json:"status"`
  AssessmentHash string         `gorm:"column:assessment_hash" json:"assessment_hash"`
  CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
}

func (TrainingPlan) TableName() string {
  return "learning_plan"
}
