package types

import (
  "time"
  "github.com/google/uuid"
)

// TrainingModule is the admin-uploaded source material.
type TrainingModule struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
  Title     string    `gorm:"not null;column:title" json:"title"`
  Content   string    `gorm:"column:content" json:"content"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (TrainingModule) TableName() string {
  return "training_modules"
}

// ProcessedModule is the company-specific rendering of a source module that
// employees actually study. Plan generation reads these, never the sources.
type ProcessedModule struct {
  ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  OriginalModuleID uuid.UUID `gorm:"type:uuid;not null;index;column:original_module_id" json:"original_module_id"`
  Title            string    `gorm:"not null;column:title" json:"title"`
  Content          string    `gorm:"column:content" json:"content"`
  OrderIndex       int       `gorm:"not null;default:0;column:order_index" json:"order_index"`
  CreatedAt        time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (ProcessedModule) TableName() string {
  return "processed_modules"
}
