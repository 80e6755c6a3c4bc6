package types

import (
  "time"
  "github.com/google/uuid"
)

type KPI struct {
  ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CompanyID   uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
  Description string    `gorm:"not null;column:description" json:"description"`
  CreatedAt   time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (KPI) TableName() string {
  return "kpis"
}

type EmployeeKPI struct {
  ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  EmployeeID uuid.UUID `gorm:"type:uuid;not null;index;column:employee_id" json:"employee_id"`
  KPIID      uuid.UUID `gorm:"type:uuid;not null;index;column:kpi_id" json:"kpi_id"`
  Score      float64   `gorm:"not null;column:score" json:"score"`
  KPI        *KPI      `gorm:"foreignKey:KPIID" json:"kpi,omitempty"`
  CreatedAt  time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (EmployeeKPI) TableName() string {
  return "employee_kpi"
}
