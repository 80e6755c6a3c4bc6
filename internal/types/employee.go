package types

import (
  "time"
  "github.com/google/uuid"
)

type Employee struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  CompanyID uuid.UUID `gorm:"type:uuid;not null;index;column:company_id" json:"company_id"`
  Name      string    `gorm:"not null;column:name" json:"name"`
  Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Employee) TableName() string {
  return "employees"
}
