package types

import (
  "time"
  "github.com/google/uuid"
)

type Company struct {
  ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name      string    `gorm:"not null;column:name" json:"name"`
  CreatedAt time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Company) TableName() string {
  return "companies"
}
