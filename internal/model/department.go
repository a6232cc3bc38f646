package model

import "github.com/google/uuid"

// Department groups users under an organizational unit
type Department struct {
	BaseModel
	Name        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string     `gorm:"type:text" json:"description"`
	HeadID      *uuid.UUID `gorm:"type:uuid" json:"head_id,omitempty"` // Usually the dean
}

// TableName specifies the table name for GORM
func (Department) TableName() string {
	return "departments"
}
