package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Todo is a single list item owned by exactly one user.
type Todo struct {
	ID         string    `json:"_id" gorm:"type:char(36);primaryKey"`
	Seq        uint64    `json:"-" gorm:"autoIncrement;uniqueIndex"` // insertion order; ids are random
	Value      string    `json:"value" gorm:"type:text;not null"`
	IsComplete bool      `json:"isComplete" gorm:"not null;default:false"`
	UserID     string    `json:"userId" gorm:"size:255;not null;index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Todo) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
