package models

import (
	"time"

	"gorm.io/datatypes"
)

// NutritionAPIResponse is an append-only audit record of every call made to
// the external nutrition API. Written on each successful lookup, never read
// back.
type NutritionAPIResponse struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      *uint          `gorm:"index" json:"userId"`
	Query       string         `gorm:"not null" json:"query"`
	RawResponse datatypes.JSON `gorm:"type:jsonb" json:"rawResponse"`
	ItemCount   int            `json:"itemCount"`
	CreatedAt   time.Time      `json:"createdAt"`
}
