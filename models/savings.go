package models

import "time"

// Savings holds the single running savings balance and goal for a user.
// The unique index on UserID enforces the 0-or-1 rows per user rule; writes
// go through an ON CONFLICT upsert keyed on it.
type Savings struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"usuario_id"`
	CurrentAmount float64   `gorm:"type:decimal(10,2);not null;default:0" json:"valor_atual"`
	GoalAmount    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"valor_meta"`
	UpdatedOn     time.Time `gorm:"not null" json:"data_atualizacao"`
}
