package models

import "time"

// Expense is a single spending record belonging to a user. The category is
// stored lower-cased; Amount uses a decimal column so SUM/GROUP BY stay exact.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"index;not null" json:"usuario_id"`
	Description string    `gorm:"size:255;not null" json:"descricao"`
	Category    string    `gorm:"size:100;not null;index" json:"categoria"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"valor"`
	Date        time.Time `gorm:"not null;index" json:"data"`
}
