package models

import "time"

const (
	BillStatusActive   = "ativo"
	BillStatusInactive = "inativo"
)

// FixedBill is the template for one recurring monthly charge (card,
// subscription, rent). Only the template is stored, never the occurrences.
// DueDay is kept in 1..31 with no per-month calendar check: day 31 in a
// 30-day month is accepted.
type FixedBill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"index;not null" json:"usuario_id"`
	Description string    `gorm:"size:255;not null" json:"descricao"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null" json:"valor_total"`
	DueDay      int       `gorm:"not null" json:"dia_vencimento"`
	Category    string    `gorm:"size:100;default:cartao" json:"categoria"`
	Status      string    `gorm:"size:32;default:ativo" json:"status"`
}

// GetID lets the reconcile engine diff bills by id.
func (b FixedBill) GetID() uint { return b.ID }
