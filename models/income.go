package models

import "time"

const (
	IncomeTypeSalary  = "salario"
	IncomeTypeBenefit = "beneficio"
	IncomeTypeOther   = "outro"
)

// Income is a recurring monthly incoming payment (salary, benefit).
// ReceiptDay follows the same 1..31 policy as FixedBill.DueDay.
type Income struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
	UserID      uint      `gorm:"index;not null" json:"usuario_id"`
	Description string    `gorm:"size:255;not null" json:"descricao"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"valor"`
	ReceiptDay  int       `gorm:"not null" json:"dia_recebimento"`
	Type        string    `gorm:"size:32;not null" json:"tipo"`
	Recurrence  string    `gorm:"size:32;default:mensal" json:"recorrencia"`
}

// GetID lets the reconcile engine diff income sources by id.
func (i Income) GetID() uint { return i.ID }
