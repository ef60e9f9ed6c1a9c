package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gagyebu/gagyebu/internal/model"
)

// Record is a stored transaction.
type Record struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	Fingerprint string          `gorm:"uniqueIndex;not null"`
	BatchID     string          `gorm:"index;not null"`
	Source      string          // statement file name
	Date        string          `gorm:"index;not null"`
	Time        string
	Type        string          `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:text;not null"`
	Merchant    string
}

// TableName keeps the table name independent of the struct name.
func (Record) TableName() string { return "transactions" }

func (r Record) transaction() model.Transaction {
	return model.Transaction{
		Date:     r.Date,
		Amount:   r.Amount,
		Type:     model.TxType(r.Type),
		Merchant: r.Merchant,
		Time:     r.Time,
	}
}

// Summary totals one month of transactions.
type Summary struct {
	Month        string          `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Net          decimal.Decimal `json:"net"`
	IncomeCount  int             `json:"incomeCount"`
	ExpenseCount int             `json:"expenseCount"`
}

// SaveResult counts what SaveAll did.
type SaveResult struct {
	BatchID    string `json:"batchId"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
}
