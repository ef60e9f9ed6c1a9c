package model

import (
	"github.com/shopspring/decimal"
)

// TxType says which way money moved.
type TxType string

const (
	TxIncome  TxType = "income"
	TxExpense TxType = "expense"
)

// DateLayout is the canonical transaction date format.
const DateLayout = "2006-01-02"

// Transaction is one normalized statement row, independent of the issuer format.
type Transaction struct {
	Date     string          `json:"date"`   // YYYY-MM-DD
	Amount   decimal.Decimal `json:"amount"` // always positive, whole currency units
	Type     TxType          `json:"type"`
	Merchant string          `json:"merchant"`
	Time     string          `json:"time,omitempty"` // raw passthrough
}

// Valid reports whether t holds a date and a strictly positive amount.
func (t Transaction) Valid() bool {
	return len(t.Date) == len(DateLayout) && t.Amount.IsPositive()
}

// Month returns the "YYYY-MM" prefix of the transaction date.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}
