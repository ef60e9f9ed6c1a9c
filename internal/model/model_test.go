package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHeaderMapMissing(t *testing.T) {
	tests := []struct {
		name string
		m    HeaderMap
		want []Role
	}{
		{"split amounts", HeaderMap{RoleDate: 0, RoleWithdrawal: 1, RoleDeposit: 2}, nil},
		{"deposit only", HeaderMap{RoleDate: 0, RoleDeposit: 2}, nil},
		{"generic amount", HeaderMap{RoleDate: 0, RoleAmount: 3}, nil},
		{"no date", HeaderMap{RoleAmount: 3}, []Role{RoleDate}},
		{"no amount", HeaderMap{RoleDate: 0, RoleMerchant: 1}, []Role{RoleAmount}},
		{"empty", HeaderMap{}, []Role{RoleDate, RoleAmount}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.m.Missing(), tt.name)
		assert.Equal(t, tt.want == nil, tt.m.Valid(), tt.name)
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Cell{}.String())
	assert.Equal(t, "커피숍", TextCell("커피숍").String())
	assert.Equal(t, "10000", NumberCell(10000).String())
	assert.Equal(t, "1234.5", NumberCell(1234.5).String())
	assert.True(t, TextCell("   ").IsEmpty())
}

func TestDateCell(t *testing.T) {
	day := DateCell(45306, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, CellDate, day.Kind)
	assert.Equal(t, "2024-01-15", day.String())
	assert.True(t, day.IsNumeric())
	assert.Equal(t, 45306.0, day.Number)

	withClock := DateCell(45306.4375, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-01-15 10:30:00", withClock.String())

	clock := DateCell(0.4375, time.Date(1899, 12, 30, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, "10:30:00", clock.String())

	assert.True(t, NumberCell(1).IsNumeric())
	assert.False(t, TextCell("1").IsNumeric())
}

func TestRowAt(t *testing.T) {
	row := TextRow("a", "", "c")
	assert.Equal(t, "a", row.At(0).String())
	assert.True(t, row.At(1).IsEmpty())
	assert.True(t, row.At(9).IsEmpty())
	assert.True(t, row.At(-1).IsEmpty())
	assert.False(t, row.IsBlank())
	assert.True(t, TextRow("", " ").IsBlank())
}

func TestTransactionValid(t *testing.T) {
	txn := Transaction{Date: "2024-01-15", Amount: decimal.NewFromInt(10000), Type: TxExpense}
	assert.True(t, txn.Valid())
	assert.Equal(t, "2024-01", txn.Month())

	assert.False(t, Transaction{Date: "2024-01-15"}.Valid())
	assert.False(t, Transaction{Amount: decimal.NewFromInt(1)}.Valid())
	assert.False(t, Transaction{Date: "2024-01-15", Amount: decimal.NewFromInt(-5)}.Valid())
}
