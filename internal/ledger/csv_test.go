package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagyebu/gagyebu/internal/model"
)

func TestWriteTransactions(t *testing.T) {
	txns := []model.Transaction{
		{Date: "2024-01-15", Amount: decimal.NewFromInt(10000), Type: model.TxExpense, Merchant: "커피숍, 강남점", Time: "09:10"},
		{Date: "2024-01-16", Amount: decimal.NewFromInt(50000), Type: model.TxIncome, Merchant: "급여"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, txns))

	want := "date,time,type,amount,merchant\n" +
		"2024-01-15,09:10,expense,10000,\"커피숍, 강남점\"\n" +
		"2024-01-16,,income,50000,급여\n"
	assert.Equal(t, want, buf.String())

	got, err := ReadTransactions(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "커피숍, 강남점", got[0].Merchant)
	assert.True(t, txns[1].Amount.Equal(got[1].Amount))
}

func TestReadTransactions_Empty(t *testing.T) {
	txns, err := ReadTransactions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestUnmarshalTransaction_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record []string
		want   string
	}{
		{"short", []string{"2024-01-01"}, "expected 5 fields"},
		{"bad date", []string{"2024/01/01", "", "expense", "1", ""}, "parsing date"},
		{"bad amount", []string{"2024-01-01", "", "expense", "lots", ""}, "parsing amount"},
		{"bad type", []string{"2024-01-01", "", "refund", "1", ""}, "unknown type"},
	}
	for _, tt := range tests {
		_, err := UnmarshalTransaction(tt.record)
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), tt.want, tt.name)
	}
}
