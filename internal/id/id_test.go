package id

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagyebu/gagyebu/internal/model"
)

func coffee() model.Transaction {
	return model.Transaction{
		Date:     "2024-01-15",
		Amount:   decimal.NewFromInt(4500),
		Type:     model.TxExpense,
		Merchant: "커피숍",
	}
}

func TestFingerprint_Stable(t *testing.T) {
	a := Fingerprint(coffee(), 1)
	b := Fingerprint(coffee(), 1)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "tx_"))
	assert.Len(t, a, 3+2*fingerprintBytes)
}

func TestFingerprint_AmountScaleIgnored(t *testing.T) {
	other := coffee()
	other.Amount = decimal.RequireFromString("4500.00")
	assert.Equal(t, Fingerprint(coffee(), 1), Fingerprint(other, 1))
}

func TestFingerprint_FieldsMatter(t *testing.T) {
	base := Fingerprint(coffee(), 1)

	variants := []func(*model.Transaction){
		func(t *model.Transaction) { t.Date = "2024-01-16" },
		func(t *model.Transaction) { t.Amount = decimal.NewFromInt(4600) },
		func(t *model.Transaction) { t.Type = model.TxIncome },
		func(t *model.Transaction) { t.Merchant = "빵집" },
		func(t *model.Transaction) { t.Time = "09:00" },
	}
	for i, mutate := range variants {
		txn := coffee()
		mutate(&txn)
		assert.NotEqual(t, base, Fingerprint(txn, 1), "variant %d", i)
	}
	assert.NotEqual(t, base, Fingerprint(coffee(), 2))
}

func TestFingerprints_NumbersRepeats(t *testing.T) {
	other := coffee()
	other.Merchant = "편의점"

	fps := Fingerprints([]model.Transaction{coffee(), other, coffee()})
	require.Len(t, fps, 3)
	assert.Equal(t, Fingerprint(coffee(), 1), fps[0])
	assert.Equal(t, Fingerprint(other, 1), fps[1])
	assert.Equal(t, Fingerprint(coffee(), 2), fps[2])
}

func TestBatchID(t *testing.T) {
	a := NewBatchID()
	b := NewBatchID()
	assert.NotEqual(t, a, b)

	got, err := ParseBatchID(strings.ToUpper(a))
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = ParseBatchID("batch-1")
	assert.Error(t, err)
}
