// Package ledger reads and writes canonical transactions as CSV.
package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gagyebu/gagyebu/internal/model"
)

// Header is the CSV header for exported transactions.
const Header = "date,time,type,amount,merchant"

const (
	numFields   = 5
	colDate     = 0
	colTime     = 1
	colType     = 2
	colAmount   = 3
	colMerchant = 4
)

// ReadTransactions reads all transactions from a CSV reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to w (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date
	row[colTime] = txn.Time
	row[colType] = string(txn.Type)
	row[colAmount] = txn.Amount.String()
	row[colMerchant] = txn.Merchant
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if _, err := time.Parse(model.DateLayout, record[colDate]); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	typ := model.TxType(record[colType])
	if typ != model.TxIncome && typ != model.TxExpense {
		return model.Transaction{}, fmt.Errorf("unknown type %q", record[colType])
	}

	return model.Transaction{
		Date:     record[colDate],
		Amount:   amount,
		Type:     typ,
		Merchant: record[colMerchant],
		Time:     record[colTime],
	}, nil
}
