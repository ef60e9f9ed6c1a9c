package statement

import (
	"github.com/shopspring/decimal"

	"github.com/gagyebu/gagyebu/internal/cell"
	"github.com/gagyebu/gagyebu/internal/model"
)

// Extraction is the output of ExtractRows.
type Extraction struct {
	Transactions []model.Transaction
	Scanned      int
	Skipped      int
}

// ExtractRows converts data rows into transactions, in order.
// Rows without a valid date or a positive amount are skipped.
func ExtractRows(rows []model.Row, m Mapping) Extraction {
	var out Extraction
	for _, row := range rows {
		out.Scanned++
		txn, ok := extractRow(row, m)
		if !ok {
			out.Skipped++
			continue
		}
		out.Transactions = append(out.Transactions, txn)
	}
	return out
}

func extractRow(row model.Row, m Mapping) (model.Transaction, bool) {
	dateCol, ok := m.Columns.Column(model.RoleDate)
	if !ok {
		return model.Transaction{}, false
	}
	date, ok := cell.NormalizeDate(row.At(dateCol).String())
	if !ok {
		return model.Transaction{}, false
	}

	amount, txType, ok := resolveAmount(row, m)
	if !ok || !amount.IsPositive() {
		return model.Transaction{}, false
	}

	txn := model.Transaction{
		Date:     date,
		Amount:   amount,
		Type:     txType,
		Merchant: firstText(row, m.Candidates[model.RoleMerchant]),
	}
	if col, ok := m.Columns.Column(model.RoleTime); ok {
		txn.Time = cell.Clean(row.At(col).String())
	}
	return txn, true
}

// resolveAmount prefers separate withdrawal/deposit columns. Without them it takes the
// first non-zero amount-like column and assumes an expense.
func resolveAmount(row model.Row, m Mapping) (decimal.Decimal, model.TxType, bool) {
	if m.Columns.HasSplitAmounts() {
		if v := amountAt(row, m.Columns, model.RoleDeposit); !v.IsZero() {
			return v, model.TxIncome, true
		}
		if v := amountAt(row, m.Columns, model.RoleWithdrawal); !v.IsZero() {
			return v, model.TxExpense, true
		}
		return decimal.Zero, "", false
	}

	for _, col := range m.Candidates[model.RoleAmount] {
		if v := amountOf(row.At(col)); !v.IsZero() {
			return v, model.TxExpense, true
		}
	}
	return decimal.Zero, "", false
}

func amountAt(row model.Row, cols model.HeaderMap, role model.Role) decimal.Decimal {
	col, ok := cols.Column(role)
	if !ok {
		return decimal.Zero
	}
	return amountOf(row.At(col))
}

// amountOf reads numeric cells by value. A date-formatted amount keeps its serial.
func amountOf(c model.Cell) decimal.Decimal {
	if c.IsNumeric() {
		return decimal.NewFromFloat(c.Number)
	}
	return cell.NormalizeAmount(c.String())
}

func firstText(row model.Row, cols []int) string {
	for _, col := range cols {
		if s := cell.Clean(row.At(col).String()); s != "" {
			return s
		}
	}
	return ""
}
