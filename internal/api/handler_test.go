package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagyebu/gagyebu/internal/importer"
	"github.com/gagyebu/gagyebu/internal/importlog"
	"github.com/gagyebu/gagyebu/internal/model"
	"github.com/gagyebu/gagyebu/internal/statement"
	"github.com/gagyebu/gagyebu/internal/store"
)

const bankCSV = "거래일자,출금(원),입금(원),내용\n" +
	"2024-01-15,\"10,000\",,커피숍\n" +
	"2024-01-16,,\"50,000\",급여\n" +
	"합계,\"10,000\",\"50,000\",\n"

type fakeLedger struct {
	saved []model.Transaction
}

func (f *fakeLedger) SaveAll(batchID, source string, txns []model.Transaction) (store.SaveResult, error) {
	f.saved = append(f.saved, txns...)
	return store.SaveResult{BatchID: batchID, Inserted: len(txns)}, nil
}

func (f *fakeLedger) List(month string) ([]model.Transaction, error) {
	if month == "bad" {
		return nil, store.ErrInvalidMonth
	}
	return f.saved, nil
}

func (f *fakeLedger) Summarize(month string) (store.Summary, error) {
	if month == "bad" {
		return store.Summary{}, store.ErrInvalidMonth
	}
	sum := store.Summary{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range f.saved {
		if t.Type == model.TxIncome {
			sum.Income = sum.Income.Add(t.Amount)
			sum.IncomeCount++
		} else {
			sum.Expense = sum.Expense.Add(t.Amount)
			sum.ExpenseCount++
		}
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return sum, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *fakeLedger, string) {
	t.Helper()
	root := t.TempDir()
	ledger := &fakeLedger{}
	parser := statement.New(statement.Options{})
	h := &Handler{
		Parser:   parser,
		Importer: importer.NewService(root, parser, ledger, zerolog.Nop()),
		Ledger:   ledger,
		Log:      zerolog.Nop(),
	}
	return New(h, 1), ledger, root
}

func uploadRequest(t *testing.T, path, name string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}

func TestHealthEndpoint(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", result["status"])
}

func TestPreview(t *testing.T) {
	app, ledger, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/api/statements/preview", "bank.csv", []byte(bankCSV)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	assert.True(t, result.Success)
	assert.Equal(t, "bank.csv", result.File)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, "2024-01-15", result.Transactions[0].Date)
	assert.Equal(t, model.TxExpense, result.Transactions[0].Type)
	assert.True(t, decimal.NewFromInt(50000).Equal(result.TotalIncome))
	assert.True(t, decimal.NewFromInt(10000).Equal(result.TotalExpense))

	require.NotNil(t, result.Diagnostics)
	assert.Equal(t, "csv", result.Diagnostics.Format)
	assert.Equal(t, statement.StrategyKeyword, result.Diagnostics.Strategy)
	assert.Equal(t, 1, result.Diagnostics.RowsSkipped)

	// Preview never stores.
	assert.Empty(t, ledger.saved)
}

func TestPreview_RequiresFile(t *testing.T) {
	app, _, _ := setupTestApp(t)

	req := httptest.NewRequest("POST", "/api/statements/preview", nil)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=----test")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	assert.Equal(t, CodeMissingFile, result.Code)
}

func TestPreview_UnsupportedFormat(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/api/statements/preview", "empty.xls", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	assert.False(t, result.Success)
	assert.Equal(t, CodeUnsupportedFormat, result.Code)
}

func TestPreview_HeaderNotFound(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/api/statements/preview", "notes.csv", []byte("hello,world\nfoo,bar\n")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	assert.Equal(t, CodeHeaderNotFound, result.Code)
}

func TestPreview_ColumnMappingIncomplete(t *testing.T) {
	app, _, _ := setupTestApp(t)

	// The marker points at a header with no amount column.
	data := []byte("거래내역\n이용일자,비고\n2024-01-15,x\n")
	resp, err := app.Test(uploadRequest(t, "/api/statements/preview", "odd.csv", data))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	assert.Equal(t, CodeColumnMapping, result.Code)
	assert.Equal(t, []string{"이용일자", "비고"}, result.Headers)
	assert.Equal(t, 0, result.Columns[model.RoleDate])
	assert.Contains(t, result.Missing, model.RoleAmount)
}

func TestImport(t *testing.T) {
	app, ledger, root := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/api/statements/import", "bank.csv", []byte(bankCSV)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode[StatementResponse](t, resp)
	require.NotNil(t, result.Saved)
	assert.Equal(t, 2, result.Saved.Inserted)
	assert.NotEmpty(t, result.Saved.BatchID)
	assert.Len(t, ledger.saved, 2)

	entries, err := importlog.Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bank.csv", entries[0].File)
	assert.Equal(t, 2, entries[0].Inserted)
}

func TestTransactionsAndSummary(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(uploadRequest(t, "/api/statements/import", "bank.csv", []byte(bankCSV)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/transactions?month=2024-01", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[struct {
		Transactions []model.Transaction `json:"transactions"`
		Count        int                 `json:"count"`
	}](t, resp)
	assert.Equal(t, 2, list.Count)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/summary?month=2024-01", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sum := decode[store.Summary](t, resp)
	assert.True(t, decimal.NewFromInt(40000).Equal(sum.Net))
}

func TestQuery_InvalidMonth(t *testing.T) {
	app, _, _ := setupTestApp(t)

	for _, path := range []string{"/api/transactions?month=bad", "/api/summary?month=bad"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)

		result := decode[ErrorResponse](t, resp)
		assert.Equal(t, CodeInvalidMonth, result.Code)
	}
}
