// Package api serves statement previews, imports and ledger queries over HTTP.
package api

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gagyebu/gagyebu/internal/buildinfo"
	"github.com/gagyebu/gagyebu/internal/importer"
	"github.com/gagyebu/gagyebu/internal/model"
	"github.com/gagyebu/gagyebu/internal/statement"
	"github.com/gagyebu/gagyebu/internal/store"
	"github.com/gagyebu/gagyebu/internal/workbook"
)

// Error codes returned in StatementResponse.Code.
const (
	CodeMissingFile       = "missing_file"
	CodeUnsupportedFormat = "unsupported_format"
	CodeUnreadable        = "unreadable_statement"
	CodeHeaderNotFound    = "header_not_found"
	CodeColumnMapping     = "column_mapping_incomplete"
	CodeInvalidMonth      = "invalid_month"
	CodeInternal          = "internal"
)

// Ledger is the part of the transaction store the API reads.
type Ledger interface {
	List(month string) ([]model.Transaction, error)
	Summarize(month string) (store.Summary, error)
}

// StatementResponse is the JSON body of the statement endpoints.
type StatementResponse struct {
	Success      bool                   `json:"success"`
	Error        string                 `json:"error,omitempty"`
	Code         string                 `json:"code,omitempty"`
	File         string                 `json:"file,omitempty"`
	Transactions []model.Transaction    `json:"transactions"`
	Count        int                    `json:"count"`
	TotalIncome  decimal.Decimal        `json:"totalIncome"`
	TotalExpense decimal.Decimal        `json:"totalExpense"`
	Diagnostics  *statement.Diagnostics `json:"diagnostics,omitempty"`
	Saved        *store.SaveResult      `json:"saved,omitempty"`

	// Set when the header was found but could not be mapped.
	Headers []string        `json:"headers,omitempty"`
	Columns model.HeaderMap `json:"columns,omitempty"`
	Missing []model.Role    `json:"missing,omitempty"`
}

// ErrorResponse is the JSON body of failed query endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Parser   *statement.Parser
	Importer *importer.Service
	Ledger   Ledger
	Log      zerolog.Logger
}

// New builds a fiber app with every route registered.
func New(h *Handler, bodyLimitMB int) *fiber.App {
	cfg := fiber.Config{
		AppName:               "gagyebu",
		DisableStartupMessage: true,
	}
	if bodyLimitMB > 0 {
		cfg.BodyLimit = bodyLimitMB << 20
	}
	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(h.logRequests)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.handleHealth)
	api.Post("/statements/preview", h.handlePreview)
	api.Post("/statements/import", h.handleImport)
	api.Get("/transactions", h.handleTransactions)
	api.Get("/summary", h.handleSummary)
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.Log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *Handler) handlePreview(c *fiber.Ctx) error {
	name, data, err := uploadedFile(c)
	if err != nil {
		return writeStatementError(c, fiber.StatusBadRequest, CodeMissingFile, err)
	}

	res, err := h.Parser.Parse(data)
	if err != nil {
		return writeParseError(c, name, err)
	}
	return c.JSON(statementResponse(name, res))
}

func (h *Handler) handleImport(c *fiber.Ctx) error {
	name, data, err := uploadedFile(c)
	if err != nil {
		return writeStatementError(c, fiber.StatusBadRequest, CodeMissingFile, err)
	}

	out := h.Importer.ImportData(name, data, false)
	h.Importer.Record(h.Importer.LogEntry(out))
	if out.Err != nil {
		if out.Result == nil {
			return writeParseError(c, name, out.Err)
		}
		h.Log.Error().Err(out.Err).Str("file", name).Msg("import failed")
		return writeStatementError(c, fiber.StatusInternalServerError, CodeInternal, out.Err)
	}

	resp := statementResponse(name, out.Result)
	resp.Saved = &out.Saved
	return c.JSON(resp)
}

func (h *Handler) handleTransactions(c *fiber.Ctx) error {
	txns, err := h.Ledger.List(c.Query("month"))
	if err != nil {
		return writeQueryError(c, err)
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"transactions": txns,
		"count":        len(txns),
	})
}

func (h *Handler) handleSummary(c *fiber.Ctx) error {
	sum, err := h.Ledger.Summarize(c.Query("month"))
	if err != nil {
		return writeQueryError(c, err)
	}
	return c.JSON(sum)
}

func uploadedFile(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, errors.New("no file uploaded, use form field 'file'")
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("reading upload: %w", err)
	}
	return fh.Filename, data, nil
}

func statementResponse(name string, res *statement.Result) StatementResponse {
	// nil marshals to null, not [].
	txns := res.Transactions
	if txns == nil {
		txns = []model.Transaction{}
	}

	resp := StatementResponse{
		Success:      true,
		File:         name,
		Transactions: txns,
		Count:        len(txns),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Diagnostics:  &res.Diagnostics,
	}
	for _, t := range txns {
		if t.Type == model.TxIncome {
			resp.TotalIncome = resp.TotalIncome.Add(t.Amount)
		} else {
			resp.TotalExpense = resp.TotalExpense.Add(t.Amount)
		}
	}
	return resp
}

func writeParseError(c *fiber.Ctx, name string, err error) error {
	var mapping *statement.ColumnMappingError
	switch {
	case errors.Is(err, workbook.ErrUnsupportedFormat):
		return writeStatementError(c, fiber.StatusUnsupportedMediaType, CodeUnsupportedFormat, err)
	case errors.As(err, &mapping):
		resp := StatementResponse{
			Error:        err.Error(),
			Code:         CodeColumnMapping,
			File:         name,
			Transactions: []model.Transaction{},
			Headers:      mapping.Headers,
			Columns:      mapping.Columns,
			Missing:      mapping.Missing,
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	case errors.Is(err, statement.ErrHeaderNotFound):
		return writeStatementError(c, fiber.StatusUnprocessableEntity, CodeHeaderNotFound, err)
	default:
		return writeStatementError(c, fiber.StatusUnprocessableEntity, CodeUnreadable, err)
	}
}

func writeStatementError(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(StatementResponse{
		Error:        err.Error(),
		Code:         code,
		Transactions: []model.Transaction{},
	})
}

func writeQueryError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, CodeInternal
	if errors.Is(err, store.ErrInvalidMonth) {
		status, code = fiber.StatusBadRequest, CodeInvalidMonth
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error(), Code: code})
}
