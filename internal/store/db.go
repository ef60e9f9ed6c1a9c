// Package store persists canonical transactions in SQLite and skips ones already stored.
package store

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gagyebu/gagyebu/internal/id"
	"github.com/gagyebu/gagyebu/internal/model"
)

// ErrInvalidMonth means a month filter was not YYYY-MM.
var ErrInvalidMonth = errors.New("month must be YYYY-MM")

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Store is the transaction database.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("getting database handle: %w", err)
	}
	return sqlDB.Close()
}

// SaveAll stores txns under batchID in one database transaction.
// Transactions whose fingerprint is already stored are counted as duplicates.
func (s *Store) SaveAll(batchID, source string, txns []model.Transaction) (SaveResult, error) {
	result := SaveResult{BatchID: batchID}
	fps := id.Fingerprints(txns)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i, t := range txns {
			if !t.Valid() {
				return fmt.Errorf("transaction %d: invalid date %q or amount %s", i, t.Date, t.Amount)
			}
			rec := Record{
				Fingerprint: fps[i],
				BatchID:     batchID,
				Source:      source,
				Date:        t.Date,
				Time:        t.Time,
				Type:        string(t.Type),
				Amount:      t.Amount,
				Merchant:    t.Merchant,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "fingerprint"}},
				DoNothing: true,
			}).Create(&rec)
			if res.Error != nil {
				return fmt.Errorf("saving transaction %d: %w", i, res.Error)
			}
			if res.RowsAffected == 0 {
				result.Duplicates++
			} else {
				result.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return SaveResult{BatchID: batchID}, err
	}
	return result, nil
}

// List returns transactions in date order. An empty month lists everything.
func (s *Store) List(month string) ([]model.Transaction, error) {
	q := s.db.Model(&Record{}).Order("date").Order("id")
	if month != "" {
		if !monthPattern.MatchString(month) {
			return nil, fmt.Errorf("%q: %w", month, ErrInvalidMonth)
		}
		q = q.Where("date LIKE ?", month+"-%")
	}

	var recs []Record
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	txns := make([]model.Transaction, len(recs))
	for i, r := range recs {
		txns[i] = r.transaction()
	}
	return txns, nil
}

// Summarize totals income and expense for a month.
func (s *Store) Summarize(month string) (Summary, error) {
	txns, err := s.List(month)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Month: month, Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txns {
		switch t.Type {
		case model.TxIncome:
			sum.Income = sum.Income.Add(t.Amount)
			sum.IncomeCount++
		case model.TxExpense:
			sum.Expense = sum.Expense.Add(t.Amount)
			sum.ExpenseCount++
		}
	}
	sum.Net = sum.Income.Sub(sum.Expense)
	return sum, nil
}

// DeleteBatch removes every transaction saved under batchID and returns the count.
func (s *Store) DeleteBatch(batchID string) (int, error) {
	res := s.db.Where("batch_id = ?", batchID).Delete(&Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("deleting batch %s: %w", batchID, res.Error)
	}
	return int(res.RowsAffected), nil
}
