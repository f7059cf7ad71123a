package repository

import (
	"time"

	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerFilter narrows ledger reads; nil fields mean "no filter".
type LedgerFilter struct {
	UserID *uuid.UUID
	From   *time.Time
	To     *time.Time
}

type TransactionRepository interface {
	Append(tx *gorm.DB, transaction *model.Transaction) error
	FindAll(filter LedgerFilter) ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)

	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetOverviewStats() (*OverviewStats, error)
	GetTradeSummary(startDate, endDate time.Time) (int64, int64, error)
}

// StockMovementData is one day of aggregated movement, for chart views
type StockMovementData struct {
	Date     string `json:"date"`
	Imported int    `json:"imported"`
	Exported int    `json:"exported"`
}

// OverviewStats for the admin dashboard
type OverviewStats struct {
	TotalProducts  int64 `json:"total_products"`
	TotalValuation int64 `json:"total_valuation"`
	TotalStaff     int64 `json:"total_staff"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Append runs inside the caller's transaction so the ledger entry and the
// catalog mutation commit together or not at all.
func (r *transactionRepo) Append(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

// FindAll returns the ledger most-recent-first
func (r *transactionRepo) FindAll(filter LedgerFilter) ([]model.Transaction, error) {
	query := r.db.Order("timestamp DESC")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", *filter.To)
	}

	var transactions []model.Transaction
	err := query.Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.Transaction{}).
		Select(`
			DATE(timestamp) as date,
			COALESCE(SUM(CASE WHEN type = 'import' THEN quantity ELSE 0 END), 0) as imported,
			COALESCE(SUM(CASE WHEN type = 'export' THEN quantity ELSE 0 END), 0) as exported
		`).
		Where("timestamp BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(timestamp)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Imported, &data.Exported); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetOverviewStats() (*OverviewStats, error) {
	var stats OverviewStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.User{}).Count(&stats.TotalStaff).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetTradeSummary returns total import value and total export value
// (quantity * snapshot unit price) over the date range.
func (r *transactionRepo) GetTradeSummary(startDate, endDate time.Time) (int64, int64, error) {
	var imported int64
	var exported int64

	err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND timestamp BETWEEN ? AND ?", model.TxImport, startDate, endDate).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&imported).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.Model(&model.Transaction{}).
		Where("type = ? AND timestamp BETWEEN ? AND ?", model.TxExport, startDate, endDate).
		Select("COALESCE(SUM(quantity * price), 0)").
		Scan(&exported).Error
	if err != nil {
		return 0, 0, err
	}

	return imported, exported, nil
}
