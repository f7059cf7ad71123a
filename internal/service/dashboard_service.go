package service

import (
	"time"

	"go-coffee-warehouse/internal/repository"
)

type DashboardService interface {
	GetStockMovement(days int) ([]repository.StockMovementData, error)
	GetOverviewStats() (*repository.OverviewStats, error)
	GetTradeSummary(startDate, endDate time.Time) (*TradeSummary, error)
}

type TradeSummary struct {
	ImportValue int64 `json:"import_value"`
	ExportValue int64 `json:"export_value"`
}

type dashboardService struct {
	txRepo repository.TransactionRepository
}

func NewDashboardService(txRepo repository.TransactionRepository) DashboardService {
	return &dashboardService{txRepo: txRepo}
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(startDate, endDate)
}

func (s *dashboardService) GetOverviewStats() (*repository.OverviewStats, error) {
	return s.txRepo.GetOverviewStats()
}

func (s *dashboardService) GetTradeSummary(startDate, endDate time.Time) (*TradeSummary, error) {
	imported, exported, err := s.txRepo.GetTradeSummary(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return &TradeSummary{ImportValue: imported, ExportValue: exported}, nil
}
