package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardResponse aggregates stock, sales and lead metrics for the
// back-office dashboard. Monetary figures are decimal strings; sales with no
// linked purchase are excluded from TotalProfit and counted separately in
// SalesWithoutProfit instead of being treated as zero profit.
type DashboardResponse struct {
	TimeRangeStartDate time.Time `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time `json:"time_range_end_date"`

	VehiclesAvailable int64 `json:"vehicles_available"`
	VehiclesReserved  int64 `json:"vehicles_reserved"`
	VehiclesSold      int64 `json:"vehicles_sold"`

	StockValue string `json:"stock_value"` // sum of asking prices of unsold vehicles

	SalesCount         int    `json:"sales_count"`
	TotalRevenue       string `json:"total_revenue"` // sum of final prices
	TotalProfit        string `json:"total_profit"`  // sum of known profits incl VAT
	SalesWithoutProfit int    `json:"sales_without_profit"`

	OpenLeads int64 `json:"open_leads"`
}

type StatisticsService interface {
	GetDashboard(ctx context.Context, startDate, endDate time.Time) (DashboardResponse, error)
}

type statisticsService struct {
	db       *gorm.DB
	saleRepo repository.SaleRepository
	leadRepo repository.LeadRepository
}

func NewStatisticsService(db *gorm.DB, saleRepo repository.SaleRepository, leadRepo repository.LeadRepository) StatisticsService {
	return &statisticsService{db: db, saleRepo: saleRepo, leadRepo: leadRepo}
}

// GetDashboard aggregates stock counts, stock value, sales figures over the
// given date range and the open lead count.
func (s *statisticsService) GetDashboard(ctx context.Context, startDate, endDate time.Time) (DashboardResponse, error) {
	response := DashboardResponse{
		TimeRangeStartDate: startDate,
		TimeRangeEndDate:   endDate,
	}

	for _, bucket := range []struct {
		status string
		dst    *int64
	}{
		{model.VehicleAvailable, &response.VehiclesAvailable},
		{model.VehicleReserved, &response.VehiclesReserved},
		{model.VehicleSold, &response.VehiclesSold},
	} {
		if err := s.db.WithContext(ctx).Model(&model.Vehicle{}).
			Where("status = ?", bucket.status).Count(bucket.dst).Error; err != nil {
			return DashboardResponse{}, fmt.Errorf("failed to count vehicles: %w", err)
		}
	}

	// Stock value: asking prices of everything still on the lot.
	var stockValue struct {
		Value decimal.Decimal
	}
	if err := s.db.WithContext(ctx).Model(&model.Vehicle{}).
		Select("COALESCE(SUM(asking_price), 0) as value").
		Where("status IN ?", []string{model.VehicleAvailable, model.VehicleReserved}).
		Scan(&stockValue).Error; err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to sum stock value: %w", err)
	}
	response.StockValue = stockValue.Value.StringFixed(2)

	// Sales figures are summed in Go so profit stays decimal and absent
	// profits stay absent.
	sales, err := s.saleRepo.ListBetween(ctx, startDate, endDate)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to fetch sales: %w", err)
	}

	revenue := decimal.Zero
	profit := decimal.Zero
	withoutProfit := 0
	for _, sale := range sales {
		revenue = revenue.Add(sale.FinalPrice)
		if sale.ProfitInclVAT != nil {
			profit = profit.Add(*sale.ProfitInclVAT)
		} else {
			withoutProfit++
		}
	}
	response.SalesCount = len(sales)
	response.TotalRevenue = revenue.StringFixed(2)
	response.TotalProfit = profit.StringFixed(2)
	response.SalesWithoutProfit = withoutProfit

	openLeads, err := s.leadRepo.CountByStatus(ctx, model.LeadStatusNew)
	if err != nil {
		return DashboardResponse{}, fmt.Errorf("failed to count leads: %w", err)
	}
	response.OpenLeads = openLeads

	return response, nil
}
