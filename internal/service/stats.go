package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mowistore/backend/internal/storage"
	"github.com/shopspring/decimal"
)

// NoCategoryLabel groups order lines and products whose category was removed.
const NoCategoryLabel = "Sin categoría"

// bestSellerLimit caps the best-sellers report; fewer products mean fewer
// entries, never padding.
const bestSellerLimit = 6

// palette is the fixed display color cycle for best-seller entries, assigned
// by rank index mod len(palette).
var palette = [...]string{"#ff6b35", "#ffd93d", "#4299e1", "#48bb78", "#9f7aea", "#ed8936"}

// weeklyWindowDays is the size of the registrations window ending today.
const weeklyWindowDays = 7

// StatsService computes the three read-only dashboard reports.
type StatsService interface {
	SalesByCategory(ctx context.Context) ([]CategorySalesEntry, error)
	BestSellers(ctx context.Context) ([]BestSellerEntry, error)
	WeeklyRegistrations(ctx context.Context) ([]WeeklySignupsEntry, error)
}

type CategorySalesEntry struct {
	Categoria string  `json:"categoria"`
	Total     float64 `json:"total"`
}

type BestSellerEntry struct {
	Nombre     string  `json:"nombre"`
	Categoria  string  `json:"categoria"`
	Vendidos   int     `json:"vendidos"`
	Porcentaje float64 `json:"porcentaje"`
	Color      string  `json:"color"`
}

type WeeklySignupsEntry struct {
	Fecha    string `json:"fecha"`
	Dia      string `json:"dia"`
	Cantidad int    `json:"cantidad"`
}

type statsService struct {
	log       *slog.Logger
	statsRepo storage.StatsStorage
}

func NewStatsService(log *slog.Logger, statsRepo storage.StatsStorage) StatsService {
	return &statsService{
		log:       log,
		statsRepo: statsRepo,
	}
}

// SalesByCategory sums quantity * unit_price per category label, highest total
// first. Sums stay decimal until the report boundary.
func (s *statsService) SalesByCategory(ctx context.Context) ([]CategorySalesEntry, error) {
	const op = "service.StatsService.SalesByCategory"
	s.log.Info("building sales-by-category report", slog.String("op", op))

	rows, err := s.statsRepo.GetSalesByCategory(ctx)
	if err != nil {
		s.log.Error("failed to get sales by category", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]CategorySalesEntry, 0, len(rows))
	for _, row := range rows {
		label := NoCategoryLabel
		if row.CategoryName != nil {
			label = *row.CategoryName
		}
		entries = append(entries, CategorySalesEntry{
			Categoria: label,
			Total:     row.Total.InexactFloat64(),
		})
	}
	return entries, nil
}

// BestSellers ranks the top products by their sold counter. The percentage is
// each product's share of all units ever sold, rounded to one decimal; when
// nothing was sold all percentages are zero.
func (s *statsService) BestSellers(ctx context.Context) ([]BestSellerEntry, error) {
	const op = "service.StatsService.BestSellers"
	s.log.Info("building best-sellers report", slog.String("op", op))

	totalSold, err := s.statsRepo.GetTotalSold(ctx)
	if err != nil {
		s.log.Error("failed to get total sold", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, err := s.statsRepo.GetTopProducts(ctx, bestSellerLimit)
	if err != nil {
		s.log.Error("failed to get top products", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries := make([]BestSellerEntry, 0, len(products))
	for i, product := range products {
		var percentage float64
		if totalSold > 0 {
			percentage = decimal.NewFromInt(int64(product.Sold)).
				Mul(decimal.NewFromInt(100)).
				Div(decimal.NewFromInt(totalSold)).
				Round(1).
				InexactFloat64()
		}
		label := NoCategoryLabel
		if product.CategoryName != nil {
			label = *product.CategoryName
		}
		entries = append(entries, BestSellerEntry{
			Nombre:     product.Name,
			Categoria:  label,
			Vendidos:   product.Sold,
			Porcentaje: percentage,
			Color:      palette[i%len(palette)],
		})
	}
	return entries, nil
}

// WeeklyRegistrations returns exactly one entry per calendar day for the
// 7-day window ending today (server-local time), oldest first. Days without
// registrations get a zero count. Each registration instant is attributed to
// its server-local date, independent of the database session's time zone.
func (s *statsService) WeeklyRegistrations(ctx context.Context) ([]WeeklySignupsEntry, error) {
	const op = "service.StatsService.WeeklyRegistrations"
	s.log.Info("building weekly registrations report", slog.String("op", op))

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(weeklyWindowDays - 1))

	times, err := s.statsRepo.ListRegistrationTimes(ctx, start)
	if err != nil {
		s.log.Error("failed to list registrations", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts := make(map[string]int, len(times))
	for _, ts := range times {
		counts[ts.In(now.Location()).Format("2006-01-02")]++
	}

	entries := make([]WeeklySignupsEntry, 0, weeklyWindowDays)
	for i := 0; i < weeklyWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		entries = append(entries, WeeklySignupsEntry{
			Fecha:    date,
			Dia:      day.Format("02/01"),
			Cantidad: counts[date],
		})
	}
	return entries, nil
}
