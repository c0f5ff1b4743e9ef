package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mowistore/backend/internal/service"
)

// SalesByCategoryHandler serves GET /ventas-por-categoria/.
func SalesByCategoryHandler(log *slog.Logger, statsService service.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SalesByCategoryHandler"
		logger := log.With(slog.String("op", op))

		report, err := statsService.SalesByCategory(r.Context())
		if err != nil {
			logger.Error("failed to build report", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, report)
	}
}

// BestSellersHandler serves GET /productos-mas-vendidos/.
func BestSellersHandler(log *slog.Logger, statsService service.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BestSellersHandler"
		logger := log.With(slog.String("op", op))

		report, err := statsService.BestSellers(r.Context())
		if err != nil {
			logger.Error("failed to build report", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, report)
	}
}

// WeeklyRegistrationsHandler serves GET /usuarios-activos-semana/.
func WeeklyRegistrationsHandler(log *slog.Logger, statsService service.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.WeeklyRegistrationsHandler"
		logger := log.With(slog.String("op", op))

		report, err := statsService.WeeklyRegistrations(r.Context())
		if err != nil {
			logger.Error("failed to build report", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		respondJSON(w, logger, http.StatusOK, report)
	}
}
