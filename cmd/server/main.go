package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mowistore/backend/internal/app"
	"github.com/mowistore/backend/internal/app/handlers"
	"github.com/mowistore/backend/internal/auth/jwtmiddleware"
	"github.com/mowistore/backend/internal/config"
	"github.com/mowistore/backend/internal/lib/logger"
	"github.com/mowistore/backend/internal/lib/logger/handlers/urllog"
	"github.com/mowistore/backend/internal/service"
	"github.com/mowistore/backend/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoad()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	categoryRepo := storage.NewCategoryRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	userRepo := storage.NewUserRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	lineRepo := storage.NewOrderLineRepository(application.DB)
	addressRepo := storage.NewAddressRepository(application.DB)
	wishlistRepo := storage.NewWishlistRepository(application.DB)
	statsRepo := storage.NewStatsRepository(application.DB)

	authService := service.NewAuthService(application.Logger, userRepo, cfg.JWT.Secret, time.Duration(cfg.JWT.TokenTTL)*time.Minute)
	userService := service.NewUserService(application.Logger, userRepo)
	orderService := service.NewOrderService(application.Logger, application.DB, productRepo, orderRepo, lineRepo)
	statsService := service.NewStatsService(application.Logger, statsRepo)

	router.Get("/ping/", handlers.PingHandler(application.Logger))

	// authentication
	router.Post("/api/register/", handlers.RegisterHandler(application.Logger, authService))
	router.Post("/api/login/", handlers.LoginHandler(application.Logger, authService))

	// dashboard reports, unauthenticated reads
	router.Get("/ventas-por-categoria/", handlers.SalesByCategoryHandler(application.Logger, statsService))
	router.Get("/productos-mas-vendidos/", handlers.BestSellersHandler(application.Logger, statsService))
	router.Get("/usuarios-activos-semana/", handlers.WeeklyRegistrationsHandler(application.Logger, statsService))

	// resource endpoints
	router.Get("/categorias/", handlers.ListCategoriesHandler(application.Logger, categoryRepo))
	router.Post("/categorias/", handlers.CreateCategoryHandler(application.Logger, categoryRepo))
	router.Get("/categorias/{id}/", handlers.GetCategoryHandler(application.Logger, categoryRepo))
	router.Put("/categorias/{id}/", handlers.UpdateCategoryHandler(application.Logger, categoryRepo))
	router.Delete("/categorias/{id}/", handlers.DeleteCategoryHandler(application.Logger, categoryRepo))

	router.Get("/productos/", handlers.ListProductsHandler(application.Logger, productRepo))
	router.Post("/productos/", handlers.CreateProductHandler(application.Logger, productRepo))
	router.Get("/productos/{id}/", handlers.GetProductHandler(application.Logger, productRepo))
	router.Put("/productos/{id}/", handlers.UpdateProductHandler(application.Logger, productRepo))
	router.Delete("/productos/{id}/", handlers.DeleteProductHandler(application.Logger, productRepo))

	router.Get("/usuarios/", handlers.ListUsersHandler(application.Logger, userService))
	router.Post("/usuarios/", handlers.CreateUserHandler(application.Logger, userService))
	router.Get("/usuarios/{id}/", handlers.GetUserHandler(application.Logger, userService))
	router.Put("/usuarios/{id}/", handlers.UpdateUserHandler(application.Logger, userService))
	router.Delete("/usuarios/{id}/", handlers.DeleteUserHandler(application.Logger, userService))

	router.Get("/pedidos/", handlers.ListOrdersHandler(application.Logger, orderService))
	router.Post("/pedidos/", handlers.CreateOrderHandler(application.Logger, orderService))
	router.Get("/pedidos/{id}/", handlers.GetOrderHandler(application.Logger, orderService))
	router.Put("/pedidos/{id}/", handlers.UpdateOrderHandler(application.Logger, orderService))
	router.Delete("/pedidos/{id}/", handlers.DeleteOrderHandler(application.Logger, orderService))

	router.Get("/detalles/", handlers.ListOrderLinesHandler(application.Logger, lineRepo))
	router.Post("/detalles/", handlers.CreateOrderLineHandler(application.Logger, lineRepo, productRepo))
	router.Get("/detalles/{id}/", handlers.GetOrderLineHandler(application.Logger, lineRepo))
	router.Put("/detalles/{id}/", handlers.UpdateOrderLineHandler(application.Logger, lineRepo))
	router.Delete("/detalles/{id}/", handlers.DeleteOrderLineHandler(application.Logger, lineRepo))

	// user-scoped endpoints behind JWT
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware(cfg.JWT.Secret)
		r.Use(jwtMW)
		r.Get("/direcciones/", handlers.ListAddressesHandler(application.Logger, addressRepo))
		r.Post("/direcciones/", handlers.CreateAddressHandler(application.Logger, addressRepo))
		r.Get("/direcciones/{id}/", handlers.GetAddressHandler(application.Logger, addressRepo))
		r.Put("/direcciones/{id}/", handlers.UpdateAddressHandler(application.Logger, addressRepo))
		r.Delete("/direcciones/{id}/", handlers.DeleteAddressHandler(application.Logger, addressRepo))
		r.Get("/wishlist/", handlers.ListWishlistHandler(application.Logger, wishlistRepo))
		r.Post("/wishlist/", handlers.AddWishlistHandler(application.Logger, wishlistRepo))
		r.Delete("/wishlist/{productID}/", handlers.RemoveWishlistHandler(application.Logger, wishlistRepo))
		r.Get("/wishlist/check/{productID}/", handlers.CheckWishlistHandler(application.Logger, wishlistRepo))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
