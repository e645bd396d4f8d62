package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gadget-shop-be/internal/auth"
	"gadget-shop-be/internal/config"
	"gadget-shop-be/internal/db"
	"gadget-shop-be/internal/handler"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/middleware"
	"gadget-shop-be/internal/product"
	"gadget-shop-be/internal/user"
	"gadget-shop-be/internal/wishlist"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	limiterCleanup  = time.Minute
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = serve
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	if database != nil {
		defer database.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := newServer(ctx, cfg, database)

	addr := ":" + cfg.AppPort
	logger.L().Info("server listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(ctx, addr, router)
}

type routes struct {
	tokens    middleware.TokenVerifier
	roles     middleware.RoleLookup
	users     *handler.UserHandler
	products  *handler.ProductHandler
	wishlists *handler.WishlistHandler
	health    *handler.HealthHandler
}

// newServer wires the handlers. The limiter's idle sweep stops with ctx.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) http.Handler {
	tokens := auth.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)

	limiter := middleware.NewRateLimiter(tokens)
	go limiter.Cleanup(ctx, limiterCleanup)

	userSvc := user.NewService(user.NewRepository(database), tokens)
	productSvc := product.NewService(product.NewRepository(database))
	wishlistSvc := wishlist.NewService(wishlist.NewRepository(database))

	var pinger handler.Pinger
	if database != nil {
		pinger = database
	}

	return setupRouter(cfg, limiter, routes{
		tokens:    tokens,
		roles:     userSvc,
		users:     handler.NewUserHandler(userSvc),
		products:  handler.NewProductHandler(productSvc),
		wishlists: handler.NewWishlistHandler(wishlistSvc, userSvc),
		health:    handler.NewHealthHandler(pinger),
	})
}

func setupRouter(cfg *config.Config, limiter *middleware.RateLimiter, h routes) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", logger.RequestIDHeader, "X-Device-ID"},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(limiter.Middleware)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/", h.health.Root)
	r.Get("/health", h.health.Health)

	r.Get("/users/{email}", h.users.GetUser)
	r.Post("/users", h.users.CreateUser)
	r.Post("/authentication", h.users.Authenticate)

	r.Get("/allproducts", h.products.ListProducts)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.tokens))

		r.With(middleware.RequireRole(h.roles, user.RoleSeller)).
			Post("/add-products", h.products.AddProduct)

		r.Patch("/wishlist/add", h.wishlists.Add)
		r.Patch("/wishlist/remove", h.wishlists.Remove)
		r.Get("/wishlist/{userId}", h.wishlists.Get)
	})

	return r
}

// serve runs until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.L().Info("server exited")
	return nil
}
