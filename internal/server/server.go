package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"matita-shop/internal/cart"
	"matita-shop/internal/config"
	"matita-shop/internal/favorites"
	"matita-shop/internal/loyalty"
	"matita-shop/internal/media"
	custommiddleware "matita-shop/internal/middleware"
	"matita-shop/internal/repository"
	"matita-shop/internal/service"
	"matita-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	siteConfigRepo := repository.NewSiteConfigRepository(db)

	// Initialize shared stores
	favStore := favorites.NewStore(redisClient)
	cartStore := cart.NewStore()
	ledger := loyalty.NewLedger(userRepo)
	resolver := media.NewResolver(cfg.Shop.MediaCloud)

	// Initialize services
	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	catalogService := service.NewCatalogService(productRepo, favStore)
	cartService := service.NewCartService(cartStore, productRepo, userRepo, saleRepo, ledger, cfg.Shop.WhatsAppNumber)
	clubService := service.NewClubService(userRepo, ledger)
	shopService := service.NewShopService(saleRepo, ideaRepo, siteConfigRepo)

	// Initialize handlers
	userHandler := transport.NewUserHandler(userService, cartService, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, resolver, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)
	clubHandler := transport.NewClubHandler(clubService, logger)
	shopHandler := transport.NewShopHandler(shopService, logger)
	adminHandler := transport.NewAdminHandler(catalogService, shopService, userService, logger)

	// Create auth middleware
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	adminMiddleware := custommiddleware.RequireAdmin(logger)
	socioMiddleware := custommiddleware.RequireSocio(logger)

	// Rate limit the unauthenticated surface
	publicRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 30,
		Window:            time.Minute,
		KeyPrefix:         "matita:ratelimit:public",
	}, logger)

	// Register routes
	router.Group(func(r chi.Router) {
		r.Use(publicRateLimit)
		shopHandler.RegisterRoutes(r)
	})
	userHandler.RegisterRoutes(router, authMiddleware)
	catalogHandler.RegisterRoutes(router, authMiddleware)
	cartHandler.RegisterRoutes(router, authMiddleware)
	clubHandler.RegisterRoutes(router, authMiddleware, socioMiddleware)
	adminHandler.RegisterRoutes(router, authMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
