package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/config"
	"github.com/ruslansymonenko/server-electro-grand/internal/es"
	"github.com/ruslansymonenko/server-electro-grand/internal/handlers"
	"github.com/ruslansymonenko/server-electro-grand/internal/logging"
	authmw "github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	loggingmw "github.com/ruslansymonenko/server-electro-grand/internal/middleware/logging"
	"github.com/ruslansymonenko/server-electro-grand/internal/mykafka"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
	"github.com/ruslansymonenko/server-electro-grand/internal/tokens"
	httpserver "github.com/ruslansymonenko/server-electro-grand/internal/transport/http"
	"github.com/ruslansymonenko/server-electro-grand/internal/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KafkaAddress != "" {
		producer = mykafka.NewProducer(cfg.KafkaAddress)
	} else {
		logger.Warn("KAFKA_ADDRESS not set, domain events disabled")
	}

	esClient, err := es.NewClient(cfg)
	if err != nil {
		logger.Warn("elasticsearch unavailable, product search disabled", "error", err)
		esClient = nil
	}

	issuer := tokens.NewIssuer(
		[]byte(cfg.JWTSecret),
		[]byte(cfg.RefreshSecret),
		[]byte(cfg.AdminTokenSecret),
	)

	userSvc := &service.UserService{DB: db}
	authSvc := &service.AuthService{DB: db, Issuer: issuer, AdminSecretKey: cfg.AdminSecretKey}
	categorySvc := &service.CategoryService{DB: db}
	subcategorySvc := &service.SubcategoryService{DB: db, Categories: categorySvc}
	brandSvc := &service.BrandService{DB: db}
	attributeSvc := &service.AttributeService{DB: db}
	attributeValueSvc := &service.AttributeValueService{DB: db, Attributes: attributeSvc}
	productSvc := &service.ProductService{DB: db, Categories: categorySvc, Subcategories: subcategorySvc, Brands: brandSvc}
	productAttributeSvc := &service.ProductAttributeService{DB: db, Products: productSvc, AttributeValues: attributeValueSvc}
	orderSvc := &service.OrderService{DB: db, Users: userSvc, Products: productSvc}
	orderItemSvc := &service.OrderItemService{DB: db, Orders: orderSvc, Products: productSvc}
	paymentSvc := &service.PaymentService{DB: db, Orders: orderSvc, Users: userSvc}
	reviewSvc := &service.ReviewService{DB: db, Users: userSvc, Products: productSvc}
	filesSvc := &service.FilesService{Root: cfg.UploadsDir}
	mailerSvc := service.NewMailerService(cfg)

	guard := &authmw.Guard{Issuer: issuer}
	cookieTTL := time.Duration(cfg.CookieTTLDays) * 24 * time.Hour

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		DB:    db,
		Guard: guard,
		AuthHandler: &handlers.AuthHandler{
			Service:   authSvc,
			Producer:  producer,
			Domain:    cfg.ServerDomain,
			CookieTTL: cookieTTL,
		},
		UserHandler:             &handlers.UserHandler{Service: userSvc},
		CategoryHandler:         &handlers.CategoryHandler{Service: categorySvc, Files: filesSvc},
		SubcategoryHandler:      &handlers.SubcategoryHandler{Service: subcategorySvc, Files: filesSvc},
		BrandHandler:            &handlers.BrandHandler{Service: brandSvc, Files: filesSvc},
		AttributeHandler:        &handlers.AttributeHandler{Service: attributeSvc},
		AttributeValueHandler:   &handlers.AttributeValueHandler{Service: attributeValueSvc},
		ProductAttributeHandler: &handlers.ProductAttributeHandler{Service: productAttributeSvc},
		ProductHandler:          &handlers.ProductHandler{Service: productSvc, Files: filesSvc, Producer: producer, ES: esClient},
		OrderHandler:            &handlers.OrderHandler{Service: orderSvc, Producer: producer},
		OrderItemHandler:        &handlers.OrderItemHandler{Service: orderItemSvc},
		PaymentHandler:          &handlers.PaymentHandler{Service: paymentSvc},
		ReviewHandler:           &handlers.ReviewHandler{Service: reviewSvc},
		FilesHandler:            &handlers.FilesHandler{Service: filesSvc},
		MailerHandler:           &handlers.MailerHandler{Service: mailerSvc},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	closeDB(logger, db)

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func closeDB(logger *slog.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("db handle error", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("db close error", "error", err)
	}
}
