package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/email"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/messaging/nats"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/payment/stripe"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/cache"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/mongodb"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/storage/s3"
	"github.com/FrFaber2025/school-uniform-exchange/internal/config"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/metrics"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/tracer"
	porthttp "github.com/FrFaber2025/school-uniform-exchange/internal/port/http"
	"github.com/FrFaber2025/school-uniform-exchange/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *http.Server
	mongoClient *mongo.Client
	entityCache *cache.EntityCache
	publisher   *nats.Publisher
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log, err := logger.NewZapLogger(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Infof("configuration loaded: service=%s port=%s", cfg.ServiceName, cfg.HTTPPort)

	if cfg.OTLPEndpoint != "" {
		if _, err := tracer.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint); err != nil {
			log.Warnf("tracer initialization failed: %v", err)
		}
	}

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	log.Info("mongodb connected")
	db := mongoClient.Database(cfg.MongoDatabase)

	entityCache, err := cache.NewEntityCache(cfg.RedisAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("redis connected")

	publisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}
	log.Info("nats connected")

	photoStorage, err := s3.NewPhotoStorage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	listingRepo := mongodb.NewListingRepository(db)
	transactionRepo := mongodb.NewTransactionRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)
	termsRepo := mongodb.NewTermsRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	stripeConfigRepo := mongodb.NewStripeConfigRepository(db)

	if err := listingRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure listing indexes: %w", err)
	}
	if err := reviewRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure review indexes: %w", err)
	}
	if err := termsRepo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure terms indexes: %w", err)
	}

	mailer := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, log)
	checkout := stripe.NewClient(stripeConfigRepo, cfg.StripeAPIBaseURL, log)

	listingUC := usecase.NewListingUsecase(listingRepo, termsRepo, entityCache, publisher, log)
	transactionUC := usecase.NewTransactionUsecase(
		transactionRepo, listingRepo, reviewRepo, termsRepo, userRepo,
		stripeConfigRepo, entityCache, publisher, mailer, log,
	)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, transactionRepo, entityCache, publisher, log)
	termsUC := usecase.NewTermsUsecase(termsRepo, log)
	messageUC := usecase.NewMessageUsecase(messageRepo, transactionRepo, listingRepo, log)
	paymentUC := usecase.NewPaymentUsecase(stripeConfigRepo, checkout, transactionUC, log)
	userUC := usecase.NewUserUsecase(userRepo, photoStorage, log)

	m := metrics.NewManager(cfg.ServiceName)
	go func() {
		if err := metrics.StartServer(cfg.PrometheusMetricsPort, log, m.Registry); err != nil {
			log.Errorf("metrics server stopped: %v", err)
		}
	}()

	handler := porthttp.NewHandler(listingUC, transactionUC, reviewUC, termsUC, messageUC, paymentUC, userUC, m, log)
	router := porthttp.NewRouter(handler, cfg.JWTSecret, log)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:         cfg,
		log:         log,
		server:      server,
		mongoClient: mongoClient,
		entityCache: entityCache,
		publisher:   publisher,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *App) Run() {
	go func() {
		a.log.Infof("http server listening on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	a.log.Infof("received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Errorf("http server shutdown: %v", err)
	}
	a.publisher.Close()
	if err := a.entityCache.Close(); err != nil {
		a.log.Errorf("redis close: %v", err)
	}
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Errorf("mongodb disconnect: %v", err)
	}
	a.log.Info("shutdown complete")
}
