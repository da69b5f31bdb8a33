package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kisan-be/internal/admin"
	"kisan-be/internal/auth"
	"kisan-be/internal/cloud"
	"kisan-be/internal/config"
	"kisan-be/internal/db"
	"kisan-be/internal/events"
	"kisan-be/internal/handler"
	"kisan-be/internal/idempotency"
	"kisan-be/internal/logger"
	"kisan-be/internal/metrics"
	"kisan-be/internal/middleware"
	"kisan-be/internal/order"
	"kisan-be/internal/product"
	"kisan-be/internal/user"
	"kisan-be/internal/vendor"
)

// swapped in tests
var (
	initDBFunc      = db.InitDB
	newClientsFunc  = cloud.NewClients
	startServerFunc = func(addr string, h http.Handler) error {
		srv := &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return srv.ListenAndServe()
	}
	startLambdaFunc = func(h http.Handler) {
		lambda.Start(httpadapter.New(h).ProxyWithContext)
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	if cfg.LogFile != "" {
		logger.InitWithFile(cfg.AppEnv, cfg.LogFile)
	} else {
		logger.Init(cfg.AppEnv)
	}
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}

	if srv.scheduler != nil {
		srv.scheduler.Start()
		defer srv.scheduler.Stop()
	}

	if cfg.RunMode == config.RunModeLambda {
		logger.L().Info("starting lambda handler")
		startLambdaFunc(srv.handler)
		return nil
	}

	addr := ":" + cfg.AppPort
	logger.L().Info("server running", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, srv.handler)
}

type server struct {
	handler   http.Handler
	scheduler *cron.Cron
}

func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (*server, error) {
	log := logger.L()

	policy := order.ParsePolicy(cfg.OrderStatusPolicy)

	var clients *cloud.Clients
	var err error
	if cfg.IdempotencyTable != "" || cfg.OrdersQueueURL != "" || cfg.MetricsNamespace != "" {
		clients, err = newClientsFunc(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
	}

	var idem idempotency.Store
	if cfg.IdempotencyTable != "" {
		idem = idempotency.NewDynamoStore(clients.DynamoDB, cfg.IdempotencyTable, cfg.IdempotencyTTL)
		log.Info("idempotency store: dynamodb", zap.String("table", cfg.IdempotencyTable))
	} else {
		idem = idempotency.NewMemoryStore(0, cfg.IdempotencyTTL)
		log.Info("idempotency store: in-process")
	}

	var pub events.Publisher = events.Nop{}
	if cfg.OrdersQueueURL != "" {
		pub = events.NewSQSPublisher(clients.SQS, cfg.OrdersQueueURL)
	}

	var sched *cron.Cron
	if cfg.MetricsNamespace != "" {
		flusher := metrics.NewCloudWatchFlusher(clients.CloudWatch, cfg.MetricsNamespace, metrics.Default)
		sched, err = metrics.NewScheduler(cfg.MetricsFlushSchedule, flusher)
		if err != nil {
			return nil, err
		}
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, auth.DefaultTokenTTL)

	productSvc := product.NewService(product.NewRepository(database), cfg.PlaceholderImage)
	orderSvc := order.NewService(
		order.NewRepository(database),
		productSvc,
		idem,
		pub,
		order.Options{Policy: policy, Placeholder: cfg.PlaceholderImage},
	)

	h := handler.New(handler.Deps{
		Products: productSvc,
		Orders:   orderSvc,
		Users:    user.NewService(user.NewRepository(database), tokens),
		Vendors:  vendor.NewService(vendor.NewRepository(database), tokens),
		Admin: admin.NewService(admin.NewRepository(database), tokens, admin.Credentials{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}),
	})

	return &server{
		handler:   setupRouter(h.Router(), tokens, middleware.NewRateLimiter(ctx)),
		scheduler: sched,
	}, nil
}

// setupRouter wraps the API with request id, access log, auth and rate
// limiting, outermost first.
func setupRouter(api http.Handler, tokens *auth.TokenManager, limiter *middleware.RateLimiter) http.Handler {
	var h http.Handler = api
	h = limiter.Middleware(h)
	h = middleware.Auth(tokens)(h)
	h = logger.LoggingMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return h
}
