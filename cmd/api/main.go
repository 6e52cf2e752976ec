package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/securebank/backoffice/internal/audit"
	"github.com/securebank/backoffice/internal/config"
	"github.com/securebank/backoffice/internal/handlers"
	"github.com/securebank/backoffice/internal/notify"
	"github.com/securebank/backoffice/internal/seed"
	"github.com/securebank/backoffice/internal/services"
	"github.com/securebank/backoffice/internal/session"
	"github.com/securebank/backoffice/internal/store"
	xhttp "github.com/securebank/backoffice/pkg/http"
	"github.com/securebank/backoffice/pkg/logger"
	"github.com/securebank/backoffice/pkg/prom"
	"github.com/securebank/backoffice/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 10))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		if err := prom.Create("", config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metric registry", "error", err)
			return
		}
		go prom.ListenAndServe(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	// record stores
	customers := store.NewCustomerStore()
	transactions := store.NewTransactionStore()
	loans := store.NewLoanStore()
	users := store.NewUserStore()

	feed := audit.NewFeed(redisAdap, config.Get().AuditStream, config.Get().AuditMaxLen)

	if config.Get().SeedDemoData {
		seed.Load(customers, transactions, loans, users)
		if n, err := feed.Len(); err == nil && n == 0 {
			for _, a := range seed.Activities() {
				if _, err := feed.Record(a); err != nil {
					logger.Warn("failed seeding activity", "error", err)
				}
			}
		}
	}

	notifier := notify.NewNotifier(config.Get().NotifyBufferSz, config.Get().NotifyWorkers)
	defer notifier.Close()

	var verifier session.CredentialVerifier
	if url := config.Get().IdentityURL; url != "" {
		verifier = session.NewIdPVerifier(url, time.Second*5)
	} else {
		verifier = session.NewDirectoryVerifier(users)
	}
	sessions := session.NewManager(verifier, redisAdap, users, config.Get().SessionTTL, config.Get().LoginDelay)

	// services
	customerService := services.NewCustomerService(customers, notifier)
	transactionService := services.NewTransactionService(transactions, customers, notifier)
	loanService := services.NewLoanService(loans, customers, notifier)
	adminService := services.NewAdminService(users, feed, notifier)
	dashboardService := services.NewDashboardService(customers, transactions, loans)

	// v1 handlers
	authHandler := handlers.NewAuthHandler(sessions, notifier)
	customerHandler := handlers.NewCustomerHandler(customerService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	loanHandler := handlers.NewLoanHandler(loanService)
	adminHandler := handlers.NewAdminHandler(adminService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(redisHealth{redisAdap})

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterCustomerRoutes(g, customerHandler, authHandler)
	handlers.RegisterTransactionRoutes(g, transactionHandler, authHandler)
	handlers.RegisterLoanRoutes(g, loanHandler, authHandler)
	handlers.RegisterAdminRoutes(g, adminHandler, authHandler)
	handlers.RegisterDashboardRoutes(g, dashboardHandler, authHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)
	s.Router.GET("/health", healthHandler.GetHealth)

	logger.Info("starting back-office", "version", version, "commit", commit, "built", date)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

type redisHealth struct {
	adapter redis.RedisAdapter
}

func (h redisHealth) Ping() error {
	return h.adapter.Client().Ping(context.Background()).Err()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
