// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truedial/internal/audit"
	"truedial/internal/contact"
	"truedial/internal/dashboard"
	"truedial/internal/directory"
	"truedial/internal/interaction"
	"truedial/internal/jwttoken"
	"truedial/internal/phone"
	"truedial/internal/platform/config"
	"truedial/internal/platform/httpserver"
	"truedial/internal/platform/logger"
	"truedial/internal/platform/metrics"
	"truedial/internal/platform/postgres"
	"truedial/internal/platform/redis"
	"truedial/internal/report"
	"truedial/internal/search"
	"truedial/internal/spam"
	httptransport "truedial/internal/transport/http"
	"truedial/internal/user"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	normalizer := phone.NewNormalizer(cfg.DefaultRegion)

	// Stores: PostgreSQL when configured, in-memory otherwise.
	var (
		userStore        user.Store
		contactStore     contact.Store
		reportStore      report.Store
		interactionStore interaction.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("connect to postgres", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		userStore = user.NewPostgres(db)
		contactStore = contact.NewPostgres(db)
		reportStore = report.NewPostgres(db)
		interactionStore = interaction.NewPostgres(db)
		log.Info("using postgres storage")
	} else {
		userStore = user.NewInMemoryStore()
		contactStore = contact.NewInMemoryStore()
		reportStore = report.NewInMemoryStore()
		interactionStore = interaction.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connect to redis", "err", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	auditor, err := audit.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	if err != nil {
		log.Error("connect to kafka", "err", err)
		os.Exit(1)
	}
	defer auditor.Close()

	provider := directory.New(userStore, contactStore, reportStore)

	users, err := user.New(userStore, normalizer, user.WithLogger(log))
	if err != nil {
		log.Error("build user service", "err", err)
		os.Exit(1)
	}
	contacts, err := contact.New(contactStore, normalizer, contact.WithLogger(log))
	if err != nil {
		log.Error("build contact service", "err", err)
		os.Exit(1)
	}
	interactions, err := interaction.New(interactionStore, normalizer, provider,
		interaction.WithLogger(log))
	if err != nil {
		log.Error("build interaction service", "err", err)
		os.Exit(1)
	}
	reports, err := report.New(reportStore, normalizer,
		report.WithLogger(log),
		report.WithInteractionRecorder(interactions),
		report.WithAuditor(auditor))
	if err != nil {
		log.Error("build report service", "err", err)
		os.Exit(1)
	}
	searcher, err := search.New(provider, normalizer, search.WithLogger(log))
	if err != nil {
		log.Error("build search service", "err", err)
		os.Exit(1)
	}
	spamSvc, err := spam.New(provider, normalizer, spam.WithLogger(log))
	if err != nil {
		log.Error("build spam service", "err", err)
		os.Exit(1)
	}
	dashboards, err := dashboard.New(interactionStore, interactions, reportStore, users)
	if err != nil {
		log.Error("build dashboard service", "err", err)
		os.Exit(1)
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)

	router := httptransport.NewRouter(httptransport.Deps{
		Users:           users,
		Tokens:          tokens,
		Search:          searcher,
		Contacts:        contacts,
		Reports:         reports,
		Spam:            spamSvc,
		Interactions:    interactions,
		Dashboard:       dashboards,
		Auth:            jwttoken.NewJWTServiceAdapter(tokens),
		Metrics:         metrics.New(),
		Redis:           redisClient,
		SearchRateLimit: cfg.SearchRateLimit,
		Logger:          log,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting truedial", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := httpserver.Shutdown(srv, 10*time.Second); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
