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

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"laurel/internal/attestation"
	"laurel/internal/audit"
	"laurel/internal/chain"
	"laurel/internal/contract"
	"laurel/internal/governance"
	"laurel/internal/identity"
	"laurel/internal/platform/config"
	"laurel/internal/platform/httpserver"
	"laurel/internal/platform/logger"
	"laurel/internal/platform/metrics"
	"laurel/internal/platform/middleware"
	platformredis "laurel/internal/platform/redis"
	"laurel/internal/protocol"
	"laurel/internal/reputation"
	httptransport "laurel/internal/transport/http"
	id "laurel/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Protocol logic lives in the internal services.
func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	owner, err := id.ParseAccountID(cfg.OwnerAccount)
	if err != nil {
		log.Error("invalid owner account", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	state := protocol.NewState()
	heights := chain.NewIntervalClock(cfg.Genesis(), cfg.BlockInterval())

	// Backing stores fall back to in-memory when the externals are not
	// configured, so a bare `go run` works.
	var identityStore identity.Store = identity.NewInMemoryStore()
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("postgres ping failed", "error", err)
			os.Exit(1)
		}
		identityStore = identity.NewPostgresStore(db)
		log.Info("identity store: postgres")
	}

	var activityStore reputation.ActivityStore = reputation.NewInMemoryActivityStore()
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		activityStore = reputation.NewRedisActivityStore(redisClient.Client)
		log.Info("activity store: redis")
	}

	// Audit events flow through a buffer so state transitions never block on
	// the sink.
	var sink audit.Publisher = audit.NewMemoryPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		sink = kafka
		log.Info("audit sink: kafka", "topic", cfg.KafkaAuditTopic)
	}
	auditBuffer := audit.NewBuffer(cfg.AuditBufferSize, log)
	auditWorker := audit.NewWorker(auditBuffer, sink, log)

	catalog := reputation.NewInMemoryCatalog()

	identitySvc := identity.New(identityStore, state, identity.WithLogger(log))
	reputationSvc := reputation.New(identityStore, catalog, activityStore,
		reputation.WithLogger(log), reputation.WithMetrics(m))
	attestationSvc := attestation.New(identityStore, attestation.NewInMemoryStore(),
		attestation.WithLogger(log))
	governanceSvc := governance.New(identityStore,
		governance.NewInMemoryProposalStore(), governance.NewInMemoryVoteStore(),
		state, governance.WithLogger(log), governance.WithMetrics(m))
	adminSvc := protocol.New(state, catalog, owner, protocol.WithLogger(log))

	contractSvc, err := contract.New(state, heights,
		identitySvc, reputationSvc, attestationSvc, governanceSvc, adminSvc,
		contract.WithLogger(log),
		contract.WithAuditPublisher(auditBuffer),
		contract.WithMetrics(m),
	)
	if err != nil {
		log.Error("contract wiring failed", "error", err)
		os.Exit(1)
	}

	auth := middleware.NewAuthenticator(cfg.JWTSigningKey)
	handler := httptransport.NewHandler(contractSvc)
	router := httptransport.NewRouter(handler, auth)
	srv := httpserver.New(cfg.Addr, router)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting laurel", "addr", cfg.Addr, "height", heights.Height())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
