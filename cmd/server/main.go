package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authHandler "github.com/Ibramnsh/backend-sidokepung/internal/auth/handler"
	authService "github.com/Ibramnsh/backend-sidokepung/internal/auth/service"
	"github.com/Ibramnsh/backend-sidokepung/internal/auth/store/revocation"
	userStore "github.com/Ibramnsh/backend-sidokepung/internal/auth/store/user"
	jwttoken "github.com/Ibramnsh/backend-sidokepung/internal/jwt_token"
	pekerjaanHandler "github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/handler"
	pekerjaanService "github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/service"
	pekerjaanStore "github.com/Ibramnsh/backend-sidokepung/internal/pekerjaan/store"
	"github.com/Ibramnsh/backend-sidokepung/internal/peta/adapters"
	petaHandler "github.com/Ibramnsh/backend-sidokepung/internal/peta/handler"
	petaMetrics "github.com/Ibramnsh/backend-sidokepung/internal/peta/metrics"
	petaService "github.com/Ibramnsh/backend-sidokepung/internal/peta/service"
	petaStore "github.com/Ibramnsh/backend-sidokepung/internal/peta/store"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/config"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/health"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/httpserver"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/logger"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/metrics"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/middleware"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/postgres"
	"github.com/Ibramnsh/backend-sidokepung/internal/platform/redis"
	rateLimit "github.com/Ibramnsh/backend-sidokepung/internal/ratelimit/middleware"
	"github.com/Ibramnsh/backend-sidokepung/internal/ratelimit/store/bucket"
)

const revocationPurgeInterval = 10 * time.Minute

type stores struct {
	boundaries  petaService.BoundarySource
	records     pekerjaanService.Store
	users       authService.UserStore
	revocations authService.RevocationList
	buckets     rateLimit.BucketStore
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDevSecret() {
		log.Warn("JWT_SECRET not set, using development secret")
	}

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	st := buildStores(ctx, db, redisClient, log)
	router := buildRouter(cfg, log, st, db, redisClient)

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting backend-sidokepung", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// openDatabase returns nil when DATABASE_URL is unset; the service then runs
// on in-memory stores.
func openDatabase(ctx context.Context, cfg config.Server, log *slog.Logger) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		return nil, nil
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db,
		petaStore.Schema,
		pekerjaanStore.Schema,
		userStore.Schema,
		revocation.Schema,
	); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("database connected")
	return db, nil
}

func buildStores(ctx context.Context, db *sql.DB, redisClient *redis.Client, log *slog.Logger) stores {
	var st stores
	if db != nil {
		st.boundaries = petaStore.NewPostgres(db)
		st.records = pekerjaanStore.NewPostgres(db)
		st.users = userStore.NewPostgres(db)
	} else {
		st.boundaries = petaStore.NewInMemory()
		st.records = pekerjaanStore.NewInMemory()
		st.users = userStore.New()
	}

	if redisClient != nil {
		st.buckets = bucket.NewRedisBucketStore(redisClient.Client)
	} else {
		st.buckets = bucket.NewInMemoryBucketStore()
	}

	switch {
	case redisClient != nil:
		st.revocations = revocation.NewRedisTRL(redisClient.Client)
		log.Info("token revocation list backed by redis")
	case db != nil:
		trl := revocation.NewPostgresTRL(db)
		go purgeRevocations(ctx, trl, log)
		st.revocations = trl
		log.Info("token revocation list backed by postgres")
	default:
		st.revocations = revocation.NewInMemoryTRL()
		log.Info("token revocation list held in memory")
	}
	return st
}

func purgeRevocations(ctx context.Context, trl *revocation.PostgresTRL, log *slog.Logger) {
	ticker := time.NewTicker(revocationPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := trl.PurgeExpired(ctx)
			if err != nil {
				log.Error("failed to purge expired revocations", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("purged expired revocations", "count", n)
			}
		}
	}
}

func buildRouter(cfg config.Server, log *slog.Logger, st stores, db *sql.DB, redisClient *redis.Client) *chi.Mux {
	m := metrics.New()
	pm := petaMetrics.New()

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	jwtValidator := jwttoken.NewJWTServiceAdapter(jwtService)

	auth := authService.New(st.users, st.revocations, jwtService,
		authService.WithLogger(log),
		authService.WithMetrics(m),
		authService.WithTokenTTL(cfg.Auth.TokenTTL),
	)
	records := pekerjaanService.New(st.records,
		pekerjaanService.WithLogger(log),
	)
	peta := petaService.New(st.boundaries, adapters.NewResidentSource(records),
		petaService.WithLogger(log),
		petaService.WithMetrics(pm),
		petaService.WithTimeout(cfg.Peta.Timeout),
	)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata(cfg.TrustedProxies))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	petaHandler.New(peta, log, m).Register(r)
	pekerjaanHandler.New(records, log, m, jwtValidator, auth).Register(r)
	limiter := rateLimit.New(st.buckets, log,
		rateLimit.WithDisabled(cfg.RateLimit.Disabled),
		rateLimit.WithLimit(cfg.RateLimit.Limit, cfg.RateLimit.Window),
	)
	authHandler.New(auth, log, m, jwtValidator, auth,
		authHandler.WithLimiter(limiter.ByIP("auth")),
	).Register(r)

	checks := health.New()
	if db != nil {
		checks.Add("database", db.PingContext)
	} else {
		checks.AddDisabled("database")
	}
	if redisClient != nil {
		checks.Add("redis", redisClient.Health)
	} else {
		checks.AddDisabled("redis")
	}
	checks.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
