package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diagnosis/gympass/pkg/auth"
	"github.com/diagnosis/gympass/pkg/config"
	"github.com/diagnosis/gympass/pkg/database"
	"github.com/diagnosis/gympass/pkg/events"
	"github.com/diagnosis/gympass/pkg/logger"
	mw "github.com/diagnosis/gympass/pkg/middleware"
	"github.com/diagnosis/gympass/pkg/ratelimit"
	"github.com/diagnosis/gympass/services/api/internal/handlers"
	"github.com/diagnosis/gympass/services/api/internal/repository"
	"github.com/diagnosis/gympass/services/api/internal/repository/inmemory"
	"github.com/diagnosis/gympass/services/api/internal/service"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

type repositories struct {
	users    repository.UsersRepository
	gyms     repository.GymsRepository
	checkIns repository.CheckInsRepository
	close    func()
}

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("API service error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	var bus events.EventBus = events.NopBus{}
	if cfg.NATS.URL != "" {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			return err
		}
		bus = natsBus
	} else {
		logger.Warn("NATS_URL not set, events are dropped")
	}
	defer bus.Close()

	var loginLimiter ratelimit.Limiter
	if cfg.Redis.URL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()
		loginLimiter = ratelimit.NewRedisLimiter(client, "gympass:login", cfg.Redis.LoginRateLimit, cfg.Redis.LoginRateWindow)
	} else {
		logger.Warn("REDIS_URL not set, login rate limiting disabled")
	}

	hasher := auth.NewPasswordHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
	authService := service.NewAuthService(repos.users, hasher, bus, cfg.Auth)
	gymService := service.NewGymService(repos.gyms)
	checkInService := service.NewCheckInService(repos.checkIns, repos.gyms, bus,
		service.WithMaxDistance(cfg.CheckIn.MaxDistanceKm),
		service.WithUsers(repos.users),
	)

	h := handlers.New(authService, gymService, checkInService, cfg)

	r := chi.NewRouter()
	r.Use(mw.RealIP(cfg.Server.TrustProxy))
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(mw.Recoverer)
	r.Use(mw.CORS(cfg.CORS.AllowedOrigins))
	r.Use(mw.Health)
	r.Use(mw.Metrics)

	h.Routes(r, loginLimiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting API service", "port", cfg.Server.Port, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API service...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			users:    inmemory.NewUsersRepository(),
			gyms:     inmemory.NewGymsRepository(),
			checkIns: inmemory.NewCheckInsRepository(),
			close:    func() {},
		}, nil

	case config.StorageDriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(cfg.Database.URL); err != nil {
				return nil, err
			}
			logger.Info("Database migrations applied")
		}

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &repositories{
			users:    repository.NewUserRepository(pool),
			gyms:     repository.NewGymRepository(pool),
			checkIns: repository.NewCheckInRepository(pool),
			close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}
