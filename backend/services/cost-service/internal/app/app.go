package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "energytrack/backend/libs/db"
	libredis "energytrack/backend/libs/redis"
	"energytrack/backend/services/cost-service/internal/cache"
	"energytrack/backend/services/cost-service/internal/calculator"
	"energytrack/backend/services/cost-service/internal/clients"
	"energytrack/backend/services/cost-service/internal/config"
	"energytrack/backend/services/cost-service/internal/db"
	"energytrack/backend/services/cost-service/internal/events"
	httpserver "energytrack/backend/services/cost-service/internal/http"
	"energytrack/backend/services/cost-service/internal/http/handlers"
	"energytrack/backend/services/cost-service/internal/http/middleware"
	"energytrack/backend/services/cost-service/internal/repository"
	"energytrack/backend/services/cost-service/internal/service"
)

const redisKeyPrefix = "energytrack:"

// App wires cost service dependencies.
type App struct {
	server    *httpserver.Server
	db        *sql.DB
	redis     *goredis.Client
	l1        *cache.RistrettoStore
	publisher *events.Publisher
	logger    *zap.Logger
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}
	if err := a.init(ctx, cfg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context, cfg *config.Config) error {
	tariffs, err := service.LoadTariffService(cfg.Tariff.File)
	if err != nil {
		return err
	}
	tariff := tariffs.Current()
	a.logger.Info("tariff loaded",
		zap.String("source", tariffs.Source()),
		zap.String("currency", tariff.Currency),
		zap.String("electricity_mode", tariff.Electricity.Mode),
	)

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	a.db, err = db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, a.db, libdb.MigrateUp); err != nil {
			return err
		}
	}

	devices, err := a.deviceLookup(cfg)
	if err != nil {
		return err
	}

	var publisher service.EventPublisher
	if cfg.NATS.URL != "" {
		a.publisher, err = events.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix, a.logger)
		if err != nil {
			return err
		}
		publisher = a.publisher
	}

	repo := repository.NewCostRepository(a.db)
	costService := service.NewCostService(repo, devices, calculator.New(tariff), publisher, a.logger)
	reportService := service.NewReportService(repo, tariff.Currency, location, a.logger)

	router := httpserver.NewRouter(httpserver.Routes{
		Costs:   handlers.NewCostHandler(costService, location, a.logger),
		Reports: handlers.NewReportHandler(reportService, a.logger),
		Health:  handlers.NewHealthHandler(a.db),
	})
	a.server = httpserver.NewServer(cfg.HTTPAddress(), router, a.logger, httpMiddlewares(a.logger, cfg.Auth.JWTSecret)...)
	return nil
}

// httpMiddlewares lists the server chain, outermost first. Identity runs before Logging so the
// access log sees the resolved user id.
func httpMiddlewares(logger *zap.Logger, jwtSecret string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.Recovery(logger),
		middleware.Identity(jwtSecret),
		middleware.Logging(logger),
	}
}

// deviceLookup picks the HTTP registry when configured, else the devices table, and puts the
// wattage cache in front of it.
func (a *App) deviceLookup(cfg *config.Config) (service.DeviceLookup, error) {
	var lookup service.DeviceLookup
	if cfg.Devices.URL != "" {
		lookup = clients.NewDeviceClient(cfg.Devices.URL, clients.NewDefaultHTTPClient(cfg.DevicesTimeout()))
	} else {
		lookup = repository.NewDeviceRepository(a.db)
	}
	if !cfg.Cache.Enabled {
		return lookup, nil
	}

	var err error
	a.l1, err = cache.NewRistrettoStore(cfg.Cache.L1MaxItems)
	if err != nil {
		return nil, fmt.Errorf("device cache: %w", err)
	}
	var store cache.Store = a.l1

	if cfg.Redis.Addr != "" {
		a.redis, err = libredis.NewRedisClient(libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		store = cache.NewTiered(a.l1, cache.NewRedisStore(a.redis, redisKeyPrefix), cfg.DeviceCacheTTL())
	}
	return cache.NewDeviceWattage(lookup, store, cfg.DeviceCacheTTL(), a.logger), nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to drain nats", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if a.l1 != nil {
		a.l1.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
