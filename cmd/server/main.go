package main // Entry point package

import (
	"context"
	"errors"
	"log" // fatal startup errors before the structured logger exists
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/screenscout/internal/config"
	"github.com/iliyamo/screenscout/internal/database"
	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/logger"
	"github.com/iliyamo/screenscout/internal/middleware"
	"github.com/iliyamo/screenscout/internal/repository"
	"github.com/iliyamo/screenscout/internal/router"
	"github.com/iliyamo/screenscout/internal/seed"
	"github.com/iliyamo/screenscout/internal/service"
)

func main() {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := config.Load()
	lg := logger.New(cfg.LogLevel, cfg.LogFile)
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, cfg.DBDriver, lg); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Warn("redis unavailable, response cache and rate limiting are off")
	} else {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()
	purger := middleware.NewCachePurger(cacheCfg, rdb)

	var pub events.Publisher = events.Nop{}
	if cfg.AMQPEnabled {
		pub = events.NewAMQPPublisher(cfg.AMQPURL, lg)
	}
	if purger != nil {
		// purge before the response goes out, the consumer may be late or absent
		pub = events.Purging{Next: pub, Cache: purger, Log: lg}
	}
	deps := service.Deps{DB: db, Publisher: pub, Log: lg}

	if err := bootstrap(ctx, deps, cfg, lg); err != nil {
		log.Fatal(err)
	}

	if cfg.AMQPEnabled {
		consumer := &events.Consumer{
			URL:   cfg.AMQPURL,
			Queue: events.QueueName,
			Audit: logger.NewAudit(cfg.AuditLog),
			Log:   lg,
		}
		if purger != nil {
			consumer.Cache = purger
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				lg.Error("event consumer stopped", "error", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(lg))

	router.Register(e, router.NewHandlers(deps, cfg), router.Guards{
		JWTSecret: cfg.JWTSecret,
		Users:     repository.NewUserRepo(db),
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		lg.Info("listening", "addr", addr, "env", cfg.Env, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", "error", err)
	}
	lg.Info("bye")
}

// bootstrap seeds the reference taxonomy and the first owner when asked to.
func bootstrap(ctx context.Context, d service.Deps, cfg config.Config, lg *slog.Logger) error {
	if cfg.SeedReferenceData {
		tax, err := seed.Builtin()
		if err != nil {
			return err
		}
		if _, err := seed.References(ctx, service.NewReferenceService(d), tax, lg); err != nil {
			return err
		}
	}
	return seed.Owner(ctx, service.NewUserService(d, cfg),
		cfg.FirstOwnerUsername, cfg.FirstOwnerEmail, cfg.FirstOwnerPassword, lg)
}

// requestLogger writes one structured access log record per request.
func requestLogger(lg *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"remote_ip", v.RemoteIP,
			}
			if id, ok := middleware.UserID(c); ok {
				attrs = append(attrs, "user_id", id, "role", string(middleware.Role(c)))
			}
			if v.Error != nil {
				lg.Error("request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			lg.Info("request", attrs...)
			return nil
		},
	})
}
