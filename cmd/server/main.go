package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kushhpatell/r-intervyou/internal/auth"
	"github.com/kushhpatell/r-intervyou/internal/config"
	"github.com/kushhpatell/r-intervyou/internal/events"
	"github.com/kushhpatell/r-intervyou/internal/handlers"
	"github.com/kushhpatell/r-intervyou/internal/metrics"
	"github.com/kushhpatell/r-intervyou/internal/models"
	"github.com/kushhpatell/r-intervyou/internal/questions"
	"github.com/kushhpatell/r-intervyou/internal/repositories"
	mongorepo "github.com/kushhpatell/r-intervyou/internal/repositories/mongo"
	"github.com/kushhpatell/r-intervyou/internal/routers"
	"github.com/kushhpatell/r-intervyou/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownGrace = 30 * time.Second

var (
	initLogger      = utils.InitLogger
	newDialector    = func(dsn string) gorm.Dialector { return postgres.Open(dsn) }
	gormOpen        = defaultGormOpen
	runAutoMigrate  = func(db *gorm.DB, dst ...interface{}) error { return db.AutoMigrate(dst...) }
	mongoConnect    = mongorepo.NewClient
	httpListenServe = func(srv *http.Server) error { return srv.ListenAndServe() }
	exitFunc        = os.Exit
	logFatalFn      = defaultLogFatal
)

func defaultGormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(newDialector(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         utils.NewGormLogger(utils.GetLogger()),
	})
}

func defaultLogFatal(err error) {
	fmt.Fprintf(os.Stderr, "intervyou: %v\n", err)
	exitFunc(1)
}

// sessionStore is what both backends provide for interview history.
type sessionStore interface {
	handlers.SessionRepository
	questions.SeenQuestionSource
}

type store struct {
	users    auth.UserRepository
	sessions sessionStore
	ping     handlers.PingFunc
	close    func(ctx context.Context) error
}

// connectWithRetry keeps dialing until the database answers a ping or timeout elapses.
func connectWithRetry(dsn string, timeout time.Duration, logger *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	backoff := 100 * time.Millisecond
	var lastErr error

	for attempt := 1; ; attempt++ {
		db, err := gormOpen(dsn)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err = repositories.Ping(ctx, db)
			cancel()
			if err == nil {
				return db, nil
			}
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
		}
		lastErr = err

		if time.Now().Add(backoff).After(deadline) {
			return nil, fmt.Errorf("database unavailable after %d attempts: %w", attempt, lastErr)
		}
		logger.Warn("database not ready, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(backoff)
		if backoff < 2*time.Second {
			backoff *= 2
		}
	}
}

func openSQLStore(cfg *config.Config, logger *zap.Logger) (*store, error) {
	db, err := connectWithRetry(cfg.DatabaseURL, cfg.DBConnectTimeout, logger)
	if err != nil {
		return nil, err
	}
	if err := runAutoMigrate(db, &models.User{}, &models.InterviewSession{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &store{
		users:    &repositories.UserRepository{DB: db},
		sessions: &repositories.SessionRepository{DB: db},
		ping:     func(ctx context.Context) error { return repositories.Ping(ctx, db) },
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func openMongoStore(ctx context.Context, cfg *config.Config) (*store, error) {
	client, err := mongoConnect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db, err := client.DB()
	if err != nil {
		return nil, err
	}
	users, err := mongorepo.NewUserRepo(ctx, db)
	if err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	sessions, err := mongorepo.NewSessionRepo(ctx, db)
	if err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	return &store{users: users, sessions: sessions, ping: client.Ping, close: client.Disconnect}, nil
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openSQLStore(cfg, logger)
	default:
		return openMongoStore(ctx, cfg)
	}
}

func newPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) events.Publisher {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, session events disabled")
		return events.NopPublisher{}
	}
	publisher := events.NewRedisPublisher(cfg.RedisAddr, logger)
	if err := publisher.Ping(ctx); err != nil {
		logger.Warn("redis not reachable, session events will be dropped until it is", zap.Error(err))
	}
	return publisher
}

// corsOptions only allows credentials for an explicit origin list; a wildcard
// would otherwise reflect any caller's Origin alongside Allow-Credentials.
func corsOptions(origins []string) cors.Options {
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: !wildcard,
	}
}

func buildRouter(cfg *config.Config, st *store, publisher events.Publisher, logger *zap.Logger) *chi.Mux {
	authService := auth.NewService(st.users, cfg.JWTSecret)
	selector := questions.NewSelector(questions.Default(), st.sessions)

	router := chi.NewRouter()
	router.Use(cors.Handler(corsOptions(cfg.CORSOrigins)))
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	router.Handle("/metrics", metrics.Handler())
	routers.HealthRoutes(router, handlers.NewHealthHandler(st.ping, logger))
	routers.AuthRoutes(router, handlers.NewAuthHandler(authService, logger), authService)
	routers.AIRoutes(router, handlers.NewQuestionHandler(selector, logger), authService)
	routers.SessionRoutes(router, handlers.NewSessionHandler(st.sessions, publisher, logger), authService)
	return router
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := initLogger(cfg.Env); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger := utils.GetLogger()
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("store", cfg.StoreDriver),
		zap.Int("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	publisher := newPublisher(ctx, cfg, logger)
	defer publisher.Close()

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      buildRouter(cfg, st, publisher, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("IntervYou API starting", zap.String("addr", server.Addr))
		serveErr <- httpListenServe(server)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("IntervYou API shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("IntervYou API exited")
	return nil
}

func main() {
	if err := run(); err != nil {
		logFatalFn(err)
	}
}
