package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"career-guide/internal/config"
	"career-guide/internal/db"
	apihttp "career-guide/internal/http"
	"career-guide/internal/logging"
	"career-guide/internal/repository"
	"career-guide/internal/scoring"
	"career-guide/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stores agrupa los repositorios del backend elegido y su limpieza.
type stores struct {
	users          repository.UserRepository
	marks          repository.MarksRepository
	questionnaires repository.QuestionnaireRepository
	ping           apihttp.Pinger
	close          func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store init", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	loginLimiter := newLoginLimiter(ctx, cfg, logger)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	scoringClient := scoring.NewHTTPClient(cfg.ScoringBaseURL, cfg.ScoringTimeout, logger)

	userSvc := service.NewUserService(logger, st.users, jwtSvc, loginLimiter)
	marksSvc := service.NewMarksService(st.marks)
	assessmentSvc := service.NewAssessmentService(logger, st.users, st.questionnaires, scoringClient)

	router := apihttp.NewRouter(
		logger,
		cfg.CORSAllowedOrigin,
		st.ping,
		jwtSvc,
		apihttp.NewUserHandler(logger, userSvc),
		apihttp.NewMarksHandler(logger, marksSvc),
		apihttp.NewAssessmentHandler(logger, assessmentSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("store", cfg.StoreDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		client, err := db.NewMongoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &stores{
			users:          repository.NewMongoUserRepository(database),
			marks:          repository.NewMongoMarksRepository(database),
			questionnaires: repository.NewMongoQuestionnaireRepository(database),
			ping: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Warn("mongo disconnect", zap.Error(err))
				}
			},
		}, nil
	default:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			users:          repository.NewPgUserRepository(pool),
			marks:          repository.NewPgMarksRepository(pool),
			questionnaires: repository.NewPgQuestionnaireRepository(pool),
			ping: func(ctx context.Context) error {
				return db.Ping(ctx, pool)
			},
			close: pool.Close,
		}, nil
	}
}

// newLoginLimiter usa Redis si esta disponible y si no cae al limiter en memoria.
func newLoginLimiter(ctx context.Context, cfg *config.Config, logger *zap.Logger) service.LoginRateLimiter {
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory login limiter", zap.Error(err))
			_ = redisClient.Close()
		} else {
			return service.NewRedisLoginRateLimiter(redisClient, cfg.LoginRateWindow, cfg.LoginRateMax)
		}
	}
	return service.NewLoginRateLimiter(cfg.LoginRateWindow, cfg.LoginRateMax)
}
