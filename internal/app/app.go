package app

import (
	"database/sql"
	"os"
	"strings"

	"github.com/AlfahrezaRico/backend/internal/bootstrap"
	"github.com/AlfahrezaRico/backend/internal/middleware"
	"github.com/AlfahrezaRico/backend/internal/shared/apperror"
	"github.com/AlfahrezaRico/backend/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const connectRetries = 5

type Application struct {
	Engine *gin.Engine
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Logger *zap.Logger
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func kafkaBrokers() []string {
	return strings.Split(envOr("KAFKA_BROKERS", "localhost:9092"), ",")
}

// BuildApp merakit seluruh dependency graph API: koneksi, middleware
// global, dan semua modul beserta route-nya.
func BuildApp(logger *zap.Logger) (*Application, error) {
	apperror.Init()

	db, err := connection.ConnectGORMWithRetry(
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "hris"),
		envOr("DB_PORT", "5432"),
		envOr("DB_SSLMODE", "disable"),
		connectRetries,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(envOr("REDIS_ADDR", "localhost:6379"), connectRetries)
	if err != nil {
		return nil, err
	}

	if envOr("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"ok": false, "error": "database unreachable"})
			return
		}
		c.JSON(200, gin.H{"ok": true})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	api.Use(bootstrap.NewAuditLogger(db, logger).Middleware())

	if err := registerModules(api, db, sqlDB, rdb, logger); err != nil {
		return nil, err
	}

	return &Application{
		Engine: engine,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Logger: logger,
	}, nil
}
