package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/lingo-backend/internal/data/db"
	"github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/platform/envutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/platform/stripeclient"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	DB    db.Config
	Rules domain.Rules

	JWTSecretKey string

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	Stripe stripeclient.Config
	AppURL string

	CORSOrigins []string

	ViewCacheTTL              time.Duration
	LeaderboardWarmInterval   time.Duration
	BillingEventRetention     time.Duration
	BillingEventPurgeInterval time.Duration
}

// LoadConfig reads the process environment, after merging a .env file when one exists.
func LoadConfig(log *logger.Logger) Config {
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded .env")
	}

	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverPostgres),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "lingo"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "lingo.db"),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 5),
		},
		Rules: domain.Rules{
			MaxHearts:          envutil.Int("MAX_HEARTS", 5),
			PointsPerChallenge: envutil.Int("POINTS_PER_CHALLENGE", 10),
			PointsToRefill:     envutil.Int("POINTS_TO_REFILL", 10),
		}.WithDefaults(),
		JWTSecretKey:  envutil.String("JWT_SECRET_KEY", ""),
		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisChannel:  envutil.String("REDIS_CHANNEL", "lingo:events"),
		Stripe: stripeclient.Config{
			SecretKey:     envutil.String("STRIPE_SECRET_KEY", ""),
			WebhookSecret: envutil.String("STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       envutil.String("STRIPE_PRICE_ID", ""),
		},
		AppURL:                    strings.TrimRight(envutil.String("APP_URL", "http://localhost:3000"), "/"),
		CORSOrigins:               envutil.List("CORS_ORIGINS", nil),
		ViewCacheTTL:              envutil.Duration("VIEW_CACHE_TTL", 60*time.Second),
		LeaderboardWarmInterval:   envutil.Duration("LEADERBOARD_WARM_INTERVAL", time.Minute),
		BillingEventRetention:     envutil.Duration("BILLING_EVENT_RETENTION", 30*24*time.Hour),
		BillingEventPurgeInterval: envutil.Duration("BILLING_EVENT_PURGE_INTERVAL", 6*time.Hour),
	}

	if cfg.JWTSecretKey == "" {
		log.Warn("JWT_SECRET_KEY not set; using insecure development secret")
		cfg.JWTSecretKey = "dev-secret"
	}
	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set; billing endpoints will fail")
	}
	return cfg
}
