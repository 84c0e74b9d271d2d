package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// =======================
// APP CONFIG
// =======================
type AppConfig struct {
	Env         string
	Port        string
	FrontendURL string
	LogLevel    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string

	PaymentProvider     string // "stripe" | "midtrans"
	Currency            string
	StripeSecretKey     string
	StripeWebhookSecret string
	MidtransServerKey   string
	MidtransUseProd     bool
	ProviderTimeout     time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RankingCacheTTL time.Duration

	ExpirySweepSchedule string
	LinkPolicy          LinkPolicy

	SeedGamesFile string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RENDER") == "" && os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			zap.L().Warn("no .env file found, using system env")
		} else {
			zap.L().Info(".env file loaded")
		}
	} else {
		zap.L().Info("running on hosted platform, using system env")
	}
}

// Load reads the environment once into a typed config.
func Load() (*AppConfig, error) {
	LoadEnv()

	policy, err := ResolveLinkPolicy(GetEnv("LINK_VALIDITY_POLICY", DefaultLinkPolicyVersion), GetEnv("LINK_VALIDITY_DURATION"))
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Env:         GetEnv("APP_ENV", "development"),
		Port:        GetEnv("PORT", "5000"),
		FrontendURL: strings.TrimRight(GetEnv("FRONTEND_URL", "http://localhost:8080"), "/"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME", "kiezjagd"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		JWTSecret:         GetEnv("JWT_SECRET"),
		AdminUsername:     GetEnv("ADMIN_USERNAME"),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH"),

		PaymentProvider:     strings.ToLower(GetEnv("PAYMENT_PROVIDER", "stripe")),
		Currency:            strings.ToLower(GetEnv("PAYMENT_CURRENCY", "eur")),
		StripeSecretKey:     GetEnv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: GetEnv("STRIPE_WEBHOOK_SECRET"),
		MidtransServerKey:   GetEnv("MIDTRANS_SERVER_KEY"),
		MidtransUseProd:     GetEnvBool("MIDTRANS_USE_PROD", false),
		ProviderTimeout:     GetEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),

		RedisAddr:       GetEnv("REDIS_ADDR"),
		RedisPassword:   GetEnv("REDIS_PASSWORD"),
		RedisDB:         GetEnvInt("REDIS_DB", 0),
		RankingCacheTTL: GetEnvDuration("RANKING_CACHE_TTL", 5*time.Minute),

		ExpirySweepSchedule: GetEnv("EXPIRY_SWEEP_SCHEDULE", "0 * * * *"),
		LinkPolicy:          policy,

		SeedGamesFile: GetEnv("SEED_GAMES_FILE"),
	}

	if cfg.JWTSecret == "" {
		zap.L().Warn("JWT_SECRET is not set, admin routes will reject every token")
	}
	switch cfg.PaymentProvider {
	case "stripe":
		if cfg.StripeSecretKey == "" {
			zap.L().Warn("STRIPE_SECRET_KEY is not set")
		} else {
			mode := "TEST"
			if strings.HasPrefix(cfg.StripeSecretKey, "sk_live_") {
				mode = "LIVE"
			}
			zap.L().Info("stripe configured", zap.String("mode", mode))
		}
	case "midtrans":
		if cfg.MidtransServerKey == "" {
			zap.L().Warn("MIDTRANS_SERVER_KEY is not set")
		}
	}
	zap.L().Info("link validity policy",
		zap.String("version", policy.Version),
		zap.Duration("duration", policy.Duration))

	return cfg, nil
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
