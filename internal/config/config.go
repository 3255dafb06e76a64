package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort          string        `env:"HTTP_PORT" envDefault:"8080"`
	StoreDriver       string        `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	MongoURI          string        `env:"MONGO_URI"`
	MongoDatabase     string        `env:"MONGO_DATABASE" envDefault:"career_guide"`
	JWTSecret         string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL            time.Duration `env:"JWT_TTL" envDefault:"24h"`
	CORSAllowedOrigin string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`
	ScoringBaseURL    string        `env:"SCORING_BASE_URL" envDefault:"http://localhost:5000/api"`
	ScoringTimeout    time.Duration `env:"SCORING_TIMEOUT" envDefault:"120s"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisDB           int           `env:"REDIS_DB" envDefault:"0"`
	LoginRateWindow   time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"10m"`
	LoginRateMax      int           `env:"LOGIN_RATE_MAX" envDefault:"10"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogDev            bool          `env:"LOG_DEV" envDefault:"false"`
}

var (
	ErrUnknownStoreDriver = errors.New("unknown store driver")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres store")
	ErrMissingMongoURI    = errors.New("MONGO_URI is required for the mongo store")
)

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate verifica que el driver elegido tenga su cadena de conexión.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return ErrMissingDatabaseURL
		}
	case StoreDriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return ErrMissingMongoURI
		}
	default:
		return ErrUnknownStoreDriver
	}
	return nil
}
