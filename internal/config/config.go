package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env                 string `mapstructure:"env"`
	Port                int    `mapstructure:"port"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `mapstructure:"idle_timeout_seconds"`
	CORSOrigins         string `mapstructure:"cors_origins"`
}

type MongoCfg struct {
	URI               string `mapstructure:"uri"`
	Database          string `mapstructure:"database"`
	UserCollection    string `mapstructure:"user_collection"`
	ProductCollection string `mapstructure:"product_collection"`
}

type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTCfg struct {
	Secret string `mapstructure:"secret"`
}

type SMTPCfg struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

type RateLimitCfg struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

type Config struct {
	App       AppCfg       `mapstructure:"app"`
	Mongo     MongoCfg     `mapstructure:"mongo"`
	Redis     RedisCfg     `mapstructure:"redis"`
	JWT       JWTCfg       `mapstructure:"jwt"`
	SMTP      SMTPCfg      `mapstructure:"smtp"`
	RateLimit RateLimitCfg `mapstructure:"rate_limit"`

	// Derived
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	RateWindow   time.Duration
}

// Load reads the YAML config at path and applies environment overrides
// (APP_MONGO_URI, APP_JWT_SECRET, ...). A .env file, if present, is loaded
// first so local runs behave like the deployed service.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Operational secrets come from the environment in deployment.
	override := func(env string, apply func(string)) {
		if val := os.Getenv(env); val != "" {
			apply(val)
		}
	}
	override("APP_ENV", func(val string) { cfg.App.Env = val })
	override("PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.App.Port = n
		}
	})
	override("MONGO_URI", func(val string) { cfg.Mongo.URI = val })
	override("MONGO_DB", func(val string) { cfg.Mongo.Database = val })
	override("REDIS_ADDR", func(val string) { cfg.Redis.Addr = val })
	override("REDIS_PASSWORD", func(val string) { cfg.Redis.Password = val })
	override("JWT_SECRET", func(val string) { cfg.JWT.Secret = val })
	override("SMTP_HOST", func(val string) { cfg.SMTP.Host = val })
	override("SMTP_PORT", func(val string) {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.SMTP.Port = n
		}
	})
	override("SMTP_USER", func(val string) { cfg.SMTP.Username = val })
	override("SMTP_PASS", func(val string) { cfg.SMTP.Password = val })
	override("SMTP_FROM", func(val string) { cfg.SMTP.From = val })

	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.App.IdleTimeoutSeconds == 0 {
		cfg.App.IdleTimeoutSeconds = 60
	}
	if cfg.Mongo.UserCollection == "" {
		cfg.Mongo.UserCollection = "bazzar_users"
	}
	if cfg.Mongo.ProductCollection == "" {
		cfg.Mongo.ProductCollection = "bazzar_products"
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = 20
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}

	cfg.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSeconds) * time.Second
	cfg.RateWindow = time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongo.uri is required (APP_MONGO_URI)")
	}
	if cfg.Mongo.Database == "" {
		return nil, errors.New("mongo.database is required (APP_MONGO_DATABASE)")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt.secret is required (APP_JWT_SECRET)")
	}

	return &cfg, nil
}
