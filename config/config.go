package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Postgres  PostgresConfig
	Redis     RedisConfig
	JWT       JWT
	Message   Message
	RateLimit RateLimit
	PreKey    PreKey
	Logger    LoggerMode
	CORS      CORS
}

type Server struct {
	Port        string
	Environment string
}

type PostgresConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type LoggerMode struct {
	Development bool
	Level       string
}

type JWT struct {
	Secret    string
	ExpiresIn time.Duration
}

type Message struct {
	TTLDays int
}

type RateLimit struct {
	MaxRequestsPerMinute int
}

type PreKey struct {
	RefillThreshold int
}

type CORS struct {
	Domain string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// A missing config file is not fatal: every value can arrive
			// via environment variables, which AutomaticEnv already wired.
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("jwt.expiresin", 24*time.Hour)
	v.SetDefault("message.ttldays", 30)
	v.SetDefault("ratelimit.maxrequestsperminute", 60)
	v.SetDefault("prekey.refillthreshold", 10)
	v.SetDefault("logger.level", "info")
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}
