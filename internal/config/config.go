package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090" validate:"required,numeric"`
	Redis    Redis    `yaml:"redis"`
	Postgres Postgres `yaml:"postgres"`
	Auth     Auth     `yaml:"auth"`
	Game     Game     `yaml:"game"`
	Scores   Scores   `yaml:"scores"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost" validate:"required"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379" validate:"required,numeric"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0" validate:"min=0"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost" validate:"required"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432" validate:"required,numeric"`
	User     string `yaml:"user" env:"POSTGRES_USER" env-default:"arcade" validate:"required"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database string `yaml:"database" env:"POSTGRES_DB" env-default:"arcade" validate:"required"`
	SSLMode  string `yaml:"ssl-mode" env:"POSTGRES_SSL_MODE" env-default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

type Auth struct {
	TokenTTL time.Duration `yaml:"token-ttl" env:"AUTH_TOKEN_TTL" env-default:"168h" validate:"gt=0"`
}

type Game struct {
	RoundPolicy string `yaml:"round-policy" env:"GAME_ROUND_POLICY" env-default:"auto" validate:"oneof=auto manual"`
	SendBuffer  int    `yaml:"send-buffer" env:"GAME_SEND_BUFFER" env-default:"16" validate:"min=1,max=1024"`
}

type Scores struct {
	LowScoreGames   []string `yaml:"low-score-games" env:"SCORES_LOW_SCORE_GAMES" env-default:"minesweeper,memory,breakout"`
	LeaderboardSize int      `yaml:"leaderboard-size" env:"SCORES_LEADERBOARD_SIZE" env-default:"10" validate:"min=1,max=100"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path, applies env overrides and defaults, then validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}

// DSN returns a postgres:// URL accepted by both pgx and golang-migrate.
func (that *Postgres) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(that.User, that.Password),
		Host:     net.JoinHostPort(that.Host, that.Port),
		Path:     "/" + that.Database,
		RawQuery: url.Values{"sslmode": []string{that.SSLMode}}.Encode(),
	}

	return dsn.String()
}
