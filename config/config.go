package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DatabaseURL        string        `env:"DATABASE_URL,required"`
	Port               string        `env:"PORT,default=8080"`
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET,required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_EXPIRY,default=15m"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_EXPIRY,default=240h"`
	OtpTTL             time.Duration `env:"OTP_EXPIRY,default=10m"`
	SMTPHost           string        `env:"SMTP_HOST"`
	SMTPPort           int           `env:"SMTP_PORT,default=587"`
	SMTPUsername       string        `env:"SMTP_USERNAME"`
	SMTPPassword       string        `env:"SMTP_PASSWORD"`
	SMTPFrom           string        `env:"SMTP_FROM"`
	CookieSecure       bool          `env:"COOKIE_SECURE,default=true"`
	RateLimitRPS       int           `env:"RATE_LIMIT_RPS,default=50"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}

	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	return &cfg, nil
}
