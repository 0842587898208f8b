package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	ReviewsFile string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	MailFrom    string
	MailTo      string
	SubmitRPS   float64
	SubmitBurst int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		ReviewsFile: env("REVIEWS_FILE", "data/reviews.json"),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SMTPHost:    env("SMTP_HOST", "localhost"),
		SMTPPort:    atoi("SMTP_PORT", 587),
		SMTPUser:    env("SMTP_USERNAME", ""),
		SMTPPass:    env("SMTP_PASSWORD", ""),
		MailFrom:    env("MAIL_FROM", "noreply@matrixabacus.in"),
		MailTo:      env("MAIL_TO", ""),
		SubmitRPS:   float64(atoi("SUBMIT_RPS", 5)),
		SubmitBurst: atoi("SUBMIT_BURST", 10),
	}
	if c.MailTo == "" {
		log.Warn().Msg("MAIL_TO is empty; notification emails will not deliver anywhere useful")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
