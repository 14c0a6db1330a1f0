package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MySQLDSN      string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	Workers       int
	BatchSize     int
	OutputCSV     string
	Persist       bool
	CacheTTL      time.Duration
	ScoreCacheTTL time.Duration
	ClassifyRPS   int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer config value")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/analytics?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		Workers:       atoi("CLASSIFY_WORKERS", 8),
		BatchSize:     atoi("CLASSIFY_BATCH_SIZE", 500),
		OutputCSV:     env("OUTPUT_CSV", "customer_reviews_sentiment_output.csv"),
		Persist:       env("PERSIST_RESULTS", "true") == "true",
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ScoreCacheTTL: time.Duration(atoi("SCORE_CACHE_TTL_SECONDS", 7*24*3600)) * time.Second,
		ClassifyRPS:   atoi("CLASSIFY_RPS", 50),
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; caching disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
