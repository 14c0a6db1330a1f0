package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_sentiment/internal/adapters/csvout"
	"review_sentiment/internal/adapters/observability"
	redisad "review_sentiment/internal/adapters/redis"
	"review_sentiment/internal/app"
	"review_sentiment/internal/domain"
	"review_sentiment/internal/sentiment"
	"review_sentiment/internal/shared"
	mysqlrepo "review_sentiment/internal/storage/mysql"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always happens.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.RegisterDefault()
	msrv, err := observability.Serve(cfg.MetricsAddr)
	if err != nil {
		log.Error().Err(err).Msg("metrics server failed")
		return 1
	}
	if msrv != nil {
		defer msrv.Close()
	}

	log.Info().
		Int("workers", cfg.Workers).
		Int("batch_size", cfg.BatchSize).
		Str("output", cfg.OutputCSV).
		Bool("persist", cfg.Persist).
		Msg("classifier starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error().Err(err).Msg("sql.Open failed")
		return 1
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("db.Ping failed")
		return 1
	}
	log.Info().Msg("db ping ok")

	var repo domain.ReviewRepository = mysqlrepo.New(db)

	// 2) scorer: lexicon loaded once, optionally memoized in Redis
	var scorer domain.Scorer = sentiment.NewVaderScorer()
	var queries *app.QueryService
	if cfg.RedisAddr != "" {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable; continuing without cache")
		} else {
			scorer = sentiment.NewCachedScorer(scorer, cache, cfg.ScoreCacheTTL)
			queries = app.NewQueryService(repo, cache, cfg.CacheTTL)
		}
	}

	// 3) sinks
	var sinks []domain.Sink
	var csvw *csvout.Writer
	if cfg.OutputCSV != "" {
		csvw, err = csvout.Create(cfg.OutputCSV)
		if err != nil {
			log.Error().Err(err).Msg("create output csv failed")
			return 1
		}
		sinks = append(sinks, csvw)
	}
	if cfg.Persist {
		sinks = append(sinks, app.StoreSink{Store: repo, Queries: queries})
	}

	svc := app.NewClassificationService(scorer, cfg.Workers)
	stats, runErr := svc.Run(ctx, repo, cfg.BatchSize, sinks...)

	if csvw != nil {
		if err := csvw.Close(); err != nil {
			log.Error().Err(err).Msg("close output csv failed")
		}
	}
	if runErr != nil {
		log.Error().Err(runErr).Int("batches", stats.Batches).Msg("classification failed")
		return 1
	}

	for _, cr := range stats.Head {
		log.Info().
			Int64("review_id", cr.ReviewID).
			Int("rating", cr.Rating).
			Float64("score", cr.Score).
			Str("sentiment", string(cr.Sentiment)).
			Str("bucket", string(cr.Bucket)).
			Msg("sample")
	}

	ev := log.Info().
		Int("reviews", stats.Summary.Total).
		Int("batches", stats.Batches).
		Float64("mean_score", stats.Summary.MeanScore)
	for _, l := range domain.Labels {
		ev = ev.Int(string(l), stats.Summary.Labels[l])
	}
	for _, b := range domain.Buckets {
		ev = ev.Int("bucket "+string(b), stats.Summary.Buckets[b])
	}
	ev.Msg("classification completed")
	return 0
}
