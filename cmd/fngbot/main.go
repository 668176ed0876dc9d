package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/fngbot/config"
	"github.com/alejandrodnm/fngbot/internal/adapters/binance"
	"github.com/alejandrodnm/fngbot/internal/adapters/feargreed"
	"github.com/alejandrodnm/fngbot/internal/adapters/notify"
	"github.com/alejandrodnm/fngbot/internal/adapters/storage"
	"github.com/alejandrodnm/fngbot/internal/backtest"
	"github.com/alejandrodnm/fngbot/internal/loader"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	capital := flag.Float64("capital", 0, "initial capital in USD (overrides config)")
	buy := flag.Int("buy", -1, "buy threshold: buy when FNG <= X (overrides config)")
	sell := flag.Int("sell", -1, "sell threshold: sell when FNG >= X (overrides config)")
	optimize := flag.Bool("optimize", false, "grid-search best thresholds per year")
	offline := flag.Bool("offline", false, "use cached series only, no network")
	trades := flag.Bool("trades", false, "print full trade history")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *capital > 0 {
		cfg.Strategy.InitialCapital = *capital
	}
	if *buy >= 0 {
		cfg.Strategy.BuyThreshold = *buy
	}
	if *sell >= 0 {
		cfg.Strategy.SellThreshold = *sell
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("fngbot starting",
		"config", *configPath,
		"capital", cfg.Strategy.InitialCapital,
		"buy_threshold", cfg.Strategy.BuyThreshold,
		"sell_threshold", cfg.Strategy.SellThreshold,
		"optimize", *optimize,
		"offline", *offline,
	)

	cache, err := storage.NewSQLiteCache(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open series cache", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer cache.Close()

	prices := binance.NewClient(cfg.Data.BinanceBase)
	sentiment := feargreed.NewClient(cfg.Data.FearGreedBase)
	load := loader.New(prices, sentiment, cache)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	series, err := load.Load(ctx, cfg.Data.FromYear, *offline)
	if err != nil {
		slog.Error("failed to load series", "err", err)
		os.Exit(1)
	}

	report := backtest.Run(series, backtest.Params{
		Capital:       cfg.Strategy.InitialCapital,
		BuyThreshold:  cfg.Strategy.BuyThreshold,
		SellThreshold: cfg.Strategy.SellThreshold,
		Optimize:      *optimize,
		Grid:          backtest.DefaultGrid(),
		Workers:       cfg.Engine.Workers,
	})

	notifier := notify.NewConsole(*trades)
	if err := notifier.Notify(ctx, report); err != nil {
		slog.Error("notifier error", "err", err)
		os.Exit(1)
	}

	slog.Info("fngbot done",
		"days", len(report.Snapshots),
		"trades", len(report.Trades),
	)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
