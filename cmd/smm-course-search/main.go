package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"smm-course-search/cmd/smm-course-search/commands"
	"smm-course-search/cmd/smm-course-search/globals"
	"smm-course-search/internal/components/chrono"
	"smm-course-search/internal/components/telemetry"
	"smm-course-search/internal/courses"
	"smm-course-search/internal/query"
	"smm-course-search/internal/search"
	"smm-course-search/lib/configutil"
	"smm-course-search/lib/restyutil"
	"smm-course-search/lib/serviceutil"

	"github.com/lmittmann/tint"
)

func initSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func run() int {
	configutil.LoadEnv(".env")

	cfg, err := loadConfig()
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	initSlog(cfg.Verbose)

	ctx := serviceutil.SignalContext()
	tel := telemetry.SlogAPI{}

	if cfg.Telemetry {
		t, err := telemetry.SetupFromEnv(ctx, "smm-course-search")
		if err != nil {
			serviceutil.Fatal("setup telemetry", err)
		}
		defer t.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx, tel)
	}

	opts := search.HTTPOptions{
		UserAgent:         cfg.UserAgent,
		Timeout:           time.Duration(cfg.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
	if cfg.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			slog.Error("create dump directory", "err", err.Error())
			return 1
		}
		opts.Dump = output
	}
	fetcher := search.NewHTTPFetcher(opts, tel)
	translator := query.NewTranslator(cfg.BaseUrl, tel)
	decoder := courses.NewDecoder(chrono.NewStandardTime(), tel)

	ctx = globals.Set(ctx, &globals.Value{
		Searcher:   search.NewSearcher(fetcher, translator, decoder, tel),
		Translator: translator,
		Tel:        tel,
	})

	err = commands.Execute(ctx)
	if err != nil {
		slog.Error("command failed", "err", err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
