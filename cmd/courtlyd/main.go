// Command courtlyd runs the Courtly transcription service: an HTTP API
// that transcribes uploaded court audio, keeps chain-of-custody records,
// and exports transcripts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chundurirohan/Courtly-server/config"
	"github.com/Chundurirohan/Courtly-server/custody"
	"github.com/Chundurirohan/Courtly-server/export"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/media"
	"github.com/Chundurirohan/Courtly-server/observability"
	"github.com/Chundurirohan/Courtly-server/server"
	"github.com/Chundurirohan/Courtly-server/service"
	"github.com/Chundurirohan/Courtly-server/storage/local"
	"github.com/Chundurirohan/Courtly-server/transcription"
	"github.com/Chundurirohan/Courtly-server/transcription/deepgram"
	"github.com/Chundurirohan/Courtly-server/transcription/mock"
	"github.com/Chundurirohan/Courtly-server/transcription/whispercpp"
	"github.com/Chundurirohan/Courtly-server/version"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("service exited", logger.Fields(logger.FieldError, err.Error()))
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults(
		"server", "service", "transcription", "whispercpp", "deepgram",
		"custody", "export", "media", "config",
	)
	log := logger.WithComponent("main")
	log.Info("starting courtly server", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName:    cfg.Name,
			ServiceVersion: version.GetShortVersion(),
			Environment:    cfg.Environment,
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
			SampleRate:     cfg.Tracing.SampleRate,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown failed", logger.Fields(logger.FieldError, err.Error()))
			}
		}()
	}

	dataStore, err := local.NewStorage(cfg.Dirs.Data)
	if err != nil {
		return err
	}
	exportStore, err := local.NewStorage(cfg.Dirs.Export)
	if err != nil {
		return err
	}

	reg := transcription.NewRegistry()
	whispercpp.Register(reg)
	deepgram.Register(reg)
	mock.Register(reg)

	provider, err := transcription.Select(ctx, reg, cfg.ASR)
	if err != nil {
		return err
	}

	svc := service.New(provider,
		custody.NewRecorder(dataStore),
		media.NewTranscoder(""),
		export.NewExporter(exportStore))

	srv := server.New(cfg, svc)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	return srv.Stop(context.Background())
}
