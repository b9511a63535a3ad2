package main

import (
	"carrental/config"
	"carrental/di"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"carrental/transport/cli/response"
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Log.FileEnabled {
		closer, err := logger.InitFileLogger(cfg, timezone.Now())
		if err != nil {
			log.Warn().Err(err).Msg("File logging disabled")
		} else {
			defer closer.Close()

			if removed, err := logger.CleanOldLogs(cfg.Log.Dir, cfg.Log.RetentionDay, timezone.Now()); err != nil {
				log.Warn().Err(err).Msg("Failed to clean old logs")
			} else if removed > 0 {
				log.Debug().Int("removed", removed).Msg("Old log files removed")
			}
		}
	}

	ctx := context.Background()

	app, err := di.InitializeCLI(ctx)
	if err != nil {
		logger.ErrorWithStack(err)
		response.WithError(os.Stderr, err)

		return response.ExitCode(err)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		response.WithError(os.Stderr, err)

		return response.ExitCode(err)
	}

	return response.ExitOK
}
