package main

import (
	"carrental/config"
	"carrental/helper"
	"carrental/shared/logger"
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength     = 2
	seedArgLength = 4
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	var err error

	switch os.Args[1] {
	case "up":
		err = helper.Up(cfg)
	case "down":
		err = helper.Down(cfg)
	case "drop":
		err = helper.Drop(cfg)
	case "step-up":
		err = helper.StepUp(cfg)
	case "version":
		err = helper.Version(cfg)
	case "seed-admin":
		if len(os.Args) < seedArgLength {
			log.Fatal().Msg("Usage: migrate seed-admin <username> <password> [email]")
		}

		email := os.Args[2] + "@localhost"
		if len(os.Args) > seedArgLength {
			email = os.Args[4]
		}

		err = helper.SeedAdmin(context.Background(), cfg, os.Args[2], os.Args[3], email)
	default:
		log.Fatal().Msg("Invalid direction. Use 'up', 'down', 'drop', 'step-up', 'version' or 'seed-admin'")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
