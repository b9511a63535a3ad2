package cli

import (
	"carrental/config"
	"carrental/infras/otel"
	"carrental/transport/cli/router"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 5 * time.Second

type CLI struct {
	Config *config.Config
	Router router.Router
	Otel   otel.Otel
	Writer io.Writer
}

func New(cfg *config.Config, r router.Router, otel otel.Otel) *CLI {
	return &CLI{
		Config: cfg,
		Router: r,
		Otel:   otel,
		Writer: os.Stdout,
	}
}

// Run executes one command. An interrupt cancels the command's context; spans
// are flushed before returning either way.
func (c *CLI) Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer c.shutdown()

	app := &cli.App{
		Name:                 c.Config.App.Name,
		Usage:                "Car rental back office",
		Writer:               c.Writer,
		EnableBashCompletion: true,
	}

	c.Router.SetupCommands(app)

	log.Debug().Strs("args", args[1:]).Msg("Running command")

	return app.RunContext(ctx, args)
}

func (c *CLI) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := c.Otel.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}
}
