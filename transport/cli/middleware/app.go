package middleware

import (
	"carrental/config"
	"carrental/infras/otel"

	"github.com/urfave/cli/v2"
)

const (
	otelCLIScopeName = "cli"
)

type AppMiddleware interface {
	Tracing(path string, next cli.ActionFunc) cli.ActionFunc
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
}

func NewAppMiddleware(otel otel.Otel, config *config.Config) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
	}
}

// Tracing opens one span per command run, named after the command path.
func (a *appMiddleware) Tracing(path string, next cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, scope := a.otel.NewScope(c.Context, otelCLIScopeName, "cli "+path)
		defer scope.End()

		c.Context = ctx

		scope.SetAttributes(map[string]any{
			"app.name":    a.config.App.Name,
			"cli.command": path,
			"cli.args":    c.NArg(),
		})

		err := next(c)
		if err != nil {
			scope.TraceError(err)
		}

		return err
	}
}
