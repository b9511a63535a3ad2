package dashboard

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/dashboard/service"
	"carrental/internal/export"
	"carrental/shared/constant"
	"carrental/shared/timezone"
	"carrental/transport/cli/flags"
	"carrental/transport/cli/response"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type Handler struct {
	service  service.Dashboard
	exporter export.Exporter
	otel     otel.Otel
}

func New(service service.Dashboard, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "dashboard",
			Usage: "Show the business summary",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: flags.Out, Aliases: []string{"o"}, Usage: "export the summary; the extension selects the format"},
			},
			Action: handler.Show,
		},
	}
}

func (handler *Handler) Show(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".dashboard.Show")
	defer scope.End()

	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, sess.Welcome())
	response.WithValues(c.App.Writer, stats.Rows())

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Dashboard(ctx, export.ResolveTarget(out, "Dashboard_Report", timezone.Now()), stats)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export dashboard")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported dashboard to %s", location)

	return nil
}
