package auth

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/model/dto"
	"carrental/internal/domains/auth/service"
	"carrental/internal/domains/auth/session"
	"carrental/shared/constant"
	"carrental/shared/timezone"
	"carrental/transport/cli/response"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagUsername = "username"
	flagPassword = "password"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "login",
			Usage: "Sign in and start a session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: flagUsername, Aliases: []string{"u"}, Usage: "account name"},
				&cli.StringFlag{Name: flagPassword, Aliases: []string{"p"}, Usage: "account password", EnvVars: []string{"CARRENTAL_PASSWORD"}},
			},
			Action: handler.Login,
		},
		{
			Name:   "logout",
			Usage:  "End the current session",
			Action: handler.Logout,
		},
		{
			Name:   "whoami",
			Usage:  "Show the signed-in operator",
			Action: handler.WhoAmI,
		},
	}
}

func (handler *Handler) Login(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".auth.Login")
	defer scope.End()

	req := dto.LoginRequest{
		Username: c.String(flagUsername),
		Password: c.String(flagPassword),
	}

	sess, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("username", req.TrimmedUsername()).Msg("failed to login user")

		return err
	}

	scope.AddEvent("User logged in successfully")

	response.WithStatus(c.App.Writer, sess.Welcome())

	return nil
}

func (handler *Handler) Logout(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".auth.Logout")
	defer scope.End()

	if err := handler.service.Logout(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout user")

		return err
	}

	response.WithMessage(c.App.Writer, "Logged out")

	return nil
}

func (handler *Handler) WhoAmI(c *cli.Context) error {
	_, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".auth.WhoAmI")
	defer scope.End()

	sess, err := session.Require(c.Context)
	if err != nil {
		return err
	}

	expires := sess.ExpiresAt.Sub(timezone.Now()).Round(time.Second)

	response.WithValues(c.App.Writer, [][2]string{
		{"User", sess.Username},
		{"Email", sess.Email},
		{"Role", sess.Role},
		{"Signed In", sess.LoginAt.Format("2006-01-02 15:04")},
		{"Expires In", expires.String()},
	})

	return nil
}
