package user

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/user/model"
	"carrental/internal/domains/user/model/dto"
	"carrental/internal/domains/user/service"
	"carrental/internal/export"
	"carrental/internal/screens/users"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"carrental/shared/timezone"
	"carrental/transport/cli/flags"
	"carrental/transport/cli/response"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagUsername = "username"
	flagPassword = "password"
	flagEmail    = "email"
	flagRole     = "role"
	flagActive   = "active"
)

type Handler struct {
	service  service.User
	exporter export.Exporter
	otel     otel.Otel
}

func New(service service.User, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	roles := strings.Join(model.Roles, ", ")

	return []*cli.Command{
		{
			Name:   "users",
			Usage:  "List, filter and export operator accounts",
			Flags:  flags.Filters(append([]string{listfilter.All}, model.Roles...), false),
			Action: handler.List,
			Subcommands: []*cli.Command{
				{
					Name:  "add",
					Usage: "Create an active account",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: flagUsername, Required: true},
						&cli.StringFlag{Name: flagPassword, EnvVars: []string{"CARRENTAL_NEW_PASSWORD"}, Required: true},
						&cli.StringFlag{Name: flagEmail, Required: true},
						&cli.StringFlag{Name: flagRole, Usage: roles, Value: model.RoleStaff},
					},
					Action: handler.Add,
				},
				{
					Name:  "update",
					Usage: "Change the email, role, password or active flag of an account",
					Flags: []cli.Flag{
						flags.IDFlag("user id"),
						&cli.StringFlag{Name: flagEmail},
						&cli.StringFlag{Name: flagRole, Usage: roles},
						&cli.StringFlag{Name: flagPassword, Usage: "new password; unchanged when omitted"},
						&cli.BoolFlag{Name: flagActive},
					},
					Action: handler.Update,
				},
				{
					Name:   "toggle",
					Usage:  "Activate or deactivate an account",
					Flags:  []cli.Flag{flags.IDFlag("user id")},
					Action: handler.Toggle,
				},
			},
		},
	}
}

func (handler *Handler) screen(c *cli.Context) (*users.Screen, error) {
	sess, err := session.Require(c.Context)
	if err != nil {
		return nil, err
	}

	return users.New(sess, handler.service, handler.otel), nil
}

func (handler *Handler) List(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".users.List")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	criteria, err := flags.Criteria(c)
	if err != nil {
		return err
	}

	if err = screen.SetCriteria(ctx, criteria); err != nil {
		scope.TraceError(err)

		return err
	}

	rows := make([][]string, 0, len(screen.Visible()))
	for _, u := range screen.Visible() {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10),
			u.Username,
			u.Email,
			u.Role,
			u.StatusLabel(),
			u.CreatedAt.Format(constant.DateFormat),
		})
	}

	if err = response.WithTable(c.App.Writer, []string{"ID", "USERNAME", "EMAIL", "ROLE", "STATUS", "CREATED"}, rows); err != nil {
		return err
	}

	response.WithValues(c.App.Writer, [][2]string{
		{"Total Users", strconv.Itoa(len(screen.Visible()))},
		{"Active", strconv.Itoa(screen.ActiveCount())},
	})
	response.WithStatus(c.App.Writer, screen.StatusMessage())

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Users(ctx, export.ResolveTarget(out, "Users", timezone.Now()), screen.Visible())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export users")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported %d users to %s", len(screen.Visible()), location)

	return nil
}

func (handler *Handler) Add(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".users.Add")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	req := dto.AddUserRequest{
		Username: c.String(flagUsername),
		Password: c.String(flagPassword),
		Email:    c.String(flagEmail),
		Role:     c.String(flagRole),
	}

	if _, err = screen.Add(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Update(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".users.Update")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	id, err := flags.RequiredID(c)
	if err != nil {
		return err
	}

	current, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	req := dto.UpdateUserRequest{
		ID:       id,
		Email:    current.Email,
		Role:     current.Role,
		IsActive: current.IsActive,
		Password: c.String(flagPassword),
	}

	if c.IsSet(flagEmail) {
		req.Email = c.String(flagEmail)
	}

	if c.IsSet(flagRole) {
		req.Role = c.String(flagRole)
	}

	if c.IsSet(flagActive) {
		req.IsActive = c.Bool(flagActive)
	}

	if err = screen.Update(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Toggle(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".users.Toggle")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	id, err := flags.RequiredID(c)
	if err != nil {
		return err
	}

	if err = screen.Load(ctx); err != nil {
		return err
	}

	if !screen.Select(id) {
		return failure.NotFound(fmt.Sprintf("user #%d not found", id)) // nolint:wrapcheck
	}

	if err = screen.ToggleSelected(ctx); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}
