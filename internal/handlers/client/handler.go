package client

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/client/model"
	"carrental/internal/domains/client/model/dto"
	"carrental/internal/domains/client/service"
	"carrental/internal/export"
	"carrental/internal/screens/clients"
	"carrental/shared/constant"
	"carrental/shared/listfilter"
	"carrental/shared/timezone"
	"carrental/transport/cli/flags"
	"carrental/transport/cli/response"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagFirstName = "first-name"
	flagLastName  = "last-name"
	flagEmail     = "email"
	flagPhone     = "phone"
	flagAddress   = "address"
	flagLicense   = "license"
	flagExpiry    = "license-expiry"
	flagFile      = "file"
)

var licenseFilters = []string{
	listfilter.All,
	string(model.LicenseValid),
	string(model.LicenseExpiringSoon),
	string(model.LicenseExpired),
}

type Handler struct {
	service  service.Client
	exporter export.Exporter
	otel     otel.Otel
}

func New(service service.Client, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "clients",
			Usage:  "List, filter and export clients",
			Flags:  flags.Filters(licenseFilters, false),
			Action: handler.List,
			Subcommands: []*cli.Command{
				{
					Name:   "add",
					Usage:  "Register a client",
					Flags:  clientFlags(false),
					Action: handler.Add,
				},
				{
					Name:   "update",
					Usage:  "Change the given fields of a client",
					Flags:  clientFlags(true),
					Action: handler.Update,
				},
				{
					Name:   "import",
					Usage:  "Register the clients listed in a spreadsheet",
					Flags:  []cli.Flag{&cli.StringFlag{Name: flagFile, Aliases: []string{"f"}, Usage: "xlsx file", Required: true}},
					Action: handler.Import,
				},
			},
		},
	}
}

func clientFlags(update bool) []cli.Flag {
	list := []cli.Flag{
		&cli.StringFlag{Name: flagFirstName, Required: !update},
		&cli.StringFlag{Name: flagLastName, Required: !update},
		&cli.StringFlag{Name: flagEmail, Required: !update},
		&cli.StringFlag{Name: flagPhone},
		&cli.StringFlag{Name: flagAddress},
		&cli.StringFlag{Name: flagLicense, Usage: "driving licence number", Required: !update},
		&cli.StringFlag{Name: flagExpiry, Usage: "licence expiry, yyyy-mm-dd", Required: !update},
	}

	if update {
		list = append([]cli.Flag{flags.IDFlag("client id")}, list...)
	}

	return list
}

func (handler *Handler) screen(c *cli.Context) (*clients.Screen, error) {
	sess, err := session.Require(c.Context)
	if err != nil {
		return nil, err
	}

	return clients.New(sess, handler.service, handler.otel), nil
}

func (handler *Handler) List(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".clients.List")
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

	if err = printClients(c, screen); err != nil {
		return err
	}

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Clients(ctx, export.ResolveTarget(out, "Clients_Report", timezone.Now()), screen.Visible())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export clients")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported %d clients to %s", len(screen.Visible()), location)

	return nil
}

func printClients(c *cli.Context, screen *clients.Screen) error {
	now := timezone.Now()

	rows := make([][]string, 0, len(screen.Visible()))
	for _, client := range screen.Visible() {
		rows = append(rows, []string{
			strconv.FormatInt(client.ID, 10),
			client.FullName(),
			client.Email,
			client.Phone,
			client.LicenseNumber,
			client.LicenseExpiry.Format(constant.DateFormat),
			string(client.LicenseStatusAt(now)),
		})
	}

	err := response.WithTable(c.App.Writer, []string{"ID", "NAME", "EMAIL", "PHONE", "LICENCE", "EXPIRES", "STATUS"}, rows)
	if err != nil {
		return err
	}

	response.WithValues(c.App.Writer, [][2]string{
		{"Total Clients", strconv.Itoa(screen.ClientCount())},
		{"Expired Licences", strconv.Itoa(screen.ExpiredLicenses())},
		{"Expiring Soon", strconv.Itoa(screen.ExpiringSoon())},
	})
	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func readRequest(c *cli.Context, req *dto.AddClientRequest) error {
	for name, field := range map[string]*string{
		flagFirstName: &req.FirstName,
		flagLastName:  &req.LastName,
		flagEmail:     &req.Email,
		flagPhone:     &req.Phone,
		flagAddress:   &req.Address,
		flagLicense:   &req.LicenseNumber,
	} {
		if c.IsSet(name) {
			*field = c.String(name)
		}
	}

	if c.IsSet(flagExpiry) {
		expiry, err := flags.Date(c, flagExpiry)
		if err != nil {
			return err
		}

		req.LicenseExpiry = expiry
	}

	return nil
}

func (handler *Handler) Add(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".clients.Add")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	var req dto.AddClientRequest
	if err = readRequest(c, &req); err != nil {
		return err
	}

	if _, err = screen.Add(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Update(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".clients.Update")
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

	req := dto.UpdateClientRequest{
		ID: id,
		AddClientRequest: dto.AddClientRequest{
			FirstName:     current.FirstName,
			LastName:      current.LastName,
			Email:         current.Email,
			Phone:         current.Phone,
			Address:       current.Address,
			LicenseNumber: current.LicenseNumber,
			LicenseExpiry: current.LicenseExpiry,
		},
	}

	if err = readRequest(c, &req.AddClientRequest); err != nil {
		return err
	}

	if err = screen.Update(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Import(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".clients.Import")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	path := c.String(flagFile)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	reqs, err := export.ImportClients(file, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("file", path).Msg("failed to read clients import")

		return err
	}

	if _, err = screen.Import(ctx, reqs); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}
