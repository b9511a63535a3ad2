package rental

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	clientService "carrental/internal/domains/client/service"
	"carrental/internal/domains/rental/model"
	"carrental/internal/domains/rental/model/dto"
	"carrental/internal/domains/rental/service"
	vehicleService "carrental/internal/domains/vehicle/service"
	"carrental/internal/export"
	vehicleHandler "carrental/internal/handlers/vehicle"
	"carrental/internal/screens/rentals"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/timezone"
	"carrental/transport/cli/flags"
	"carrental/transport/cli/response"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagClient  = "client"
	flagVehicle = "vehicle"
	flagStart   = "start"
	flagEnd     = "end"
	flagTotal   = "total"
	flagDeposit = "deposit"
	flagStatus  = "status"
)

type Handler struct {
	service  service.Rental
	clients  clientService.Client
	vehicles vehicleService.Vehicle
	exporter export.Exporter
	otel     otel.Otel
}

func New(
	service service.Rental,
	clients clientService.Client,
	vehicles vehicleService.Vehicle,
	exporter export.Exporter,
	otel otel.Otel,
) Handler {
	return Handler{
		service:  service,
		clients:  clients,
		vehicles: vehicles,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "rentals",
			Usage:  "List, filter and export rentals",
			Flags:  flags.Filters(rentals.StatusFilters, true),
			Action: handler.List,
			Subcommands: []*cli.Command{
				{
					Name:  "add",
					Usage: "Book a vehicle for a client",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: flagClient, Usage: "client id", Required: true},
						&cli.Int64Flag{Name: flagVehicle, Usage: "vehicle id; lists the available vehicles when omitted"},
						&cli.StringFlag{Name: flagStart, Usage: "first day, yyyy-mm-dd", Required: true},
						&cli.StringFlag{Name: flagEnd, Usage: "last day, yyyy-mm-dd", Required: true},
						&cli.StringFlag{Name: flagTotal, Usage: "total amount; priced from the daily rate when omitted"},
						&cli.StringFlag{Name: flagDeposit},
						&cli.StringFlag{Name: flagStatus, Usage: "Reserved or Active", Value: model.StatusReserved},
					},
					Action: handler.Add,
				},
				{
					Name:   "complete",
					Usage:  "Return the vehicle and close the rental",
					Flags:  []cli.Flag{flags.IDFlag("rental id")},
					Action: handler.Complete,
				},
				{
					Name:  "status",
					Usage: "Move a rental to another status",
					Flags: []cli.Flag{
						flags.IDFlag("rental id"),
						&cli.StringFlag{Name: flagStatus, Usage: "Reserved, Active, Completed or Cancelled", Required: true},
					},
					Action: handler.UpdateStatus,
				},
				{
					Name:   "cancel",
					Usage:  "Cancel a reserved or active rental",
					Flags:  []cli.Flag{flags.IDFlag("rental id")},
					Action: handler.Cancel,
				},
				{
					Name:  "invoice",
					Usage: "Write the PDF invoice of a rental",
					Flags: []cli.Flag{
						flags.IDFlag("rental id"),
						&cli.StringFlag{Name: flags.Out, Aliases: []string{"o"}, Value: ".pdf", Usage: "pdf path"},
					},
					Action: handler.Invoice,
				},
			},
		},
	}
}

func (handler *Handler) screen(c *cli.Context) (*rentals.Screen, error) {
	sess, err := session.Require(c.Context)
	if err != nil {
		return nil, err
	}

	return rentals.New(sess, handler.service, handler.otel), nil
}

func (handler *Handler) List(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".rentals.List")
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

	if err = printRentals(c, screen); err != nil {
		return err
	}

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Rentals(ctx, export.ResolveTarget(out, "Rentals_Report", timezone.Now()), screen.Visible())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export rentals")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported %d rentals to %s", len(screen.Visible()), location)

	return nil
}

func printRentals(c *cli.Context, screen *rentals.Screen) error {
	rows := make([][]string, 0, len(screen.Visible()))
	for _, r := range screen.Visible() {
		returned := "N/A"
		if r.ActualReturnDate != nil {
			returned = r.ActualReturnDate.Format(constant.DateFormat)
		}

		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.ClientName,
			r.VehicleInfo,
			r.StartDate.Format(constant.DateFormat),
			r.EndDate.Format(constant.DateFormat),
			returned,
			"$" + r.TotalAmount.StringFixed(2),
			r.Status,
		})
	}

	err := response.WithTable(c.App.Writer, []string{"ID", "CLIENT", "VEHICLE", "START", "END", "RETURNED", "TOTAL", "STATUS"}, rows)
	if err != nil {
		return err
	}

	response.WithValues(c.App.Writer, [][2]string{
		{"Active Rentals", strconv.Itoa(screen.ActiveRentalsCount())},
		{"Total Revenue", "$" + screen.TotalRevenue().StringFixed(2)},
	})
	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Add(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".rentals.Add")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	if !c.IsSet(flagVehicle) {
		return handler.pickVehicle(c)
	}

	req := dto.AddRentalRequest{
		ClientID:  c.Int64(flagClient),
		VehicleID: c.Int64(flagVehicle),
		Status:    c.String(flagStatus),
	}

	if req.StartDate, err = flags.Date(c, flagStart); err != nil {
		return err
	}

	if req.EndDate, err = flags.Date(c, flagEnd); err != nil {
		return err
	}

	if req.TotalAmount, err = flags.Decimal(c, flagTotal); err != nil {
		return err
	}

	if req.Deposit, err = flags.Decimal(c, flagDeposit); err != nil {
		return err
	}

	if _, err = screen.Add(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

// pickVehicle shows the bookable vehicles and asks for one.
func (handler *Handler) pickVehicle(c *cli.Context) error {
	available, err := handler.vehicles.ListAvailable(c.Context)
	if err != nil {
		return err
	}

	if err = vehicleHandler.PrintAvailable(c.App.Writer, available); err != nil {
		return err
	}

	return failure.ErrVehicleRequired
}

// selectRental loads the list and selects id on it, as an operator would
// before pressing an action button.
func selectRental(c *cli.Context, screen *rentals.Screen) (int64, error) {
	id, err := flags.RequiredID(c)
	if err != nil {
		return 0, err
	}

	if err = screen.Load(c.Context); err != nil {
		return 0, err
	}

	if !screen.Select(id) {
		return 0, failure.NotFound(fmt.Sprintf("rental #%d not found", id)) // nolint:wrapcheck
	}

	return id, nil
}

func (handler *Handler) Complete(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".rentals.Complete")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	if _, err = selectRental(c, screen); err != nil {
		return err
	}

	if err = screen.CompleteSelected(ctx); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) UpdateStatus(c *cli.Context) error {
	return handler.moveTo(c, c.String(flagStatus))
}

func (handler *Handler) Cancel(c *cli.Context) error {
	return handler.moveTo(c, model.StatusCancelled)
}

func (handler *Handler) moveTo(c *cli.Context, status string) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".rentals.UpdateStatus")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	id, err := flags.RequiredID(c)
	if err != nil {
		return err
	}

	if err = screen.UpdateStatus(ctx, dto.UpdateStatusRequest{ID: id, Status: status}); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

// Invoice gathers the rental with its client and vehicle and writes the PDF.
func (handler *Handler) Invoice(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".rentals.Invoice")
	defer scope.End()

	if _, err := session.Require(ctx); err != nil {
		return err
	}

	id, err := flags.RequiredID(c)
	if err != nil {
		return err
	}

	rental, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	client, err := handler.clients.Get(ctx, rental.ClientID)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	vehicle, err := handler.vehicles.Get(ctx, rental.VehicleID)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	target := export.ResolveTarget(c.String(flags.Out), "Invoice_"+export.InvoiceNumber(rental.ID), timezone.Now())

	location, err := handler.exporter.Invoice(ctx, target, export.Invoice{Rental: rental, Client: client, Vehicle: vehicle})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("rental_id", id).Msg("failed to write invoice")

		return err
	}

	response.WithStatus(c.App.Writer, fmt.Sprintf("Invoice %s saved to %s", export.InvoiceNumber(rental.ID), location))

	return nil
}
