package payment

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/payment/model"
	"carrental/internal/domains/payment/model/dto"
	"carrental/internal/domains/payment/service"
	rentalService "carrental/internal/domains/rental/service"
	"carrental/internal/export"
	"carrental/internal/screens/payments"
	"carrental/shared/constant"
	"carrental/shared/failure"
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
	flagAll    = "all"
	flagRental = "rental"
	flagAmount = "amount"
	flagMethod = "method"
	flagStatus = "status"
)

type Handler struct {
	service  service.Payment
	rentals  rentalService.Rental
	exporter export.Exporter
	otel     otel.Otel
}

func New(service service.Payment, rentals rentalService.Rental, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		rentals:  rentals,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	methods := strings.Join(model.Methods, ", ")

	return []*cli.Command{
		{
			Name:  "payments",
			Usage: "List, filter and export payments",
			Flags: append(flags.Filters(payments.StatusFilters, true),
				&cli.BoolFlag{Name: flagAll, Usage: fmt.Sprintf("ignore the default window of %d days", payments.DefaultRangeDays)},
			),
			Action: handler.List,
			Subcommands: []*cli.Command{
				{
					Name:   "rentals",
					Usage:  "List the rentals a payment can be recorded against",
					Action: handler.Rentals,
				},
				{
					Name:  "add",
					Usage: "Record a pending payment",
					Flags: []cli.Flag{
						&cli.Int64Flag{Name: flagRental, Usage: "rental id", Required: true},
						&cli.StringFlag{Name: flagAmount, Required: true},
						&cli.StringFlag{Name: flagMethod, Usage: methods, Value: model.MethodCreditCard},
					},
					Action: handler.Add,
				},
				{
					Name:  "update",
					Usage: "Change the amount, method or status of a payment",
					Flags: []cli.Flag{
						flags.IDFlag("payment id"),
						&cli.StringFlag{Name: flagAmount},
						&cli.StringFlag{Name: flagMethod, Usage: methods},
						&cli.StringFlag{Name: flagStatus, Usage: strings.Join(model.Statuses, ", ")},
					},
					Action: handler.Update,
				},
				{
					Name:   "process",
					Usage:  "Mark a pending payment as completed",
					Flags:  []cli.Flag{flags.IDFlag("payment id")},
					Action: handler.Process,
				},
				{
					Name:  "receipt",
					Usage: "Write the text receipt of a payment",
					Flags: []cli.Flag{
						flags.IDFlag("payment id"),
						&cli.StringFlag{Name: flags.Out, Aliases: []string{"o"}, Usage: "txt path"},
					},
					Action: handler.Receipt,
				},
			},
		},
	}
}

func (handler *Handler) screen(c *cli.Context) (*payments.Screen, error) {
	sess, err := session.Require(c.Context)
	if err != nil {
		return nil, err
	}

	return payments.New(sess, handler.service, handler.otel), nil
}

// List shows the last DefaultRangeDays days unless a range or -all is given.
func (handler *Handler) List(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.List")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	criteria, err := flags.Criteria(c)
	if err != nil {
		return err
	}

	if criteria.From == nil && criteria.To == nil && !c.Bool(flagAll) {
		screen.ApplyDefaultRange(timezone.Now())
		criteria.From, criteria.To = screen.Criteria().From, screen.Criteria().To
	}

	if err = screen.SetCriteria(ctx, criteria); err != nil {
		scope.TraceError(err)

		return err
	}

	if err = printPayments(c, screen); err != nil {
		return err
	}

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Payments(ctx, export.ResolveTarget(out, "Payments_Report", timezone.Now()), screen.Visible())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export payments")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported %d payments to %s", len(screen.Visible()), location)

	return nil
}

func printPayments(c *cli.Context, screen *payments.Screen) error {
	rows := make([][]string, 0, len(screen.Visible()))
	for _, p := range screen.Visible() {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.RentalID, 10),
			p.ClientName,
			p.VehicleInfo,
			"$" + p.Amount.StringFixed(2),
			p.PaymentMethod,
			p.PaymentDate.Format(constant.DateFormat),
			p.Status,
			p.TransactionID,
		})
	}

	headers := []string{"ID", "RENTAL", "CLIENT", "VEHICLE", "AMOUNT", "METHOD", "DATE", "STATUS", "TRANSACTION"}
	if err := response.WithTable(c.App.Writer, headers, rows); err != nil {
		return err
	}

	response.WithValues(c.App.Writer, [][2]string{
		{"Total Payments", strconv.Itoa(screen.TotalPaymentsCount())},
		{"Total Amount", "$" + screen.TotalAmount().StringFixed(2)},
		{"Completed", strconv.Itoa(screen.CompletedPaymentsCount())},
	})
	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Rentals(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.Rentals")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	options, err := screen.AvailableRentals(ctx)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	for _, option := range options {
		response.WithMessage(c.App.Writer, "%s", option.Label)
	}

	response.WithStatus(c.App.Writer, fmt.Sprintf("%d rentals accept payments", len(options)))

	return nil
}

func (handler *Handler) Add(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.Add")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	req := dto.AddPaymentRequest{
		RentalID: c.Int64(flagRental),
		Amount:   c.String(flagAmount),
		Method:   c.String(flagMethod),
	}

	if _, err = screen.Add(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

// Update keeps the stored values of the flags that were not given.
func (handler *Handler) Update(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.Update")
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

	req := dto.UpdatePaymentRequest{
		ID:     id,
		Amount: current.Amount.StringFixed(2),
		Method: current.PaymentMethod,
		Status: current.Status,
	}

	if c.IsSet(flagAmount) {
		req.Amount = c.String(flagAmount)
	}

	if c.IsSet(flagMethod) {
		req.Method = c.String(flagMethod)
	}

	if c.IsSet(flagStatus) {
		req.Status = c.String(flagStatus)
	}

	if err = screen.Update(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Process(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.Process")
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
		return failure.NotFound(fmt.Sprintf("payment #%d not found", id)) // nolint:wrapcheck
	}

	if err = screen.ProcessSelected(ctx); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Receipt(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".payments.Receipt")
	defer scope.End()

	if _, err := session.Require(ctx); err != nil {
		return err
	}

	id, err := flags.RequiredID(c)
	if err != nil {
		return err
	}

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	rental, err := handler.rentals.Get(ctx, payment.RentalID)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	now := timezone.Now()

	target := export.ReceiptFileName(payment, now)
	if out := c.String(flags.Out); out != "" {
		target = export.ResolveTarget(out, "Payment_Receipt_"+payment.TransactionID, now)
	}

	location, err := handler.exporter.Receipt(ctx, target, payment, rental)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("payment_id", id).Msg("failed to write receipt")

		return err
	}

	response.WithStatus(c.App.Writer, "Receipt saved to "+location)

	return nil
}
