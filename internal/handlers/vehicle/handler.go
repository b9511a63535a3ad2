package vehicle

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/model/dto"
	"carrental/internal/domains/vehicle/service"
	"carrental/internal/export"
	"carrental/internal/screens/vehicles"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/timezone"
	"carrental/transport/cli/flags"
	"carrental/transport/cli/response"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const (
	flagMake      = "make"
	flagModel     = "model"
	flagYear      = "year"
	flagPlate     = "plate"
	flagColor     = "color"
	flagRate      = "rate"
	flagType      = "type"
	flagAvailable = "available"
	flagFile      = "file"
)

var availabilityFilters = []string{vehicles.AvailabilityAll, vehicles.AvailabilityAvailable, vehicles.AvailabilityUnavailable}

type Handler struct {
	service  service.Vehicle
	exporter export.Exporter
	otel     otel.Otel
}

func New(service service.Vehicle, exporter export.Exporter, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		exporter: exporter,
		otel:     otel,
	}
}

func (handler *Handler) Commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "vehicles",
			Usage:  "List, filter and export the fleet",
			Flags:  flags.Filters(availabilityFilters, false),
			Action: handler.List,
			Subcommands: []*cli.Command{
				{
					Name:   "add",
					Usage:  "Add a vehicle",
					Flags:  vehicleFlags(false),
					Action: handler.Add,
				},
				{
					Name:   "update",
					Usage:  "Change the given fields of a vehicle",
					Flags:  vehicleFlags(true),
					Action: handler.Update,
				},
				{
					Name:   "available",
					Usage:  "List the vehicles that can be booked now",
					Action: handler.Available,
				},
				{
					Name:   "toggle",
					Usage:  "Flip the availability of a vehicle",
					Flags:  []cli.Flag{flags.IDFlag("vehicle id")},
					Action: handler.Toggle,
				},
				{
					Name:   "import",
					Usage:  "Add the vehicles listed in a spreadsheet",
					Flags:  []cli.Flag{&cli.StringFlag{Name: flagFile, Aliases: []string{"f"}, Usage: "xlsx file", Required: true}},
					Action: handler.Import,
				},
			},
		},
	}
}

func vehicleFlags(update bool) []cli.Flag {
	list := []cli.Flag{
		&cli.StringFlag{Name: flagMake, Required: !update},
		&cli.StringFlag{Name: flagModel, Required: !update},
		&cli.IntFlag{Name: flagYear, Value: timezone.Now().Year()},
		&cli.StringFlag{Name: flagPlate, Usage: "licence plate", Required: !update},
		&cli.StringFlag{Name: flagColor},
		&cli.StringFlag{Name: flagRate, Usage: "daily rate"},
		&cli.StringFlag{Name: flagType, Usage: "Economy, Standard, Luxury or SUV", Value: model.TypeStandard},
		&cli.BoolFlag{Name: flagAvailable, Value: true},
	}

	if update {
		list = append([]cli.Flag{flags.IDFlag("vehicle id")}, list...)
	}

	return list
}

func (handler *Handler) screen(c *cli.Context) (*vehicles.Screen, error) {
	sess, err := session.Require(c.Context)
	if err != nil {
		return nil, err
	}

	return vehicles.New(sess, handler.service, handler.otel), nil
}

// List prints the vehicles matching the filter flags and exports them when -out is given.
func (handler *Handler) List(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.List")
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

	if err = printVehicles(c, screen); err != nil {
		return err
	}

	out := c.String(flags.Out)
	if out == "" {
		return nil
	}

	location, err := handler.exporter.Vehicles(ctx, export.ResolveTarget(out, "Vehicles_Report", timezone.Now()), screen.Visible())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("target", out).Msg("failed to export vehicles")

		return err
	}

	response.WithMessage(c.App.Writer, "Exported %d vehicles to %s", len(screen.Visible()), location)

	return nil
}

func printVehicles(c *cli.Context, screen *vehicles.Screen) error {
	rows := make([][]string, 0, len(screen.Visible()))
	for _, v := range screen.Visible() {
		rows = append(rows, []string{
			strconv.FormatInt(v.ID, 10),
			v.Make,
			v.Model,
			strconv.Itoa(v.Year),
			v.LicensePlate,
			v.VehicleType,
			"$" + v.DailyRate.StringFixed(2),
			v.AvailabilityLabel(),
		})
	}

	err := response.WithTable(c.App.Writer, []string{"ID", "MAKE", "MODEL", "YEAR", "PLATE", "TYPE", "DAILY RATE", "STATUS"}, rows)
	if err != nil {
		return err
	}

	response.WithValues(c.App.Writer, [][2]string{
		{"Total Vehicles", strconv.Itoa(screen.VehicleCount())},
		{"Available", strconv.Itoa(screen.AvailableCount())},
		{"Average Daily Rate", "$" + screen.AverageDailyRate().StringFixed(2)},
	})
	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func readRequest(c *cli.Context, req *dto.AddVehicleRequest) error {
	if c.IsSet(flagMake) {
		req.Make = c.String(flagMake)
	}

	if c.IsSet(flagModel) {
		req.Model = c.String(flagModel)
	}

	if c.IsSet(flagYear) || req.Year == 0 {
		req.Year = c.Int(flagYear)
	}

	if c.IsSet(flagPlate) {
		req.LicensePlate = c.String(flagPlate)
	}

	if c.IsSet(flagColor) {
		req.Color = c.String(flagColor)
	}

	if c.IsSet(flagRate) {
		rate, err := flags.Decimal(c, flagRate)
		if err != nil {
			return err
		}

		req.DailyRate = rate
	}

	if c.IsSet(flagType) || req.VehicleType == "" {
		req.VehicleType = c.String(flagType)
	}

	if c.IsSet(flagAvailable) {
		req.IsAvailable = c.Bool(flagAvailable)
	}

	return nil
}

func (handler *Handler) Add(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.Add")
	defer scope.End()

	screen, err := handler.screen(c)
	if err != nil {
		return err
	}

	req := dto.AddVehicleRequest{IsAvailable: c.Bool(flagAvailable)}
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

// Update starts from the stored vehicle so only the given flags change.
func (handler *Handler) Update(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.Update")
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

	req := dto.UpdateVehicleRequest{
		ID: id,
		AddVehicleRequest: dto.AddVehicleRequest{
			Make:         current.Make,
			Model:        current.Model,
			Year:         current.Year,
			LicensePlate: current.LicensePlate,
			Color:        current.Color,
			DailyRate:    current.DailyRate,
			VehicleType:  current.VehicleType,
			IsAvailable:  current.IsAvailable,
		},
	}

	if err = readRequest(c, &req.AddVehicleRequest); err != nil {
		return err
	}

	if err = screen.Update(ctx, req); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

// Available prints the vehicles that can be booked now.
func (handler *Handler) Available(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.Available")
	defer scope.End()

	if _, err := session.Require(c.Context); err != nil {
		return err
	}

	list, err := handler.service.ListAvailable(ctx)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	return PrintAvailable(c.App.Writer, list)
}

// PrintAvailable writes the vehicle picker table used by "vehicles available"
// and "rentals add".
func PrintAvailable(w io.Writer, list []model.Vehicle) error {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		rows = append(rows, []string{strconv.FormatInt(v.ID, 10), v.Info(), v.VehicleType, "$" + v.DailyRate.StringFixed(2)})
	}

	if err := response.WithTable(w, []string{"ID", "VEHICLE", "TYPE", "DAILY RATE"}, rows); err != nil {
		return err
	}

	response.WithStatus(w, fmt.Sprintf("%d vehicles available", len(list)))

	return nil
}

func (handler *Handler) Toggle(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.Toggle")
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
		return failure.NotFound(fmt.Sprintf("vehicle #%d not found", id)) // nolint:wrapcheck
	}

	if err = screen.ToggleSelected(ctx); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}

func (handler *Handler) Import(c *cli.Context) error {
	ctx, scope := handler.otel.NewScope(c.Context, constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".vehicles.Import")
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

	reqs, err := export.ImportVehicles(file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("file", path).Msg("failed to read vehicles import")

		return err
	}

	if _, err = screen.Import(ctx, reqs); err != nil {
		scope.TraceError(err)

		return err
	}

	response.WithStatus(c.App.Writer, screen.StatusMessage())

	return nil
}
