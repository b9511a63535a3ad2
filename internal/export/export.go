package export

//go:generate go run go.uber.org/mock/mockgen -source=./export.go -destination=./mocks/export_mock.go -package=mocks

import (
	"carrental/config"
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	clientModel "carrental/internal/domains/client/model"
	dashboardModel "carrental/internal/domains/dashboard/model"
	paymentModel "carrental/internal/domains/payment/model"
	rentalModel "carrental/internal/domains/rental/model"
	userModel "carrental/internal/domains/user/model"
	vehicleModel "carrental/internal/domains/vehicle/model"
	"carrental/shared/constant"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	listFormats    = []Format{FormatXLSX, FormatJSON, FormatXML, FormatYAML}
	paymentFormats = []Format{FormatXLSX, FormatCSV, FormatJSON, FormatXML, FormatYAML}
	dumpFormats    = []Format{FormatJSON, FormatXML, FormatYAML}
)

// Exporter renders the rows a screen currently shows and stores them at target.
// The target extension selects the format.
type Exporter interface {
	Vehicles(ctx context.Context, target string, vehicles []vehicleModel.Vehicle) (string, error)
	Clients(ctx context.Context, target string, clients []clientModel.Client) (string, error)
	Rentals(ctx context.Context, target string, rentals []rentalModel.Rental) (string, error)
	Payments(ctx context.Context, target string, payments []paymentModel.Payment) (string, error)
	Users(ctx context.Context, target string, users []userModel.User) (string, error)
	Dashboard(ctx context.Context, target string, stats dashboardModel.Stats) (string, error)
	Invoice(ctx context.Context, target string, invoice Invoice) (string, error)
	Receipt(ctx context.Context, target string, payment paymentModel.Payment, rental rentalModel.Rental) (string, error)
}

type exporterImpl struct {
	sink    Sink
	company Company
	audit   logger.Recorder
	otel    otel.Otel
	now     func() time.Time
}

func New(sink Sink, cfg *config.Config, audit logger.Recorder, otel otel.Otel) Exporter {
	return &exporterImpl{
		sink: sink,
		company: Company{
			Name:    cfg.App.Company.Name,
			Address: cfg.App.Company.Address,
			Phone:   cfg.App.Company.Phone,
			Email:   cfg.App.Company.Email,
		},
		audit: audit,
		otel:  otel,
		now:   timezone.Now,
	}
}

// write runs render for the chosen format and hands the bytes to the sink.
func (e *exporterImpl) write(ctx context.Context, report, target string, rows int, allowed []Format,
	render func(format Format, now time.Time) ([]byte, error),
) (location string, err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelExportScopeName, constant.OtelExportScopeName+"."+report)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	format, err := FormatOf(target, allowed...)
	if err != nil {
		return "", err
	}

	scope.SetAttributes(map[string]any{"target": target, "format": string(format), "rows": rows})

	data, err := render(format, e.now())
	if err != nil {
		log.Error().Err(err).Str("report", report).Str("format", string(format)).Msg("failed to render export")

		return "", fmt.Errorf("failed to render %s: %w", report, err)
	}

	location, err = e.sink.Write(ctx, target, format.ContentType(), data)
	if err != nil {
		return "", fmt.Errorf("failed to store %s: %w", report, err)
	}

	log.Info().Str("report", report).Str("location", location).Int("rows", rows).Msg("export written")

	if err := e.audit.Record(session.Actor(ctx), "export", report, location); err != nil {
		log.Warn().Err(err).Str("report", report).Msg("failed to write audit entry")
	}

	return location, nil
}

func (e *exporterImpl) Vehicles(ctx context.Context, target string, vehicles []vehicleModel.Vehicle) (string, error) {
	return e.write(ctx, "vehicles", target, len(vehicles), listFormats, func(format Format, now time.Time) ([]byte, error) {
		if format == FormatXLSX {
			return VehiclesReport(vehicles, now)
		}

		return Dump(format, "vehicles", "vehicle", vehicles)
	})
}

func (e *exporterImpl) Clients(ctx context.Context, target string, clients []clientModel.Client) (string, error) {
	return e.write(ctx, "clients", target, len(clients), listFormats, func(format Format, now time.Time) ([]byte, error) {
		if format == FormatXLSX {
			return ClientsReport(clients, now)
		}

		return Dump(format, "clients", "client", clients)
	})
}

func (e *exporterImpl) Rentals(ctx context.Context, target string, rentals []rentalModel.Rental) (string, error) {
	return e.write(ctx, "rentals", target, len(rentals), listFormats, func(format Format, now time.Time) ([]byte, error) {
		if format == FormatXLSX {
			return RentalsReport(rentals, now)
		}

		return Dump(format, "rentals", "rental", rentals)
	})
}

func (e *exporterImpl) Payments(ctx context.Context, target string, payments []paymentModel.Payment) (string, error) {
	return e.write(ctx, "payments", target, len(payments), paymentFormats, func(format Format, now time.Time) ([]byte, error) {
		switch format {
		case FormatXLSX:
			return PaymentsReport(payments, now)
		case FormatCSV:
			return PaymentsCSV(payments)
		default:
			return Dump(format, "payments", "payment", payments)
		}
	})
}

func (e *exporterImpl) Users(ctx context.Context, target string, users []userModel.User) (string, error) {
	return e.write(ctx, "users", target, len(users), dumpFormats, func(format Format, _ time.Time) ([]byte, error) {
		return Dump(format, "users", "user", users)
	})
}

func (e *exporterImpl) Dashboard(ctx context.Context, target string, stats dashboardModel.Stats) (string, error) {
	return e.write(ctx, "dashboard", target, 1, listFormats, func(format Format, now time.Time) ([]byte, error) {
		if format == FormatXLSX {
			return DashboardReport(stats, now)
		}

		return Dump(format, "dashboard", "stats", []dashboardModel.Stats{stats})
	})
}

func (e *exporterImpl) Invoice(ctx context.Context, target string, invoice Invoice) (string, error) {
	return e.write(ctx, "invoice", target, 1, []Format{FormatPDF}, func(_ Format, now time.Time) ([]byte, error) {
		return InvoicePDF(invoice, e.company, now)
	})
}

func (e *exporterImpl) Receipt(ctx context.Context, target string, payment paymentModel.Payment, rental rentalModel.Rental) (string, error) {
	return e.write(ctx, "receipt", target, 1, []Format{FormatTXT}, func(_ Format, now time.Time) ([]byte, error) {
		return Receipt(payment, rental, now), nil
	})
}
