package vehicles

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/model/dto"
	"carrental/internal/domains/vehicle/service"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	AvailabilityAll         = listfilter.All
	AvailabilityAvailable   = "Available"
	AvailabilityUnavailable = "Unavailable"
)

// Screen is the vehicles list: every filter change re-reads the store and
// filters the fresh snapshot.
type Screen struct {
	sess     session.Session
	svc      service.Vehicle
	otel     otel.Otel
	criteria listfilter.Criteria
	view     *listfilter.View[model.Vehicle]
}

func New(sess session.Session, svc service.Vehicle, otel otel.Otel) *Screen {
	return &Screen{
		sess:     sess,
		svc:      svc,
		otel:     otel,
		criteria: listfilter.Criteria{Status: AvailabilityAll},
		view:     listfilter.NewView(func(v model.Vehicle) int64 { return v.ID }),
	}
}

func (s *Screen) context(ctx context.Context) context.Context {
	return session.WithSession(ctx, s.sess)
}

func (s *Screen) matches(v model.Vehicle) bool {
	if !s.criteria.MatchesText(v.Make, v.Model, v.LicensePlate, v.VehicleType) {
		return false
	}

	switch s.criteria.Status {
	case AvailabilityAvailable:
		return v.IsAvailable
	case AvailabilityUnavailable:
		return !v.IsAvailable
	default:
		return true
	}
}

// Load resets the filters and shows every vehicle.
func (s *Screen) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".vehicles.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicles, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error loading vehicles: %s", err)

		return err
	}

	s.criteria = listfilter.Criteria{Status: listfilter.All}
	s.view.Replace(vehicles)
	s.view.SetStatus("Loaded %d vehicles", s.view.Count())

	return nil
}

// Filter re-reads the store and applies the current criteria.
func (s *Screen) Filter(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".vehicles.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicles, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error filtering vehicles: %s", err)

		return err
	}

	s.view.Replace(listfilter.Apply(vehicles, s.matches))

	if s.criteria.HasSearch() {
		s.view.SetStatus("Found %d vehicles matching '%s'", s.view.Count(), s.criteria.Search)
	} else {
		s.view.SetStatus("Loaded %d vehicles", s.view.Count())
	}

	return nil
}

func (s *Screen) SetSearch(ctx context.Context, text string) error {
	s.criteria.Search = text

	return s.Filter(ctx)
}

func validAvailability(filter string) error {
	switch filter {
	case "", AvailabilityAll, AvailabilityAvailable, AvailabilityUnavailable:
		return nil
	default:
		return failure.Validation(fmt.Sprintf("unknown availability filter %q", filter)) // nolint:wrapcheck
	}
}

func (s *Screen) SetAvailability(ctx context.Context, filter string) error {
	if err := validAvailability(filter); err != nil {
		return err
	}

	s.criteria.Status = filter

	return s.Filter(ctx)
}

// SetCriteria takes the search text and the availability filter in one pass.
// Vehicles carry no date, so the bounds are ignored.
func (s *Screen) SetCriteria(ctx context.Context, criteria listfilter.Criteria) error {
	if err := validAvailability(criteria.Status); err != nil {
		return err
	}

	s.criteria = listfilter.Criteria{Search: criteria.Search, Status: criteria.Status}

	return s.Filter(ctx)
}

func (s *Screen) Visible() []model.Vehicle {
	return s.view.Visible()
}

func (s *Screen) StatusMessage() string {
	return s.view.Status()
}

func (s *Screen) Select(id int64) bool {
	return s.view.Select(id)
}

func (s *Screen) Selected() (model.Vehicle, bool) {
	return s.view.Selected()
}

func (s *Screen) VehicleCount() int {
	return s.view.Count()
}

func (s *Screen) AvailableCount() int {
	return s.view.CountWhere(func(v model.Vehicle) bool { return v.IsAvailable })
}

// AverageDailyRate is zero for an empty list.
func (s *Screen) AverageDailyRate() decimal.Decimal {
	visible := s.view.Visible()
	if len(visible) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, v := range visible {
		total = total.Add(v.DailyRate)
	}

	return total.Div(decimal.NewFromInt(int64(len(visible)))).Round(2)
}

func (s *Screen) Add(ctx context.Context, req dto.AddVehicleRequest) (int64, error) {
	id, err := s.svc.Add(s.context(ctx), req)
	if err != nil {
		s.view.SetStatus("Error saving vehicle: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return id, err
	}

	s.view.SetStatus("Vehicle #%d added", id)

	return id, nil
}

func (s *Screen) Update(ctx context.Context, req dto.UpdateVehicleRequest) error {
	if err := s.svc.Update(s.context(ctx), req); err != nil {
		s.view.SetStatus("Error saving vehicle: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Vehicle #%d updated", req.ID)

	return nil
}

// ToggleSelected flips the availability of the selected vehicle.
func (s *Screen) ToggleSelected(ctx context.Context) error {
	selected, ok := s.view.Selected()
	if !ok {
		return failure.Validation("Please select a vehicle") // nolint:wrapcheck
	}

	updated, err := s.svc.ToggleAvailability(s.context(ctx), selected.ID)
	if err != nil {
		s.view.SetStatus("Error updating vehicle: %s", err)

		return err
	}

	if err = s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Vehicle availability updated to: %s", updated.AvailabilityLabel())

	return nil
}

func (s *Screen) Import(ctx context.Context, reqs []dto.AddVehicleRequest) (int, error) {
	count, err := s.svc.Import(s.context(ctx), reqs)
	if err != nil {
		s.view.SetStatus("Error importing vehicles: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return count, err
	}

	s.view.SetStatus("Imported %d vehicles", count)

	return count, nil
}
