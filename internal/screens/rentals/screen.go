package rentals

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/rental/model"
	"carrental/internal/domains/rental/model/dto"
	"carrental/internal/domains/rental/service"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusFilters lists the choices of the status filter in display order.
var StatusFilters = []string{
	listfilter.All, model.StatusActive, model.StatusReserved, model.StatusCompleted, model.StatusCancelled,
}

// Screen is the rentals list. The date range applies to the start date.
type Screen struct {
	sess     session.Session
	svc      service.Rental
	otel     otel.Otel
	criteria listfilter.Criteria
	view     *listfilter.View[model.Rental]
}

func New(sess session.Session, svc service.Rental, otel otel.Otel) *Screen {
	return &Screen{
		sess:     sess,
		svc:      svc,
		otel:     otel,
		criteria: listfilter.Criteria{Status: listfilter.All},
		view:     listfilter.NewView(func(r model.Rental) int64 { return r.ID }),
	}
}

func (s *Screen) context(ctx context.Context) context.Context {
	return session.WithSession(ctx, s.sess)
}

func (s *Screen) matches(r model.Rental) bool {
	return s.criteria.MatchesText(r.ClientName, r.VehicleInfo) &&
		s.criteria.MatchesStatus(r.Status) &&
		s.criteria.MatchesDay(r.StartDate)
}

// Load clears every filter and shows the full list. On failure the previous
// rows and filters stay.
func (s *Screen) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".rentals.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rentals, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error loading rentals: %s", err)

		return err
	}

	s.criteria = listfilter.Criteria{Status: listfilter.All}
	s.view.Replace(rentals)
	s.view.SetStatus("Loaded %d rentals", s.view.Count())

	return nil
}

func (s *Screen) Filter(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".rentals.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rentals, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error filtering rentals: %s", err)

		return err
	}

	s.view.Replace(listfilter.Apply(rentals, s.matches))
	s.view.SetStatus("Showing %d rentals", s.view.Count())

	return nil
}

func (s *Screen) SetSearch(ctx context.Context, text string) error {
	s.criteria.Search = text

	return s.Filter(ctx)
}

func (s *Screen) SetStatusFilter(ctx context.Context, status string) error {
	if status != "" && status != listfilter.All && !model.ValidStatus(status) {
		return failure.Validation("unknown rental status " + status) // nolint:wrapcheck
	}

	s.criteria.Status = status

	return s.Filter(ctx)
}

func (s *Screen) SetDateRange(ctx context.Context, from, to *time.Time) error {
	s.criteria.From = from
	s.criteria.To = to

	return s.Filter(ctx)
}

// SetCriteria replaces every filter input at once and filters a single time.
func (s *Screen) SetCriteria(ctx context.Context, criteria listfilter.Criteria) error {
	if criteria.Status != "" && criteria.Status != listfilter.All && !model.ValidStatus(criteria.Status) {
		return failure.Validation("unknown rental status " + criteria.Status) // nolint:wrapcheck
	}

	s.criteria = criteria

	return s.Filter(ctx)
}

func (s *Screen) Criteria() listfilter.Criteria {
	return s.criteria
}

func (s *Screen) Visible() []model.Rental {
	return s.view.Visible()
}

func (s *Screen) StatusMessage() string {
	return s.view.Status()
}

func (s *Screen) Select(id int64) bool {
	return s.view.Select(id)
}

func (s *Screen) Selected() (model.Rental, bool) {
	return s.view.Selected()
}

// ActiveRentalsCount counts visible rentals that still hold a vehicle.
func (s *Screen) ActiveRentalsCount() int {
	return s.view.CountWhere(model.Rental.IsOpen)
}

func (s *Screen) TotalRevenue() decimal.Decimal {
	total := decimal.Zero

	for _, r := range s.view.Visible() {
		total = total.Add(r.TotalAmount)
	}

	return total
}

func (s *Screen) CanCompleteRental() bool {
	selected, ok := s.view.Selected()

	return ok && selected.CanComplete()
}

func (s *Screen) Add(ctx context.Context, req dto.AddRentalRequest) (int64, error) {
	id, err := s.svc.Add(s.context(ctx), req)
	if err != nil {
		s.view.SetStatus("Error saving rental: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return id, err
	}

	s.view.SetStatus("Rental #%d created", id)

	return id, nil
}

// CompleteSelected closes the selected rental and re-reads the list.
func (s *Screen) CompleteSelected(ctx context.Context) error {
	if !s.CanCompleteRental() {
		return failure.Validation("Please select an active or reserved rental") // nolint:wrapcheck
	}

	selected, _ := s.view.Selected()

	if _, err := s.svc.Complete(s.context(ctx), selected.ID); err != nil {
		s.view.SetStatus("Error completing rental: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Rental #%d marked as completed", selected.ID)

	return nil
}

func (s *Screen) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest) error {
	if err := s.svc.UpdateStatus(s.context(ctx), req); err != nil {
		s.view.SetStatus("Error updating rental: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Rental #%d is now %s", req.ID, req.Status)

	return nil
}
