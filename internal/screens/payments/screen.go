package payments

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/payment/model"
	"carrental/internal/domains/payment/model/dto"
	"carrental/internal/domains/payment/service"
	rentalModel "carrental/internal/domains/rental/model"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"carrental/shared/timezone"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultRangeDays is the width of the initial payment date window.
const DefaultRangeDays = 30

var StatusFilters = []string{listfilter.All, model.StatusPending, model.StatusCompleted, model.StatusFailed}

// RentalOption is one entry of the rental picker on the add payment form.
type RentalOption struct {
	ID    int64
	Label string
}

type Screen struct {
	sess     session.Session
	svc      service.Payment
	otel     otel.Otel
	criteria listfilter.Criteria
	view     *listfilter.View[model.Payment]
}

func New(sess session.Session, svc service.Payment, otel otel.Otel) *Screen {
	return &Screen{
		sess:     sess,
		svc:      svc,
		otel:     otel,
		criteria: listfilter.Criteria{Status: listfilter.All},
		view:     listfilter.NewView(func(p model.Payment) int64 { return p.ID }),
	}
}

func (s *Screen) context(ctx context.Context) context.Context {
	return session.WithSession(ctx, s.sess)
}

func (s *Screen) matches(p model.Payment) bool {
	return s.criteria.MatchesText(p.ClientName, p.VehicleInfo, p.TransactionID) &&
		s.criteria.MatchesStatus(p.Status) &&
		s.criteria.MatchesDate(p.PaymentDate)
}

// ApplyDefaultRange sets the date window to the last DefaultRangeDays days.
func (s *Screen) ApplyDefaultRange(now time.Time) {
	s.criteria.From, s.criteria.To = listfilter.LastDays(now, DefaultRangeDays)
}

func (s *Screen) Criteria() listfilter.Criteria {
	return s.criteria
}

// Load clears every filter and shows the full list. On failure the previous
// rows and filters stay.
func (s *Screen) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".payments.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payments, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error loading payments: %s", err)

		return err
	}

	s.criteria = listfilter.Criteria{Status: listfilter.All}
	s.view.Replace(payments)
	s.view.SetStatus("Loaded %d payments", s.view.Count())

	return nil
}

func (s *Screen) Filter(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".payments.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payments, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error filtering payments: %s", err)

		return err
	}

	s.view.Replace(listfilter.Apply(payments, s.matches))
	s.view.SetStatus("Showing %d payments", s.view.Count())

	return nil
}

func validStatusFilter(status string) bool {
	return status == "" || slices.Contains(StatusFilters, status)
}

func (s *Screen) SetSearch(ctx context.Context, text string) error {
	s.criteria.Search = text

	return s.Filter(ctx)
}

func (s *Screen) SetStatusFilter(ctx context.Context, status string) error {
	if !validStatusFilter(status) {
		return failure.Validation("unknown payment status " + status) // nolint:wrapcheck
	}

	s.criteria.Status = status

	return s.Filter(ctx)
}

func (s *Screen) SetDateRange(ctx context.Context, from, to *time.Time) error {
	s.criteria.From = from
	s.criteria.To = to

	return s.Filter(ctx)
}

func (s *Screen) SetCriteria(ctx context.Context, criteria listfilter.Criteria) error {
	if !validStatusFilter(criteria.Status) {
		return failure.Validation("unknown payment status " + criteria.Status) // nolint:wrapcheck
	}

	s.criteria = criteria

	return s.Filter(ctx)
}

func (s *Screen) Visible() []model.Payment {
	return s.view.Visible()
}

func (s *Screen) StatusMessage() string {
	return s.view.Status()
}

func (s *Screen) Select(id int64) bool {
	return s.view.Select(id)
}

func (s *Screen) Selected() (model.Payment, bool) {
	return s.view.Selected()
}

func (s *Screen) TotalPaymentsCount() int {
	return s.view.Count()
}

func (s *Screen) TotalAmount() decimal.Decimal {
	total := decimal.Zero

	for _, p := range s.view.Visible() {
		total = total.Add(p.Amount)
	}

	return total
}

func (s *Screen) CompletedPaymentsCount() int {
	return s.view.CountWhere(func(p model.Payment) bool { return p.Status == model.StatusCompleted })
}

func (s *Screen) CanProcessPayment() bool {
	selected, ok := s.view.Selected()

	return ok && selected.CanProcess()
}

// AvailableRentals lists the rentals a payment can be recorded against.
func (s *Screen) AvailableRentals(ctx context.Context) ([]RentalOption, error) {
	rentals, err := s.svc.EligibleRentals(s.context(ctx))
	if err != nil {
		return nil, err
	}

	options := make([]RentalOption, 0, len(rentals))
	for _, r := range rentals {
		options = append(options, RentalOption{ID: r.ID, Label: rentalLabel(r)})
	}

	return options, nil
}

func rentalLabel(r rentalModel.Rental) string {
	return fmt.Sprintf("#%d - %s - %s - $%s", r.ID, r.ClientName, r.VehicleInfo, r.TotalAmount.StringFixed(2))
}

// Add records a pending payment. Input problems are reported before anything
// is written and leave the list untouched.
func (s *Screen) Add(ctx context.Context, req dto.AddPaymentRequest) (model.Payment, error) {
	payment, err := s.svc.Add(s.context(ctx), req)
	if err != nil {
		s.view.SetStatus("Error adding payment: %s", err)

		return model.Payment{}, err
	}

	if err = s.Filter(ctx); err != nil {
		return payment, err
	}

	s.view.SetStatus("Payment added successfully (Transaction: %s)", payment.TransactionID)

	return payment, nil
}

func (s *Screen) Update(ctx context.Context, req dto.UpdatePaymentRequest) error {
	if err := s.svc.Update(s.context(ctx), req); err != nil {
		s.view.SetStatus("Error updating payment: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Payment #%d updated", req.ID)

	return nil
}

func (s *Screen) ProcessSelected(ctx context.Context) error {
	if !s.CanProcessPayment() {
		return failure.Validation("Please select a pending payment") // nolint:wrapcheck
	}

	selected, _ := s.view.Selected()

	if _, err := s.svc.Process(s.context(ctx), selected.ID); err != nil {
		s.view.SetStatus("Error processing payment: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Payment #%d processed successfully", selected.ID)

	return nil
}

// Today is the default payment date shown on the add form.
func Today() time.Time {
	return timezone.DateOf(timezone.Now())
}
