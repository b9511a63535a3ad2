package clients

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/client/model"
	"carrental/internal/domains/client/model/dto"
	"carrental/internal/domains/client/service"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"carrental/shared/timezone"
	"context"
)

// Screen is the clients list. The status filter matches the licence status
// (Valid, Expiring Soon, Expired).
type Screen struct {
	sess     session.Session
	svc      service.Client
	otel     otel.Otel
	criteria listfilter.Criteria
	view     *listfilter.View[model.Client]
}

func New(sess session.Session, svc service.Client, otel otel.Otel) *Screen {
	return &Screen{
		sess:     sess,
		svc:      svc,
		otel:     otel,
		criteria: listfilter.Criteria{Status: listfilter.All},
		view:     listfilter.NewView(func(c model.Client) int64 { return c.ID }),
	}
}

func (s *Screen) context(ctx context.Context) context.Context {
	return session.WithSession(ctx, s.sess)
}

// Load resets the filters and shows every client.
func (s *Screen) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".clients.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clients, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error loading clients: %s", err)

		return err
	}

	s.criteria = listfilter.Criteria{Status: listfilter.All}
	s.view.Replace(clients)
	s.view.SetStatus("Loaded %d clients", s.view.Count())

	return nil
}

func (s *Screen) Filter(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".clients.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	clients, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error filtering clients: %s", err)

		return err
	}

	now := timezone.Now()

	s.view.Replace(listfilter.Apply(clients, func(c model.Client) bool {
		return s.criteria.MatchesText(c.FullName(), c.Email, c.Phone, c.LicenseNumber) &&
			s.criteria.MatchesStatus(string(c.LicenseStatusAt(now)))
	}))

	if s.criteria.HasSearch() {
		s.view.SetStatus("Found %d clients matching '%s'", s.view.Count(), s.criteria.Search)
	} else {
		s.view.SetStatus("Showing %d clients", s.view.Count())
	}

	return nil
}

func (s *Screen) SetSearch(ctx context.Context, text string) error {
	s.criteria.Search = text

	return s.Filter(ctx)
}

func validLicenseFilter(status string) error {
	switch model.LicenseStatus(status) {
	case "", listfilter.All, model.LicenseValid, model.LicenseExpiringSoon, model.LicenseExpired:
		return nil
	default:
		return failure.Validation("unknown licence status " + status) // nolint:wrapcheck
	}
}

func (s *Screen) SetLicenseFilter(ctx context.Context, status string) error {
	if err := validLicenseFilter(status); err != nil {
		return err
	}

	s.criteria.Status = status

	return s.Filter(ctx)
}

// SetCriteria applies search and licence status together; dates do not apply.
func (s *Screen) SetCriteria(ctx context.Context, criteria listfilter.Criteria) error {
	if err := validLicenseFilter(criteria.Status); err != nil {
		return err
	}

	s.criteria = listfilter.Criteria{Search: criteria.Search, Status: criteria.Status}

	return s.Filter(ctx)
}

func (s *Screen) Visible() []model.Client {
	return s.view.Visible()
}

func (s *Screen) StatusMessage() string {
	return s.view.Status()
}

func (s *Screen) Select(id int64) bool {
	return s.view.Select(id)
}

func (s *Screen) Selected() (model.Client, bool) {
	return s.view.Selected()
}

func (s *Screen) ClientCount() int {
	return s.view.Count()
}

func (s *Screen) countLicense(status model.LicenseStatus) int {
	now := timezone.Now()

	return s.view.CountWhere(func(c model.Client) bool { return c.LicenseStatusAt(now) == status })
}

func (s *Screen) ExpiredLicenses() int {
	return s.countLicense(model.LicenseExpired)
}

func (s *Screen) ExpiringSoon() int {
	return s.countLicense(model.LicenseExpiringSoon)
}

func (s *Screen) Add(ctx context.Context, req dto.AddClientRequest) (int64, error) {
	id, err := s.svc.Add(s.context(ctx), req)
	if err != nil {
		s.view.SetStatus("Error saving client: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return id, err
	}

	s.view.SetStatus("Client #%d added", id)

	return id, nil
}

func (s *Screen) Update(ctx context.Context, req dto.UpdateClientRequest) error {
	if err := s.svc.Update(s.context(ctx), req); err != nil {
		s.view.SetStatus("Error saving client: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("Client #%d updated", req.ID)

	return nil
}

func (s *Screen) Import(ctx context.Context, reqs []dto.AddClientRequest) (int, error) {
	count, err := s.svc.Import(s.context(ctx), reqs)
	if err != nil {
		s.view.SetStatus("Error importing clients: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return count, err
	}

	s.view.SetStatus("Imported %d clients", count)

	return count, nil
}
