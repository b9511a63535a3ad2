package users

import (
	"carrental/infras/otel"
	"carrental/internal/domains/auth/session"
	"carrental/internal/domains/user/model"
	"carrental/internal/domains/user/model/dto"
	"carrental/internal/domains/user/service"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"context"
	"slices"
)

type Screen struct {
	sess     session.Session
	svc      service.User
	otel     otel.Otel
	criteria listfilter.Criteria
	view     *listfilter.View[model.User]
}

func New(sess session.Session, svc service.User, otel otel.Otel) *Screen {
	return &Screen{
		sess:     sess,
		svc:      svc,
		otel:     otel,
		criteria: listfilter.Criteria{Status: listfilter.All},
		view:     listfilter.NewView(func(u model.User) int64 { return u.ID }),
	}
}

func (s *Screen) context(ctx context.Context) context.Context {
	return session.WithSession(ctx, s.sess)
}

// matches uses the role as the status filter.
func (s *Screen) matches(u model.User) bool {
	return s.criteria.MatchesText(u.Username, u.Email, u.Role) && s.criteria.MatchesStatus(u.Role)
}

// Load resets the filters and shows every user.
func (s *Screen) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".users.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	users, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error loading users: %s", err)

		return err
	}

	s.criteria = listfilter.Criteria{Status: listfilter.All}
	s.view.Replace(users)
	s.view.SetStatus("Loaded %d users", s.view.Count())

	return nil
}

func (s *Screen) Filter(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(s.context(ctx), constant.OtelScreenScopeName, constant.OtelScreenScopeName+".users.Filter")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	users, err := s.svc.List(ctx)
	if err != nil {
		s.view.SetStatus("Error filtering users: %s", err)

		return err
	}

	s.view.Replace(listfilter.Apply(users, s.matches))

	if s.criteria.HasSearch() {
		s.view.SetStatus("Found %d users matching '%s'", s.view.Count(), s.criteria.Search)
	} else {
		s.view.SetStatus("Loaded %d users", s.view.Count())
	}

	return nil
}

func (s *Screen) SetSearch(ctx context.Context, text string) error {
	s.criteria.Search = text

	return s.Filter(ctx)
}

func validRole(role string) error {
	if role != "" && role != listfilter.All && !slices.Contains(model.Roles, role) {
		return failure.Validation("unknown role " + role) // nolint:wrapcheck
	}

	return nil
}

func (s *Screen) SetRole(ctx context.Context, role string) error {
	if err := validRole(role); err != nil {
		return err
	}

	s.criteria.Status = role

	return s.Filter(ctx)
}

// SetCriteria filters by search text and role at once.
func (s *Screen) SetCriteria(ctx context.Context, criteria listfilter.Criteria) error {
	if err := validRole(criteria.Status); err != nil {
		return err
	}

	s.criteria = listfilter.Criteria{Search: criteria.Search, Status: criteria.Status}

	return s.Filter(ctx)
}

func (s *Screen) Visible() []model.User {
	return s.view.Visible()
}

func (s *Screen) StatusMessage() string {
	return s.view.Status()
}

func (s *Screen) Select(id int64) bool {
	return s.view.Select(id)
}

func (s *Screen) Selected() (model.User, bool) {
	return s.view.Selected()
}

func (s *Screen) ActiveCount() int {
	return s.view.CountWhere(func(u model.User) bool { return u.IsActive })
}

func (s *Screen) Add(ctx context.Context, req dto.AddUserRequest) (int64, error) {
	id, err := s.svc.Add(s.context(ctx), req)
	if err != nil {
		s.view.SetStatus("Error adding user: %s", err)

		return 0, err
	}

	if err = s.Filter(ctx); err != nil {
		return id, err
	}

	s.view.SetStatus("User '%s' added", req.Username)

	return id, nil
}

func (s *Screen) Update(ctx context.Context, req dto.UpdateUserRequest) error {
	if err := s.svc.Update(s.context(ctx), req); err != nil {
		s.view.SetStatus("Error updating user: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	s.view.SetStatus("User #%d updated", req.ID)

	return nil
}

// ToggleSelected flips the active flag of the selected account.
func (s *Screen) ToggleSelected(ctx context.Context) error {
	selected, ok := s.view.Selected()
	if !ok {
		return failure.Validation("Please select a user") // nolint:wrapcheck
	}

	if err := s.svc.SetActive(s.context(ctx), selected.ID, !selected.IsActive); err != nil {
		s.view.SetStatus("Error updating user: %s", err)

		return err
	}

	if err := s.Filter(ctx); err != nil {
		return err
	}

	selected.IsActive = !selected.IsActive
	s.view.SetStatus("User '%s' is now %s", selected.Username, selected.StatusLabel())

	return nil
}
