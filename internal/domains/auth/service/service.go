package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"carrental/config"
	"carrental/infras/jwt"
	"carrental/infras/otel"
	"carrental/internal/domains/auth/model/dto"
	"carrental/internal/domains/auth/session"
	userRepo "carrental/internal/domains/user/repository"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/timezone"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Auth owns the operator session lifecycle: login creates it, logout ends it and
// every other command resumes it from the token file.
type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (session.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (session.Session, error)
}

type serviceImpl struct {
	userRepo userRepo.User
	store    session.Store
	jwt      jwt.JWT
	cfg      *config.Config
	audit    logger.Recorder
	otel     otel.Otel
}

func New(
	userRepo userRepo.User,
	store session.Store,
	jwt jwt.JWT,
	cfg *config.Config,
	audit logger.Recorder,
	otel otel.Otel,
) Auth {
	return &serviceImpl{
		userRepo: userRepo,
		store:    store,
		jwt:      jwt,
		cfg:      cfg,
		audit:    audit,
		otel:     otel,
	}
}

func (s *serviceImpl) ttl() time.Duration {
	return time.Duration(s.cfg.Session.TTLMinutes) * time.Minute
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (sess session.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := req.TrimmedUsername()

	if req.Blank() {
		logger.UserLogin(username, false)

		return sess, failure.ErrMissingLogin
	}

	user, err := s.userRepo.Authenticate(ctx, username, req.Password)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to authenticate user")

		return sess, fmt.Errorf("failed to authenticate: %w", err)
	}

	if user.ID == 0 {
		logger.UserLogin(username, false)

		return sess, failure.ErrInvalidLogin
	}

	now := timezone.Now()

	token, claims, err := s.jwt.Generate(user.ID, user.Username, user.Role, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return sess, fmt.Errorf("failed to generate session token: %w", err)
	}

	sess = session.Session{
		TokenID:   claims.TokenID,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		LoginAt:   now,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if err = s.store.Save(ctx, sess, s.ttl()); err != nil {
		return session.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	if err = session.WriteToken(s.cfg.Session.TokenFile, token); err != nil {
		if delErr := s.store.Delete(ctx, sess.TokenID); delErr != nil {
			log.Warn().Err(delErr).Msg("failed to drop orphaned session")
		}

		return session.Session{}, err
	}

	logger.UserLogin(user.Username, true)

	if auditErr := s.audit.Record(user.Username, "login", fmt.Sprintf("user#%d", user.ID), "Login successful"); auditErr != nil {
		log.Warn().Err(auditErr).Msg("failed to write audit entry")
	}

	return sess, nil
}

// Current resumes the session named by the token file. Any broken link in the
// chain (no file, bad signature, expired, revoked, user deactivated or removed)
// means not logged in.
func (s *serviceImpl) Current(ctx context.Context) (sess session.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Current")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	token, err := session.ReadToken(s.cfg.Session.TokenFile)
	if errors.Is(err, session.ErrNoToken) {
		return sess, failure.ErrNotLoggedIn
	}

	if err != nil {
		return sess, err
	}

	claims, err := s.jwt.Validate(token)
	if err != nil {
		log.Debug().Err(err).Msg("stored session token rejected")

		return sess, failure.ErrNotLoggedIn
	}

	sess, err = s.store.Get(ctx, claims.TokenID)
	if errors.Is(err, session.ErrSessionNotFound) {
		return sess, failure.ErrNotLoggedIn
	}

	if err != nil {
		return sess, fmt.Errorf("failed to load session: %w", err)
	}

	if !sess.Valid(timezone.Now()) {
		return session.Session{}, failure.ErrNotLoggedIn
	}

	user, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to load session user: %w", err)
	}

	if user.ID == 0 || !user.IsActive {
		log.Info().Str("username", sess.Username).Msg("session of deactivated user revoked")

		if delErr := s.store.Delete(ctx, sess.TokenID); delErr != nil {
			log.Warn().Err(delErr).Msg("failed to revoke session")
		}

		return session.Session{}, failure.ErrNotLoggedIn
	}

	// role and email edits apply to open sessions
	sess.Role = user.Role
	sess.Email = user.Email

	return sess, nil
}

// Logout revokes the stored session and removes the token file. Logging out
// without a session is a no-op.
func (s *serviceImpl) Logout(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	token, err := session.ReadToken(s.cfg.Session.TokenFile)
	if errors.Is(err, session.ErrNoToken) {
		return nil
	}

	if err != nil {
		return err
	}

	if claims, valErr := s.jwt.Validate(token); valErr == nil {
		if err = s.store.Delete(ctx, claims.TokenID); err != nil {
			return fmt.Errorf("failed to revoke session: %w", err)
		}

		logger.UserActivity(claims.Username, "logout", "")

		if auditErr := s.audit.Record(claims.Username, "logout", fmt.Sprintf("user#%d", claims.UserID), ""); auditErr != nil {
			log.Warn().Err(auditErr).Msg("failed to write audit entry")
		}
	}

	return session.RemoveToken(s.cfg.Session.TokenFile)
}
