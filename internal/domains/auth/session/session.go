package session

import (
	userModel "carrental/internal/domains/user/model"
	"carrental/shared/constant"
	"carrental/shared/failure"
	"context"
	"fmt"
	"time"
)

const (
	RoleAdmin   = userModel.RoleAdmin
	RoleManager = userModel.RoleManager
	RoleStaff   = userModel.RoleStaff

	systemActor = "system"
)

// Session is the logged-in operator. It is created by login, carried explicitly
// by every screen and ended by logout.
type Session struct {
	TokenID   string    `json:"token_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Valid(now time.Time) bool {
	return s.TokenID != "" && s.UserID != 0 && now.Before(s.ExpiresAt)
}

// Welcome is the dashboard greeting.
func (s Session) Welcome() string {
	return fmt.Sprintf("Welcome, %s (%s)", s.Username, s.Role)
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, constant.ContextKeySession, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(constant.ContextKeySession).(Session)

	return s, ok
}

// Actor names the operator behind ctx for audit lines.
func Actor(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok && s.Username != "" {
		return s.Username
	}

	return systemActor
}

// Require returns the session carried by ctx or ErrNotLoggedIn.
func Require(ctx context.Context) (Session, error) {
	s, ok := FromContext(ctx)
	if !ok || s.UserID == 0 {
		return Session{}, failure.ErrNotLoggedIn
	}

	return s, nil
}
