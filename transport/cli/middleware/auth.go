package middleware

import (
	"carrental/internal/domains/auth/service"
	"carrental/internal/domains/auth/session"
	"carrental/permissions"
	"carrental/shared/failure"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

type AuthMiddleware interface {
	Authorize(path string, next cli.ActionFunc) cli.ActionFunc
}

type authMiddleware struct {
	auth        service.Auth
	permissions *permissions.PermissionData
}

func NewAuthMiddleware(auth service.Auth, permissions *permissions.PermissionData) AuthMiddleware {
	return &authMiddleware{
		auth:        auth,
		permissions: permissions,
	}
}

// Authorize resumes the operator session and checks the command's roles before
// running next. The session travels to the handler in c.Context.
func (m *authMiddleware) Authorize(path string, next cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if m.permissions == nil || m.permissions.Skip {
			return next(c)
		}

		permission := m.permissions.FindPermissions(path)
		if permission.Skip {
			return next(c)
		}

		sess, err := m.auth.Current(c.Context)
		if err != nil {
			return err
		}

		if !permission.Allows(sess.Role) {
			log.Warn().Str("username", sess.Username).Str("role", sess.Role).Str("command", path).Msg("command denied")

			return failure.Unauthorized(fmt.Sprintf("%s role cannot run %q", sess.Role, path)) // nolint:wrapcheck
		}

		c.Context = session.WithSession(c.Context, sess)

		return next(c)
	}
}
