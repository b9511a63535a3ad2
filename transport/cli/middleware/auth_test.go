package middleware_test

import (
	"carrental/internal/domains/auth/mocks"
	"carrental/internal/domains/auth/session"
	"carrental/permissions"
	"carrental/shared/failure"
	"carrental/transport/cli/middleware"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

func newContext() *cli.Context {
	return cli.NewContext(cli.NewApp(), flag.NewFlagSet("test", flag.ContinueOnError), nil)
}

func TestAuthMiddleware_Authorize(t *testing.T) {
	staff := session.Session{TokenID: "t1", UserID: 2, Username: "clerk", Role: session.RoleStaff}
	admin := session.Session{TokenID: "t2", UserID: 1, Username: "admin", Role: session.RoleAdmin}

	tests := []struct {
		name      string
		path      string
		setupMock func(auth *mocks.MockAuth)
		wantRun   bool
		wantUser  string
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name:      "login skips the session check",
			path:      "login",
			setupMock: func(*mocks.MockAuth) {},
			wantRun:   true,
		},
		{
			name: "signed-in staff lists vehicles",
			path: "vehicles",
			setupMock: func(auth *mocks.MockAuth) {
				auth.EXPECT().Current(gomock.Any()).Return(staff, nil)
			},
			wantRun:  true,
			wantUser: "clerk",
		},
		{
			name: "sub-command inherits its parent entry",
			path: "rentals complete",
			setupMock: func(auth *mocks.MockAuth) {
				auth.EXPECT().Current(gomock.Any()).Return(staff, nil)
			},
			wantRun:  true,
			wantUser: "clerk",
		},
		{
			name: "staff cannot import vehicles",
			path: "vehicles import",
			setupMock: func(auth *mocks.MockAuth) {
				auth.EXPECT().Current(gomock.Any()).Return(staff, nil)
			},
			wantErr:  true,
			wantCode: failure.CodeUnauthorized,
		},
		{
			name: "admin manages users",
			path: "users toggle",
			setupMock: func(auth *mocks.MockAuth) {
				auth.EXPECT().Current(gomock.Any()).Return(admin, nil)
			},
			wantRun:  true,
			wantUser: "admin",
		},
		{
			name: "no session",
			path: "dashboard",
			setupMock: func(auth *mocks.MockAuth) {
				auth.EXPECT().Current(gomock.Any()).Return(session.Session{}, failure.ErrNotLoggedIn)
			},
			wantErr:  true,
			wantCode: failure.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockAuth(ctrl)
			tt.setupMock(auth)

			m := middleware.NewAuthMiddleware(auth, permissions.Get())

			ran := false
			user := ""

			action := m.Authorize(tt.path, func(c *cli.Context) error {
				ran = true
				if sess, ok := session.FromContext(c.Context); ok {
					user = sess.Username
				}

				return nil
			})

			c := newContext()
			c.Context = context.Background()

			err := action(c)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.wantRun, ran)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestAuthMiddleware_Authorize_NoPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := middleware.NewAuthMiddleware(mocks.NewMockAuth(ctrl), nil)

	ran := false
	err := m.Authorize("users", func(*cli.Context) error {
		ran = true

		return nil
	})(newContext())

	assert.NoError(t, err)
	assert.True(t, ran)
}
