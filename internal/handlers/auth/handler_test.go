package auth_test

import (
	"bytes"
	"carrental/infras/otel/mocks"
	authMocks "carrental/internal/domains/auth/mocks"
	"carrental/internal/domains/auth/model/dto"
	"carrental/internal/domains/auth/session"
	"carrental/internal/handlers/auth"
	"carrental/shared/failure"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

func run(t *testing.T, ctx context.Context, svc *authMocks.MockAuth, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	h := auth.New(svc, mocks.NewOtel())
	app := &cli.App{Name: "carrental", Commands: h.Commands(), Writer: out}

	err := app.RunContext(ctx, append([]string{"carrental"}, args...))

	return out.String(), err
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupMock func(svc *authMocks.MockAuth)
		want      string
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name: "success",
			args: []string{"login", "-username", "admin", "-password", "admin123"},
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Login(gomock.Any(), dto.LoginRequest{Username: "admin", Password: "admin123"}).
					Return(session.Session{UserID: 1, Username: "admin", Role: session.RoleAdmin}, nil)
			},
			want: "Welcome, admin (Admin)",
		},
		{
			name: "missing credentials",
			args: []string{"login", "-username", "admin"},
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Username: "admin"}).Return(session.Session{}, failure.ErrMissingLogin)
			},
			wantErr:  true,
			wantCode: failure.CodeValidation,
		},
		{
			name: "wrong password",
			args: []string{"login", "-u", "admin", "-p", "nope"},
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(session.Session{}, failure.ErrInvalidLogin)
			},
			wantErr:  true,
			wantCode: failure.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := authMocks.NewMockAuth(gomock.NewController(t))
			tt.setupMock(svc)

			out, err := run(t, context.Background(), svc, tt.args...)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	svc := authMocks.NewMockAuth(gomock.NewController(t))
	svc.EXPECT().Logout(gomock.Any()).Return(nil)

	out, err := run(t, context.Background(), svc, "logout")

	assert.NoError(t, err)
	assert.Equal(t, "Logged out\n", out)

	svc.EXPECT().Logout(gomock.Any()).Return(errors.New("redis down"))

	_, err = run(t, context.Background(), svc, "logout")
	assert.Error(t, err)
}

func TestHandler_WhoAmI(t *testing.T) {
	svc := authMocks.NewMockAuth(gomock.NewController(t))

	sess := session.Session{
		UserID:    3,
		Username:  "sam",
		Email:     "sam@example.com",
		Role:      session.RoleStaff,
		LoginAt:   time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	out, err := run(t, session.WithSession(context.Background(), sess), svc, "whoami")

	assert.NoError(t, err)
	assert.Contains(t, out, "User:       sam")
	assert.Contains(t, out, "Role:       Staff")
	assert.Contains(t, out, "Signed In:  2024-05-01 09:30")

	_, err = run(t, context.Background(), svc, "whoami")
	assert.True(t, failure.IsCode(err, failure.CodeUnauthorized))
}
