package cli_test

import (
	"bytes"
	"carrental/config"
	"carrental/infras/otel/mocks"
	authMocks "carrental/internal/domains/auth/mocks"
	"carrental/internal/domains/auth/model/dto"
	"carrental/internal/domains/auth/session"
	"carrental/internal/handlers/auth"
	"carrental/permissions"
	"carrental/transport/cli"
	"carrental/transport/cli/middleware"
	"carrental/transport/cli/router"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCLI_Run(t *testing.T) {
	otel := mocks.NewOtel()
	cfg := &config.Config{}
	cfg.App.Name = "carrental"

	authSvc := authMocks.NewMockAuth(gomock.NewController(t))
	authSvc.EXPECT().
		Login(gomock.Any(), dto.LoginRequest{Username: "admin", Password: "admin123"}).
		Return(session.Session{UserID: 1, Username: "admin", Role: session.RoleAdmin}, nil)

	r := router.New(
		router.DomainHandlers{Auth: auth.New(authSvc, otel)},
		middleware.NewAppMiddleware(otel, cfg),
		middleware.NewAuthMiddleware(authSvc, permissions.Get()),
	)

	out := &bytes.Buffer{}
	app := cli.New(cfg, r, otel)
	app.Writer = out

	err := app.Run(context.Background(), []string{"carrental", "login", "-username", "admin", "-password", "admin123"})

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Welcome, admin (Admin)")
}
