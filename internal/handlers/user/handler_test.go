package user_test

import (
	"bytes"
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	userMocks "carrental/internal/domains/user/mocks"
	"carrental/internal/domains/user/model"
	"carrental/internal/domains/user/model/dto"
	exportMocks "carrental/internal/export/mocks"
	"carrental/internal/handlers/user"
	"carrental/shared/failure"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

func accounts() []model.User {
	return []model.User{
		{ID: 1, Username: "admin", Email: "admin@rental.local", Role: model.RoleAdmin, IsActive: true},
		{ID: 2, Username: "maria", Email: "maria@rental.local", Role: model.RoleManager, IsActive: true},
		{ID: 3, Username: "tom", Email: "tom@example.com", Role: model.RoleStaff},
	}
}

type fixture struct {
	svc      *userMocks.MockUserService
	exporter *exportMocks.MockExporter
	out      *bytes.Buffer
	app      *cli.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		svc:      userMocks.NewMockUserService(ctrl),
		exporter: exportMocks.NewMockExporter(ctrl),
		out:      &bytes.Buffer{},
	}

	h := user.New(f.svc, f.exporter, mocks.NewOtel())
	f.app = &cli.App{Name: "carrental", Commands: h.Commands(), Writer: f.out}

	return f
}

func (f *fixture) run(args ...string) error {
	ctx := session.WithSession(context.Background(), session.Session{TokenID: "t", UserID: 1, Username: "admin", Role: session.RoleAdmin})

	return f.app.RunContext(ctx, append([]string{"carrental"}, args...))
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupMock func(f *fixture)
		want      []string
		wantErr   bool
	}{
		{
			name: "managers",
			args: []string{"users", "-status", model.RoleManager},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)
			},
			want: []string{"maria", "Total Users: 1", "Loaded 1 users"},
		},
		{
			name: "search and yaml export",
			args: []string{"users", "-search", "rental.local", "-out", "staff.yaml"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)
				f.exporter.EXPECT().Users(gomock.Any(), "staff.yaml", gomock.Len(2)).Return("exports/staff.yaml", nil)
			},
			want: []string{"Found 2 users matching 'rental.local'", "Exported 2 users to exports/staff.yaml"},
		},
		{
			name:      "unknown role",
			args:      []string{"users", "-status", "Owner"},
			setupMock: func(*fixture) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.run(tt.args...)

			if tt.wantErr {
				assert.True(t, failure.IsCode(err, failure.CodeValidation))

				return
			}

			assert.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, f.out.String(), want)
			}
		})
	}
}

func TestHandler_Add(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Add(gomock.Any(), dto.AddUserRequest{
		Username: "lena", Password: "secret99", Email: "lena@rental.local", Role: model.RoleStaff,
	}).Return(int64(4), nil)
	f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)

	assert.NoError(t, f.run("users", "add", "-username", "lena", "-password", "secret99", "-email", "lena@rental.local"))
	assert.Contains(t, f.out.String(), "User 'lena' added")
}

func TestHandler_Update(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Get(gomock.Any(), int64(3)).Return(accounts()[2], nil)
	f.svc.EXPECT().Update(gomock.Any(), dto.UpdateUserRequest{
		ID: 3, Email: "tom@example.com", Role: model.RoleManager, IsActive: true,
	}).Return(nil)
	f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)

	assert.NoError(t, f.run("users", "update", "-id", "3", "-role", model.RoleManager, "-active"))
	assert.Contains(t, f.out.String(), "User #3 updated")
}

func TestHandler_Toggle(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(f *fixture)
		want      string
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name: "activates an inactive account",
			id:   "3",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil).Times(2)
				f.svc.EXPECT().SetActive(gomock.Any(), int64(3), true).Return(nil)
			},
			want: "User 'tom' is now Active",
		},
		{
			name: "own account",
			id:   "1",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)
				f.svc.EXPECT().SetActive(gomock.Any(), int64(1), false).Return(failure.Conflict("you cannot deactivate your own account"))
			},
			wantErr:  true,
			wantCode: failure.CodeConflict,
		},
		{
			name: "unknown account",
			id:   "9",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(accounts(), nil)
			},
			wantErr:  true,
			wantCode: failure.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.run("users", "toggle", "-id", tt.id)

			if tt.wantErr {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Contains(t, f.out.String(), tt.want)
		})
	}
}
