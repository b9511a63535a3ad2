package service_test

import (
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	userMocks "carrental/internal/domains/user/mocks"
	"carrental/internal/domains/user/model"
	"carrental/internal/domains/user/model/dto"
	"carrental/internal/domains/user/service"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"carrental/shared/password"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.User, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := userMocks.NewMockUser(ctrl)

	return service.New(repo, logger.NewAudit(t.TempDir(), time.Now), mocks.NewOtel()), repo
}

func TestUserService_Add(t *testing.T) {
	valid := dto.AddUserRequest{Username: "jdoe", Password: "secret1", Email: "j@example.com", Role: model.RoleStaff}

	tests := []struct {
		name      string
		req       dto.AddUserRequest
		setupMock func(repo *userMocks.MockUser)
		wantID    int64
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name: "stores a bcrypt hash, never the password",
			req:  valid,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().ExistUsername(gomock.Any(), "jdoe").Return(false, nil)
				repo.EXPECT().
					Add(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u model.User) (int64, error) {
						assert.NotEqual(t, "secret1", u.PasswordHash)
						assert.NoError(t, password.Verify("secret1", u.PasswordHash))
						assert.True(t, u.IsActive)

						return 6, nil
					})
			},
			wantID: 6,
		},
		{
			name: "duplicate username",
			req:  valid,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().ExistUsername(gomock.Any(), "jdoe").Return(true, nil)
			},
			wantErr:  true,
			wantCode: failure.CodeConflict,
		},
		{
			name:      "invalid request",
			req:       dto.AddUserRequest{Username: "jdoe"},
			setupMock: func(*userMocks.MockUser) {},
			wantErr:   true,
			wantCode:  failure.CodeValidation,
		},
		{
			name: "insert failure",
			req:  valid,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().ExistUsername(gomock.Any(), "jdoe").Return(false, nil)
				repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("constraint"))
			},
			wantErr:  true,
			wantCode: failure.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			id, err := svc.Add(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestUserService_Update_KeepsHashWithoutPassword(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByID(gomock.Any(), int64(2)).
		Return(model.User{ID: 2, Username: "jdoe", PasswordHash: "stored", Role: model.RoleStaff}, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u model.User) error {
			assert.Equal(t, "stored", u.PasswordHash)
			assert.Equal(t, model.RoleManager, u.Role)

			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateUserRequest{
		ID: 2, Email: "j@example.com", Role: model.RoleManager, IsActive: true,
	})

	assert.NoError(t, err)
}

func TestUserService_SetActive(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		active    bool
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name:   "deactivate another account",
			ctx:    session.WithSession(context.Background(), session.Session{UserID: 1, Username: "admin"}),
			active: false,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(model.User{ID: 3, Username: "jdoe"}, nil)
				repo.EXPECT().SetActive(gomock.Any(), int64(3), false).Return(nil)
			},
		},
		{
			name:   "missing account",
			ctx:    context.Background(),
			active: true,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(model.User{}, nil)
			},
			wantErr: true,
		},
		{
			name:      "cannot deactivate yourself",
			ctx:       session.WithSession(context.Background(), session.Session{UserID: 3, Username: "jdoe"}),
			active:    false,
			setupMock: func(*userMocks.MockUser) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			err := svc.SetActive(tt.ctx, 3, tt.active)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
