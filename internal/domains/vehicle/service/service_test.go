package service_test

import (
	"carrental/config"
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	vehicleMocks "carrental/internal/domains/vehicle/mocks"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/model/dto"
	"carrental/internal/domains/vehicle/service"
	"carrental/shared/failure"
	"carrental/shared/logger"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (service.Vehicle, *vehicleMocks.MockVehicle) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := vehicleMocks.NewMockVehicle(ctrl)
	audit := logger.NewAudit(t.TempDir(), time.Now)

	return service.New(mockRepo, &config.Config{}, audit, mocks.NewOtel()), mockRepo
}

func addRequest() dto.AddVehicleRequest {
	return dto.AddVehicleRequest{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		LicensePlate: "AB-123",
		DailyRate:    decimal.NewFromInt(45),
		VehicleType:  model.TypeEconomy,
		IsAvailable:  true,
	}
}

func adminContext() context.Context {
	return session.WithSession(context.Background(), session.Session{Username: "admin", Role: session.RoleAdmin})
}

func TestVehicleService_Add(t *testing.T) {
	tests := []struct {
		name      string
		req       func() dto.AddVehicleRequest
		setupMock func(repo *vehicleMocks.MockVehicle)
		wantID    int64
		wantErr   bool
		wantCode  failure.Code
	}{
		{
			name: "successful add echoes the id",
			req:  addRequest,
			setupMock: func(repo *vehicleMocks.MockVehicle) {
				repo.EXPECT().
					Add(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, v model.Vehicle) (int64, error) {
						assert.Equal(t, "AB-123", v.LicensePlate)
						assert.False(t, v.CreatedAt.IsZero())

						return 12, nil
					})
			},
			wantID: 12,
		},
		{
			name: "validation failure never writes",
			req: func() dto.AddVehicleRequest {
				req := addRequest()
				req.VehicleType = "Truck"

				return req
			},
			setupMock: func(*vehicleMocks.MockVehicle) {},
			wantErr:   true,
			wantCode:  failure.CodeValidation,
		},
		{
			name: "repository error",
			req:  addRequest,
			setupMock: func(repo *vehicleMocks.MockVehicle) {
				repo.EXPECT().Add(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))
			},
			wantErr:  true,
			wantCode: failure.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			id, err := svc.Add(adminContext(), tt.req())

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

func TestVehicleService_Get(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(model.Vehicle{}, nil)

	_, err := svc.Get(context.Background(), 3)

	assert.True(t, failure.IsCode(err, failure.CodeNotFound))
}

func TestVehicleService_ToggleAvailability(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *vehicleMocks.MockVehicle)
		wantLabel string
		wantErr   bool
	}{
		{
			name: "available becomes not available",
			setupMock: func(repo *vehicleMocks.MockVehicle) {
				repo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(model.Vehicle{ID: 4, IsAvailable: true}, nil)
				repo.EXPECT().UpdateAvailability(gomock.Any(), int64(4), false).Return(nil)
			},
			wantLabel: "Not Available",
		},
		{
			name: "not available becomes available",
			setupMock: func(repo *vehicleMocks.MockVehicle) {
				repo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(model.Vehicle{ID: 4}, nil)
				repo.EXPECT().UpdateAvailability(gomock.Any(), int64(4), true).Return(nil)
			},
			wantLabel: "Available",
		},
		{
			name: "write failure",
			setupMock: func(repo *vehicleMocks.MockVehicle) {
				repo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(model.Vehicle{ID: 4}, nil)
				repo.EXPECT().UpdateAvailability(gomock.Any(), int64(4), true).Return(errors.New("deadlock"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			vehicle, err := svc.ToggleAvailability(adminContext(), 4)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantLabel, vehicle.AvailabilityLabel())
			}
		})
	}
}

func TestVehicleService_Update(t *testing.T) {
	svc, repo := newService(t)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(model.Vehicle{ID: 5, CreatedAt: created}, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, v model.Vehicle) error {
			assert.Equal(t, int64(5), v.ID)
			assert.Equal(t, created, v.CreatedAt)

			return nil
		})

	err := svc.Update(adminContext(), dto.UpdateVehicleRequest{ID: 5, AddVehicleRequest: addRequest()})

	assert.NoError(t, err)
}

func TestVehicleService_Import(t *testing.T) {
	t.Run("stores every valid row", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().
			AddBulk(gomock.Any(), gomock.Len(2)).
			Return(nil)

		count, err := svc.Import(adminContext(), []dto.AddVehicleRequest{addRequest(), addRequest()})

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("an invalid row aborts the import", func(t *testing.T) {
		svc, _ := newService(t)

		bad := addRequest()
		bad.Make = ""

		_, err := svc.Import(adminContext(), []dto.AddVehicleRequest{addRequest(), bad})

		assert.True(t, failure.IsCode(err, failure.CodeValidation))
		assert.Contains(t, err.Error(), "row 3")
	})
}

func TestVehicleService_List(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err := svc.List(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}

func TestVehicleService_ListAvailable(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().ListAvailable(gomock.Any()).Return([]model.Vehicle{{ID: 3, IsAvailable: true}}, nil)

	vehicles, err := svc.ListAvailable(context.Background())

	assert.NoError(t, err)
	assert.Len(t, vehicles, 1)

	repo.EXPECT().ListAvailable(gomock.Any()).Return(nil, errors.New("connection refused"))

	_, err = svc.ListAvailable(context.Background())

	assert.ErrorContains(t, err, "connection refused")
}
