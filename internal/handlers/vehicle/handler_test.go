package vehicle_test

import (
	"bytes"
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	vehicleMocks "carrental/internal/domains/vehicle/mocks"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/domains/vehicle/model/dto"
	exportMocks "carrental/internal/export/mocks"
	"carrental/internal/handlers/vehicle"
	"carrental/shared/failure"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

var operator = session.Session{TokenID: "t", UserID: 1, Username: "admin", Role: session.RoleAdmin}

func fleet() []model.Vehicle {
	return []model.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Corolla", Year: 2021, LicensePlate: "AB-123", VehicleType: model.TypeEconomy, DailyRate: decimal.NewFromInt(40), IsAvailable: true},
		{ID: 2, Make: "BMW", Model: "X5", Year: 2022, LicensePlate: "CD-456", VehicleType: model.TypeSUV, DailyRate: decimal.NewFromInt(120)},
	}
}

type fixture struct {
	svc      *vehicleMocks.MockVehicleService
	exporter *exportMocks.MockExporter
	out      *bytes.Buffer
	app      *cli.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		svc:      vehicleMocks.NewMockVehicleService(ctrl),
		exporter: exportMocks.NewMockExporter(ctrl),
		out:      &bytes.Buffer{},
	}

	h := vehicle.New(f.svc, f.exporter, mocks.NewOtel())
	f.app = &cli.App{Name: "carrental", Commands: h.Commands(), Writer: f.out}

	return f
}

func (f *fixture) run(ctx context.Context, args ...string) error {
	return f.app.RunContext(ctx, append([]string{"carrental"}, args...))
}

func signedIn() context.Context {
	return session.WithSession(context.Background(), operator)
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		args      []string
		setupMock func(f *fixture)
		want      []string
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name: "available only",
			ctx:  signedIn(),
			args: []string{"vehicles", "-status", "Available"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)
			},
			want: []string{"AB-123", "Total Vehicles:", "Loaded 1 vehicles"},
		},
		{
			name: "export visible rows",
			ctx:  signedIn(),
			args: []string{"vehicles", "-search", "bmw", "-out", "fleet.xlsx"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)
				f.exporter.EXPECT().Vehicles(gomock.Any(), "fleet.xlsx", gomock.Len(1)).Return("exports/fleet.xlsx", nil)
			},
			want: []string{"CD-456", "Found 1 vehicles matching 'bmw'", "Exported 1 vehicles to exports/fleet.xlsx"},
		},
		{
			name:      "unknown availability",
			ctx:       signedIn(),
			args:      []string{"vehicles", "-status", "Broken"},
			setupMock: func(*fixture) {},
			wantErr:   true,
			wantCode:  failure.CodeValidation,
		},
		{
			name:      "no session",
			ctx:       context.Background(),
			args:      []string{"vehicles"},
			setupMock: func(*fixture) {},
			wantErr:   true,
			wantCode:  failure.CodeUnauthorized,
		},
		{
			name: "store failure",
			ctx:  signedIn(),
			args: []string{"vehicles"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(nil, failure.DataAccess(errors.New("connection refused")))
			},
			wantErr:  true,
			wantCode: failure.CodeDataAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.run(tt.ctx, tt.args...)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

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

	f.svc.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.AddVehicleRequest) (int64, error) {
		assert.Equal(t, "Honda", req.Make)
		assert.Equal(t, 2020, req.Year)
		assert.True(t, decimal.RequireFromString("55.5").Equal(req.DailyRate))
		assert.Equal(t, model.TypeStandard, req.VehicleType)
		assert.True(t, req.IsAvailable)

		return 3, nil
	})
	f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

	err := f.run(signedIn(), "vehicles", "add", "-make", "Honda", "-model", "Civic", "-year", "2020", "-plate", "GH-1", "-rate", "55.5")

	assert.NoError(t, err)
	assert.Contains(t, f.out.String(), "Vehicle #3 added")
}

func TestHandler_Update(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Get(gomock.Any(), int64(2)).Return(fleet()[1], nil)
	f.svc.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req dto.UpdateVehicleRequest) error {
		assert.Equal(t, int64(2), req.ID)
		assert.Equal(t, "BMW", req.Make)
		assert.Equal(t, 2022, req.Year)
		assert.False(t, req.IsAvailable)
		assert.True(t, decimal.NewFromInt(99).Equal(req.DailyRate))

		return nil
	})
	f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

	assert.NoError(t, f.run(signedIn(), "vehicles", "update", "-id", "2", "-rate", "99"))
	assert.Contains(t, f.out.String(), "Vehicle #2 updated")
}

func TestHandler_Available(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().ListAvailable(gomock.Any()).Return(fleet()[:1], nil)

	err := f.run(signedIn(), "vehicles", "available")

	assert.NoError(t, err)
	assert.Contains(t, f.out.String(), "Toyota Corolla (AB-123)")
	assert.Contains(t, f.out.String(), "1 vehicles available")
	assert.NotContains(t, f.out.String(), "CD-456")

	f.out.Reset()

	err = f.run(context.Background(), "vehicles", "available")

	assert.Equal(t, failure.CodeUnauthorized, failure.GetCode(err))
}

func TestHandler_Toggle(t *testing.T) {
	t.Run("flips availability", func(t *testing.T) {
		f := newFixture(t)

		toggled := fleet()[1]
		toggled.IsAvailable = true

		f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil).Times(2)
		f.svc.EXPECT().ToggleAvailability(gomock.Any(), int64(2)).Return(toggled, nil)

		assert.NoError(t, f.run(signedIn(), "vehicles", "toggle", "-id", "2"))
		assert.Contains(t, f.out.String(), "Vehicle availability updated to: Available")
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		f := newFixture(t)
		f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

		err := f.run(signedIn(), "vehicles", "toggle", "-id", "9")
		assert.True(t, failure.IsCode(err, failure.CodeNotFound))
	})
}

func TestHandler_Import(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fleet.xlsx")

	file := excelize.NewFile()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]any{"Make", "Model", "Year", "License Plate", "Color", "Daily Rate", "Available", "Type"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]any{"Kia", "Rio", 2019, "KR-1", "Red", "35", "yes", "Economy"}))
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())

	f := newFixture(t)
	f.svc.EXPECT().Import(gomock.Any(), gomock.Len(1)).Return(1, nil)
	f.svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

	assert.NoError(t, f.run(signedIn(), "vehicles", "import", "-file", path))
	assert.Contains(t, f.out.String(), "Imported 1 vehicles")
}
