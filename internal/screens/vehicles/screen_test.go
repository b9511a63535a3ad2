package vehicles_test

import (
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	vehicleMocks "carrental/internal/domains/vehicle/mocks"
	"carrental/internal/domains/vehicle/model"
	"carrental/internal/screens/vehicles"
	"carrental/shared/listfilter"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func fleet() []model.Vehicle {
	return []model.Vehicle{
		{ID: 1, Make: "Toyota", Model: "Corolla", LicensePlate: "AB-123", VehicleType: model.TypeEconomy, DailyRate: decimal.NewFromInt(40), IsAvailable: true},
		{ID: 2, Make: "BMW", Model: "X5", LicensePlate: "CD-456", VehicleType: model.TypeSUV, DailyRate: decimal.NewFromInt(120), IsAvailable: false},
		{ID: 3, Make: "Toyota", Model: "Camry", LicensePlate: "EF-789", VehicleType: model.TypeStandard, DailyRate: decimal.NewFromInt(65), IsAvailable: true},
	}
}

func newScreen(t *testing.T) (*vehicles.Screen, *vehicleMocks.MockVehicleService) {
	t.Helper()

	svc := vehicleMocks.NewMockVehicleService(gomock.NewController(t))

	return vehicles.New(session.Session{Username: "admin"}, svc, mocks.NewOtel()), svc
}

func TestScreen_Load(t *testing.T) {
	screen, svc := newScreen(t)

	svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

	assert.NoError(t, screen.Load(context.Background()))
	assert.Equal(t, "Loaded 3 vehicles", screen.StatusMessage())
	assert.Equal(t, 2, screen.AvailableCount())
	assert.True(t, decimal.NewFromInt(75).Equal(screen.AverageDailyRate()))
}

func TestScreen_LoadFailureKeepsRows(t *testing.T) {
	screen, svc := newScreen(t)

	svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)
	assert.NoError(t, screen.Load(context.Background()))

	svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	assert.Error(t, screen.Load(context.Background()))
	assert.Len(t, screen.Visible(), 3)
	assert.Equal(t, "Error loading vehicles: connection refused", screen.StatusMessage())
}

func TestScreen_SetSearch(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		wantIDs    []int64
		wantStatus string
	}{
		{name: "by make", search: "toyota", wantIDs: []int64{1, 3}, wantStatus: "Found 2 vehicles matching 'toyota'"},
		{name: "by plate", search: "cd-4", wantIDs: []int64{2}, wantStatus: "Found 1 vehicles matching 'cd-4'"},
		{name: "by type", search: "suv", wantIDs: []int64{2}, wantStatus: "Found 1 vehicles matching 'suv'"},
		{name: "empty search shows everything", search: "", wantIDs: []int64{1, 2, 3}, wantStatus: "Loaded 3 vehicles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, svc := newScreen(t)
			svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

			assert.NoError(t, screen.SetSearch(context.Background(), tt.search))

			var ids []int64
			for _, v := range screen.Visible() {
				ids = append(ids, v.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantStatus, screen.StatusMessage())
		})
	}
}

func TestScreen_SetAvailability(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(fleet(), nil)

	assert.NoError(t, screen.SetAvailability(context.Background(), vehicles.AvailabilityUnavailable))
	assert.Len(t, screen.Visible(), 1)

	assert.Error(t, screen.SetAvailability(context.Background(), "Broken"))
}

func TestScreen_SetCriteria(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(fleet(), nil).Times(2)

	criteria := listfilter.Criteria{Search: "toyota", Status: vehicles.AvailabilityAvailable}

	assert.NoError(t, screen.SetCriteria(context.Background(), criteria))
	first := screen.Visible()

	assert.NoError(t, screen.SetCriteria(context.Background(), criteria))
	assert.Equal(t, first, screen.Visible())
	assert.Len(t, first, 2)
	assert.Equal(t, "Found 2 vehicles matching 'toyota'", screen.StatusMessage())
}

func TestScreen_ToggleSelected(t *testing.T) {
	screen, svc := newScreen(t)

	assert.Error(t, screen.ToggleSelected(context.Background()), "nothing selected")

	svc.EXPECT().List(gomock.Any()).Return(fleet(), nil).Times(2)
	assert.NoError(t, screen.Load(context.Background()))
	assert.True(t, screen.Select(1))

	toggled := fleet()[0]
	toggled.IsAvailable = false
	svc.EXPECT().
		ToggleAvailability(gomock.Any(), int64(1)).
		DoAndReturn(func(ctx context.Context, _ int64) (model.Vehicle, error) {
			assert.Equal(t, "admin", session.Actor(ctx))

			return toggled, nil
		})

	assert.NoError(t, screen.ToggleSelected(context.Background()))
	assert.Equal(t, "Vehicle availability updated to: Not Available", screen.StatusMessage())
}
