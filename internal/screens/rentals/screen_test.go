package rentals_test

import (
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	rentalMocks "carrental/internal/domains/rental/mocks"
	"carrental/internal/domains/rental/model"
	"carrental/internal/screens/rentals"
	"carrental/shared/listfilter"
	"carrental/shared/timezone"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 10, 0, 0, 0, time.UTC)
}

func bookings() []model.Rental {
	return []model.Rental{
		{ID: 1, Status: model.StatusActive, ClientName: "Jane Doe", VehicleInfo: "Toyota Corolla (AB-123)", StartDate: day(1), TotalAmount: decimal.NewFromInt(100)},
		{ID: 2, Status: model.StatusCompleted, ClientName: "John Roe", VehicleInfo: "BMW X5 (CD-456)", StartDate: day(10), TotalAmount: decimal.NewFromInt(300)},
		{ID: 3, Status: model.StatusReserved, ClientName: "Jane Doe", VehicleInfo: "BMW X5 (CD-456)", StartDate: day(20), TotalAmount: decimal.NewFromInt(50)},
	}
}

func newScreen(t *testing.T) (*rentals.Screen, *rentalMocks.MockRentalService) {
	t.Helper()

	svc := rentalMocks.NewMockRentalService(gomock.NewController(t))

	return rentals.New(session.Session{Username: "staff"}, svc, mocks.NewOtel()), svc
}

func ids(rs []model.Rental) []int64 {
	out := []int64{}
	for _, r := range rs {
		out = append(out, r.ID)
	}

	return out
}

func TestScreen_StatusFilterScenario(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return([]model.Rental{
		{ID: 1, Status: model.StatusActive},
		{ID: 2, Status: model.StatusCompleted},
	}, nil)

	assert.NoError(t, screen.SetStatusFilter(context.Background(), model.StatusActive))
	assert.Equal(t, []int64{1}, ids(screen.Visible()))
	assert.Equal(t, 1, screen.ActiveRentalsCount())
	assert.Equal(t, "Showing 1 rentals", screen.StatusMessage())
}

func TestScreen_SetCriteria(t *testing.T) {
	from, to := day(5), day(25)

	tests := []struct {
		name     string
		criteria listfilter.Criteria
		wantIDs  []int64
		wantErr  bool
	}{
		{name: "no filters is the full snapshot", criteria: listfilter.Criteria{Status: listfilter.All}, wantIDs: []int64{1, 2, 3}},
		{name: "search client", criteria: listfilter.Criteria{Search: "JANE"}, wantIDs: []int64{1, 3}},
		{name: "search vehicle", criteria: listfilter.Criteria{Search: "cd-456"}, wantIDs: []int64{2, 3}},
		{name: "date range on start date", criteria: listfilter.Criteria{From: &from, To: &to}, wantIDs: []int64{2, 3}},
		{name: "combined", criteria: listfilter.Criteria{Search: "jane", Status: model.StatusReserved, From: &from}, wantIDs: []int64{3}},
		{name: "unknown status", criteria: listfilter.Criteria{Status: "Lost"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, svc := newScreen(t)

			if tt.wantErr {
				assert.Error(t, screen.SetCriteria(context.Background(), tt.criteria))

				return
			}

			svc.EXPECT().List(gomock.Any()).Return(bookings(), nil).Times(2)

			assert.NoError(t, screen.SetCriteria(context.Background(), tt.criteria))
			first := ids(screen.Visible())

			assert.NoError(t, screen.Filter(context.Background()))
			assert.Equal(t, first, ids(screen.Visible()), "filtering twice gives the same set")
			assert.Equal(t, tt.wantIDs, first)
		})
	}
}

func TestScreen_DerivedValues(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(bookings(), nil)

	assert.NoError(t, screen.Load(context.Background()))
	assert.Equal(t, "Loaded 3 rentals", screen.StatusMessage())
	assert.Equal(t, 2, screen.ActiveRentalsCount())
	assert.True(t, decimal.NewFromInt(450).Equal(screen.TotalRevenue()))

	assert.False(t, screen.CanCompleteRental())
	screen.Select(2)
	assert.False(t, screen.CanCompleteRental())
	screen.Select(1)
	assert.True(t, screen.CanCompleteRental())
}

func TestScreen_CompleteSelected(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(bookings(), nil)
	assert.NoError(t, screen.Load(context.Background()))
	assert.True(t, screen.Select(1))

	completed := bookings()
	completed[0].Status = model.StatusCompleted
	returned := day(4)
	completed[0].ActualReturnDate = &returned

	svc.EXPECT().Complete(gomock.Any(), int64(1)).Return(completed[0], nil)
	svc.EXPECT().List(gomock.Any()).Return(completed, nil)

	assert.NoError(t, screen.CompleteSelected(context.Background()))
	assert.Equal(t, "Rental #1 marked as completed", screen.StatusMessage())
	assert.Equal(t, 1, screen.ActiveRentalsCount())
	assert.False(t, screen.CanCompleteRental())
}

func TestScreen_CompleteFailureKeepsRows(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(bookings(), nil)
	assert.NoError(t, screen.Load(context.Background()))
	screen.Select(3)

	svc.EXPECT().Complete(gomock.Any(), int64(3)).Return(model.Rental{}, errors.New("deadlock"))

	assert.Error(t, screen.CompleteSelected(context.Background()))
	assert.Len(t, screen.Visible(), 3)
	assert.Equal(t, "Error completing rental: deadlock", screen.StatusMessage())
}

func TestScreen_DateRangeUsesStoredCalendarDay(t *testing.T) {
	eastern := time.FixedZone("EST", -5*60*60)
	prev := timezone.SetLocation(eastern)
	t.Cleanup(func() { timezone.SetLocation(prev) })

	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return([]model.Rental{
		{ID: 1, Status: model.StatusReserved, StartDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.FixedZone("", 0))},
		{ID: 2, Status: model.StatusReserved, StartDate: time.Date(2024, 3, 6, 0, 0, 0, 0, time.FixedZone("", 0))},
	}, nil)

	day, err := listfilter.ParseDate("2024-03-05")
	assert.NoError(t, err)

	assert.NoError(t, screen.SetDateRange(context.Background(), day, day))
	assert.Equal(t, []int64{1}, ids(screen.Visible()))
}

func TestScreen_LoadResetsFilters(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(bookings(), nil).Times(2)

	assert.NoError(t, screen.SetCriteria(context.Background(), listfilter.Criteria{Search: "john"}))
	assert.Equal(t, []int64{2}, ids(screen.Visible()))

	assert.NoError(t, screen.Load(context.Background()))
	assert.Equal(t, []int64{1, 2, 3}, ids(screen.Visible()))
	assert.Equal(t, listfilter.Criteria{Status: listfilter.All}, screen.Criteria())
	assert.Equal(t, "Loaded 3 rentals", screen.StatusMessage())
}
