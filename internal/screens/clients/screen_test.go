package clients_test

import (
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	clientMocks "carrental/internal/domains/client/mocks"
	"carrental/internal/domains/client/model"
	"carrental/internal/screens/clients"
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func roster() []model.Client {
	now := time.Now()

	return []model.Client{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "555-0101", LicenseNumber: "DL-1", LicenseExpiry: now.AddDate(2, 0, 0)},
		{ID: 2, FirstName: "John", LastName: "Roe", Email: "john@example.com", Phone: "555-0102", LicenseNumber: "DL-2", LicenseExpiry: now.AddDate(0, 1, 0)},
		{ID: 3, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "555-0103", LicenseNumber: "DL-3", LicenseExpiry: now.AddDate(0, 0, -10)},
	}
}

func newScreen(t *testing.T) (*clients.Screen, *clientMocks.MockClientService) {
	t.Helper()

	svc := clientMocks.NewMockClientService(gomock.NewController(t))

	return clients.New(session.Session{Username: "staff"}, svc, mocks.NewOtel()), svc
}

func TestScreen_LoadAndDerivedCounts(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(roster(), nil)

	assert.NoError(t, screen.Load(context.Background()))
	assert.Equal(t, "Loaded 3 clients", screen.StatusMessage())
	assert.Equal(t, 1, screen.ExpiredLicenses())
	assert.Equal(t, 1, screen.ExpiringSoon())
}

func TestScreen_Filter(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		license    string
		wantIDs    []int64
		wantStatus string
	}{
		{name: "full name", search: "jane doe", license: "All", wantIDs: []int64{1}, wantStatus: "Found 1 clients matching 'jane doe'"},
		{name: "licence number", search: "dl-", license: "All", wantIDs: []int64{1, 2, 3}, wantStatus: "Found 3 clients matching 'dl-'"},
		{name: "expired only", license: string(model.LicenseExpired), wantIDs: []int64{3}, wantStatus: "Showing 1 clients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen, svc := newScreen(t)
			svc.EXPECT().List(gomock.Any()).Return(roster(), nil).Times(2)

			assert.NoError(t, screen.SetLicenseFilter(context.Background(), tt.license))
			assert.NoError(t, screen.SetSearch(context.Background(), tt.search))

			var ids []int64
			for _, c := range screen.Visible() {
				ids = append(ids, c.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantStatus, screen.StatusMessage())
		})
	}
}

func TestScreen_FilterFailure(t *testing.T) {
	screen, svc := newScreen(t)
	svc.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))

	assert.Error(t, screen.SetSearch(context.Background(), "x"))
	assert.Equal(t, "Error filtering clients: timeout", screen.StatusMessage())
	assert.Empty(t, screen.Visible())
}

func TestScreen_SetCriteria(t *testing.T) {
	screen, svc := newScreen(t)

	err := screen.SetCriteria(context.Background(), listfilter.Criteria{Status: "Suspended"})
	assert.True(t, failure.IsCode(err, failure.CodeValidation))

	svc.EXPECT().List(gomock.Any()).Return(roster(), nil)

	assert.NoError(t, screen.SetCriteria(context.Background(),
		listfilter.Criteria{Search: "555-010", Status: string(model.LicenseExpiringSoon)}))
	assert.Len(t, screen.Visible(), 1)
	assert.Equal(t, int64(2), screen.Visible()[0].ID)
}
