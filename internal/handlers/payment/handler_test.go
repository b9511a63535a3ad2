package payment_test

import (
	"bytes"
	"carrental/infras/otel/mocks"
	"carrental/internal/domains/auth/session"
	paymentMocks "carrental/internal/domains/payment/mocks"
	"carrental/internal/domains/payment/model"
	"carrental/internal/domains/payment/model/dto"
	rentalMocks "carrental/internal/domains/rental/mocks"
	rentalModel "carrental/internal/domains/rental/model"
	exportMocks "carrental/internal/export/mocks"
	"carrental/internal/handlers/payment"
	"carrental/shared/failure"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
	"go.uber.org/mock/gomock"
)

func ledger() []model.Payment {
	now := time.Now()

	return []model.Payment{
		{ID: 1, RentalID: 1, ClientName: "Jane Doe", VehicleInfo: "Toyota Corolla", Amount: decimal.NewFromInt(100),
			PaymentMethod: model.MethodCash, PaymentDate: now, Status: model.StatusPending, TransactionID: "AB12CD34"},
		{ID: 2, RentalID: 2, ClientName: "John Roe", VehicleInfo: "BMW X5", Amount: decimal.NewFromInt(250),
			PaymentMethod: model.MethodCreditCard, PaymentDate: now.AddDate(0, 0, -60), Status: model.StatusCompleted, TransactionID: "EF56GH78"},
	}
}

type fixture struct {
	svc      *paymentMocks.MockPaymentService
	rentals  *rentalMocks.MockRentalService
	exporter *exportMocks.MockExporter
	out      *bytes.Buffer
	app      *cli.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		svc:      paymentMocks.NewMockPaymentService(ctrl),
		rentals:  rentalMocks.NewMockRentalService(ctrl),
		exporter: exportMocks.NewMockExporter(ctrl),
		out:      &bytes.Buffer{},
	}

	h := payment.New(f.svc, f.rentals, f.exporter, mocks.NewOtel())
	f.app = &cli.App{Name: "carrental", Commands: h.Commands(), Writer: f.out}

	return f
}

func (f *fixture) run(args ...string) error {
	ctx := session.WithSession(context.Background(), session.Session{TokenID: "t", UserID: 2, Username: "clerk", Role: session.RoleStaff})

	return f.app.RunContext(ctx, append([]string{"carrental"}, args...))
}

func TestHandler_List(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		setupMock func(f *fixture)
		want      []string
		notWant   string
	}{
		{
			name: "default window hides old payments",
			args: []string{"payments"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
			},
			want:    []string{"AB12CD34", "Total Amount:   $100.00", "Showing 1 payments"},
			notWant: "EF56GH78",
		},
		{
			name: "all payments",
			args: []string{"payments", "-all"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
			},
			want: []string{"AB12CD34", "EF56GH78", "Total Amount:   $350.00", "Completed:      1", "Showing 2 payments"},
		},
		{
			name: "csv export of completed payments",
			args: []string{"payments", "-all", "-status", "Completed", "-out", "payments.csv"},
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
				f.exporter.EXPECT().Payments(gomock.Any(), "payments.csv", gomock.Len(1)).Return("exports/payments.csv", nil)
			},
			want:    []string{"Exported 1 payments to exports/payments.csv"},
			notWant: "AB12CD34",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			assert.NoError(t, f.run(tt.args...))

			for _, want := range tt.want {
				assert.Contains(t, f.out.String(), want)
			}

			if tt.notWant != "" {
				assert.NotContains(t, f.out.String(), tt.notWant)
			}
		})
	}
}

func TestHandler_Rentals(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().EligibleRentals(gomock.Any()).Return([]rentalModel.Rental{
		{ID: 4, ClientName: "Jane Doe", VehicleInfo: "Toyota Corolla (AB-123)", TotalAmount: decimal.NewFromInt(120)},
	}, nil)

	assert.NoError(t, f.run("payments", "rentals"))
	assert.Contains(t, f.out.String(), "#4 - Jane Doe - Toyota Corolla (AB-123) - $120.00")
	assert.Contains(t, f.out.String(), "1 rentals accept payments")
}

func TestHandler_Add(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		setupMock func(f *fixture)
		wantErr   bool
	}{
		{
			name:   "pending payment",
			amount: "80.50",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().Add(gomock.Any(), dto.AddPaymentRequest{RentalID: 1, Amount: "80.50", Method: model.MethodCash}).
					Return(model.Payment{ID: 3, TransactionID: "ZX90QW12"}, nil)
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
			},
		},
		{
			name:   "non-positive amount writes nothing",
			amount: "-5",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().Add(gomock.Any(), gomock.Any()).Return(model.Payment{}, failure.ErrInvalidAmount)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.run("payments", "add", "-rental", "1", "-amount", tt.amount, "-method", model.MethodCash)

			if tt.wantErr {
				assert.True(t, failure.IsCode(err, failure.CodeValidation))

				return
			}

			assert.NoError(t, err)
			assert.Contains(t, f.out.String(), "Payment added successfully (Transaction: ZX90QW12)")
		})
	}
}

func TestHandler_Update(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Get(gomock.Any(), int64(2)).Return(ledger()[1], nil)
	f.svc.EXPECT().Update(gomock.Any(), dto.UpdatePaymentRequest{
		ID: 2, Amount: "250.00", Method: model.MethodBankTransfer, Status: model.StatusCompleted,
	}).Return(nil)
	f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)

	assert.NoError(t, f.run("payments", "update", "-id", "2", "-method", model.MethodBankTransfer))
	assert.Contains(t, f.out.String(), "Payment #2 updated")
}

func TestHandler_Process(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(f *fixture)
		wantCode  failure.Code
		wantErr   bool
	}{
		{
			name: "pending payment",
			id:   "1",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil).Times(2)
				f.svc.EXPECT().Process(gomock.Any(), int64(1)).Return(ledger()[0], nil)
			},
		},
		{
			name: "completed payment",
			id:   "2",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
			},
			wantErr:  true,
			wantCode: failure.CodeValidation,
		},
		{
			name: "unknown payment",
			id:   "8",
			setupMock: func(f *fixture) {
				f.svc.EXPECT().List(gomock.Any()).Return(ledger(), nil)
			},
			wantErr:  true,
			wantCode: failure.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.run("payments", "process", "-id", tt.id)

			if tt.wantErr {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Contains(t, f.out.String(), "Payment #1 processed successfully")
		})
	}
}

func TestHandler_Receipt(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().Get(gomock.Any(), int64(1)).Return(ledger()[0], nil)
	f.rentals.EXPECT().Get(gomock.Any(), int64(1)).Return(rentalModel.Rental{ID: 1, ClientName: "Jane Doe"}, nil)
	f.exporter.EXPECT().Receipt(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target string, p model.Payment, r rentalModel.Rental) (string, error) {
			assert.True(t, strings.HasPrefix(target, "Payment_Receipt_AB12CD34_"))
			assert.Equal(t, int64(1), r.ID)

			return "exports/" + target, nil
		})

	assert.NoError(t, f.run("payments", "receipt", "-id", "1"))
	assert.Contains(t, f.out.String(), "Receipt saved to exports/Payment_Receipt_AB12CD34_")
}
