package dto_test

import (
	"carrental/internal/domains/payment/model"
	"carrental/internal/domains/payment/model/dto"
	"carrental/shared/validator"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAddPaymentRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.AddPaymentRequest
		wantErr bool
	}{
		{name: "valid", req: dto.AddPaymentRequest{RentalID: 1, Amount: "120.50", Method: model.MethodCreditCard}},
		{name: "bank transfer", req: dto.AddPaymentRequest{RentalID: 1, Amount: "5", Method: model.MethodBankTransfer}},
		{name: "zero amount", req: dto.AddPaymentRequest{RentalID: 1, Amount: "0", Method: model.MethodCash}, wantErr: true},
		{name: "negative amount", req: dto.AddPaymentRequest{RentalID: 1, Amount: "-3", Method: model.MethodCash}, wantErr: true},
		{name: "non-numeric amount", req: dto.AddPaymentRequest{RentalID: 1, Amount: "ten", Method: model.MethodCash}, wantErr: true},
		{name: "unknown method", req: dto.AddPaymentRequest{RentalID: 1, Amount: "10", Method: "Cheque"}, wantErr: true},
		{name: "no rental", req: dto.AddPaymentRequest{Amount: "10", Method: model.MethodCash}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddPaymentRequest_ToModel(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	req := dto.AddPaymentRequest{RentalID: 4, Amount: " 99.999 ", Method: model.MethodCash}

	got := req.ToModel("ABCD1234", now)

	assert.Equal(t, int64(4), got.RentalID)
	assert.True(t, decimal.RequireFromString("100").Equal(got.Amount))
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, "ABCD1234", got.TransactionID)
	assert.Equal(t, now, got.PaymentDate)
}

func TestUpdatePaymentRequest_ApplyTo(t *testing.T) {
	current := model.Payment{ID: 3, RentalID: 4, TransactionID: "ABCD1234", Status: model.StatusPending}
	req := dto.UpdatePaymentRequest{ID: 3, Amount: "45", Method: model.MethodBankTransfer, Status: model.StatusFailed}

	got := req.ApplyTo(current)

	assert.Equal(t, "ABCD1234", got.TransactionID)
	assert.Equal(t, model.StatusFailed, got.Status)
	assert.Equal(t, model.MethodBankTransfer, got.PaymentMethod)
	assert.True(t, decimal.NewFromInt(45).Equal(got.Amount))
}
