package dto

import (
	"carrental/internal/domains/payment/model"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddPaymentRequest carries the amount as typed by the operator.
type AddPaymentRequest struct {
	RentalID int64  `validate:"required,gt=0"`
	Amount   string `validate:"required,amount"`
	Method   string `validate:"required,oneof='Credit Card' Cash 'Bank Transfer'"`
}

// ParsedAmount is only meaningful once the request passed validation.
func (r *AddPaymentRequest) ParsedAmount() decimal.Decimal {
	amount, _ := decimal.NewFromString(strings.TrimSpace(r.Amount))

	return amount.Round(2)
}

func (r *AddPaymentRequest) ToModel(transactionID string, now time.Time) model.Payment {
	return model.Payment{
		RentalID:      r.RentalID,
		Amount:        r.ParsedAmount(),
		PaymentMethod: r.Method,
		PaymentDate:   now,
		Status:        model.StatusPending,
		TransactionID: transactionID,
	}
}

type UpdatePaymentRequest struct {
	ID     int64  `validate:"required,gt=0"`
	Amount string `validate:"required,amount"`
	Method string `validate:"required,oneof='Credit Card' Cash 'Bank Transfer'"`
	Status string `validate:"required,oneof=Pending Completed Failed"`
}

func (r *UpdatePaymentRequest) ApplyTo(current model.Payment) model.Payment {
	amount, _ := decimal.NewFromString(strings.TrimSpace(r.Amount))

	current.Amount = amount.Round(2)
	current.PaymentMethod = r.Method
	current.Status = r.Status

	return current
}
