package dto

import (
	"carrental/internal/domains/rental/model"
	"time"

	"github.com/shopspring/decimal"
)

type AddRentalRequest struct {
	ClientID    int64           `validate:"required,gt=0"`
	VehicleID   int64           `validate:"required,gt=0"`
	StartDate   time.Time       `validate:"required"`
	EndDate     time.Time       `validate:"required,gtefield=StartDate"`
	TotalAmount decimal.Decimal `validate:"gte=0"`
	Deposit     decimal.Decimal `validate:"gte=0"`
	Status      string          `validate:"omitempty,oneof=Reserved Active"`
}

// ToModel prices the rental at dailyRate per day unless a total was supplied.
func (r *AddRentalRequest) ToModel(dailyRate decimal.Decimal, now time.Time) model.Rental {
	total := r.TotalAmount
	if total.IsZero() {
		total = dailyRate.Mul(decimal.NewFromInt(int64(model.RentalDays(r.StartDate, r.EndDate))))
	}

	status := r.Status
	if status == "" {
		status = model.StatusReserved
	}

	return model.Rental{
		ClientID:    r.ClientID,
		VehicleID:   r.VehicleID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		TotalAmount: total.Round(2),
		Deposit:     r.Deposit.Round(2),
		Status:      status,
		CreatedAt:   now,
	}
}

type UpdateStatusRequest struct {
	ID     int64  `validate:"required,gt=0"`
	Status string `validate:"required,oneof=Reserved Active Completed Cancelled"`
}
