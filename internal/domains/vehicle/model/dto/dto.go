package dto

import (
	"carrental/internal/domains/vehicle/model"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AddVehicleRequest struct {
	Make         string          `validate:"required,max=50"`
	Model        string          `validate:"required,max=50"`
	Year         int             `validate:"gte=1900,lte=2100"`
	LicensePlate string          `validate:"required,max=20"`
	Color        string          `validate:"max=30"`
	DailyRate    decimal.Decimal `validate:"gte=0"`
	VehicleType  string          `validate:"required,oneof=Economy Standard Luxury SUV"`
	IsAvailable  bool
}

func (r *AddVehicleRequest) ToModel(now time.Time) model.Vehicle {
	return model.Vehicle{
		Make:         strings.TrimSpace(r.Make),
		Model:        strings.TrimSpace(r.Model),
		Year:         r.Year,
		LicensePlate: strings.ToUpper(strings.TrimSpace(r.LicensePlate)),
		Color:        strings.TrimSpace(r.Color),
		DailyRate:    r.DailyRate.Round(2),
		IsAvailable:  r.IsAvailable,
		VehicleType:  r.VehicleType,
		CreatedAt:    now,
	}
}

// UpdateVehicleRequest replaces every editable column of one vehicle.
type UpdateVehicleRequest struct {
	ID int64 `validate:"required,gt=0"`
	AddVehicleRequest
}

func (r *UpdateVehicleRequest) ApplyTo(current model.Vehicle) model.Vehicle {
	updated := r.ToModel(current.CreatedAt)
	updated.ID = current.ID

	return updated
}
