package dto

import (
	"carrental/internal/domains/client/model"
	"strings"
	"time"
)

type AddClientRequest struct {
	FirstName     string    `validate:"required,max=50"`
	LastName      string    `validate:"required,max=50"`
	Email         string    `validate:"required,email,max=100"`
	Phone         string    `validate:"max=20"`
	Address       string    `validate:"max=200"`
	LicenseNumber string    `validate:"required,max=50"`
	LicenseExpiry time.Time `validate:"required"`
}

func (r *AddClientRequest) ToModel(now time.Time) model.Client {
	return model.Client{
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		Email:         strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:         strings.TrimSpace(r.Phone),
		Address:       strings.TrimSpace(r.Address),
		LicenseNumber: strings.TrimSpace(r.LicenseNumber),
		LicenseExpiry: r.LicenseExpiry,
		CreatedAt:     now,
	}
}

type UpdateClientRequest struct {
	ID int64 `validate:"required,gt=0"`
	AddClientRequest
}

func (r *UpdateClientRequest) ApplyTo(current model.Client) model.Client {
	updated := r.ToModel(current.CreatedAt)
	updated.ID = current.ID

	return updated
}
