package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rentals"
	EntityName = "rental"

	FieldID               = "id"
	FieldClientID         = "client_id"
	FieldVehicleID        = "vehicle_id"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldActualReturnDate = "actual_return_date"
	FieldTotalAmount      = "total_amount"
	FieldDeposit          = "deposit"
	FieldStatus           = "status"
	FieldCreatedAt        = "created_at"
)

const (
	StatusReserved  = "Reserved"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

var Statuses = []string{StatusActive, StatusReserved, StatusCompleted, StatusCancelled}

type Rental struct {
	ID               int64           `db:"id"                 json:"id"                           xml:"id"                           yaml:"id"`
	ClientID         int64           `db:"client_id"          json:"client_id"                    xml:"client_id"                    yaml:"client_id"`
	VehicleID        int64           `db:"vehicle_id"         json:"vehicle_id"                   xml:"vehicle_id"                   yaml:"vehicle_id"`
	StartDate        time.Time       `db:"start_date"         json:"start_date"                   xml:"start_date"                   yaml:"start_date"`
	EndDate          time.Time       `db:"end_date"           json:"end_date"                     xml:"end_date"                     yaml:"end_date"`
	ActualReturnDate *time.Time      `db:"actual_return_date" json:"actual_return_date,omitempty" xml:"actual_return_date,omitempty" yaml:"actual_return_date,omitempty"`
	TotalAmount      decimal.Decimal `db:"total_amount"       json:"total_amount"                 xml:"total_amount"                 yaml:"total_amount"`
	Deposit          decimal.Decimal `db:"deposit"            json:"deposit"                      xml:"deposit"                      yaml:"deposit"`
	Status           string          `db:"status"             json:"status"                       xml:"status"                       yaml:"status"`
	CreatedAt        time.Time       `db:"created_at"         json:"created_at"                   xml:"created_at"                   yaml:"created_at"`

	ClientName  string `db:"client_name"  expr:"clients.first_name || ' ' || clients.last_name"                                          json:"client_name"  xml:"client_name"  yaml:"client_name"`
	VehicleInfo string `db:"vehicle_info" expr:"vehicles.make || ' ' || vehicles.model || ' (' || vehicles.license_plate || ')'" json:"vehicle_info" xml:"vehicle_info" yaml:"vehicle_info"`
}

func (Rental) GetJoinQuery() string {
	return "JOIN clients ON clients.id = rentals.client_id JOIN vehicles ON vehicles.id = rentals.vehicle_id"
}

// IsOpen reports whether the rental still holds its vehicle.
func (r Rental) IsOpen() bool {
	return r.Status == StatusActive || r.Status == StatusReserved
}

func (r Rental) CanComplete() bool {
	return r.IsOpen()
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func ValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

// RentalDays is the billed number of days, at least one.
func RentalDays(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	return max(int(endDay.Sub(startDay).Hours()/24), 1)
}
