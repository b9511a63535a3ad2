package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID           = "id"
	FieldMake         = "make"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldLicensePlate = "license_plate"
	FieldColor        = "color"
	FieldDailyRate    = "daily_rate"
	FieldIsAvailable  = "is_available"
	FieldVehicleType  = "vehicle_type"
	FieldCreatedAt    = "created_at"
)

const (
	TypeEconomy  = "Economy"
	TypeStandard = "Standard"
	TypeLuxury   = "Luxury"
	TypeSUV      = "SUV"
)

var Types = []string{TypeEconomy, TypeStandard, TypeLuxury, TypeSUV}

type Vehicle struct {
	ID           int64           `db:"id"            json:"id"            xml:"id"            yaml:"id"`
	Make         string          `db:"make"          json:"make"          xml:"make"          yaml:"make"`
	Model        string          `db:"model"         json:"model"         xml:"model"         yaml:"model"`
	Year         int             `db:"year"          json:"year"          xml:"year"          yaml:"year"`
	LicensePlate string          `db:"license_plate" json:"license_plate" xml:"license_plate" yaml:"license_plate"`
	Color        string          `db:"color"         json:"color"         xml:"color"         yaml:"color"`
	DailyRate    decimal.Decimal `db:"daily_rate"    json:"daily_rate"    xml:"daily_rate"    yaml:"daily_rate"`
	IsAvailable  bool            `db:"is_available"  json:"is_available"  xml:"is_available"  yaml:"is_available"`
	VehicleType  string          `db:"vehicle_type"  json:"vehicle_type"  xml:"vehicle_type"  yaml:"vehicle_type"`
	CreatedAt    time.Time       `db:"created_at"    json:"created_at"    xml:"created_at"    yaml:"created_at"`
}

// DisplayName is "Make Model".
func (v Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

// Info is "Make Model (Plate)".
func (v Vehicle) Info() string {
	return v.DisplayName() + " (" + v.LicensePlate + ")"
}

func (v Vehicle) AvailabilityLabel() string {
	if v.IsAvailable {
		return "Available"
	}

	return "Not Available"
}
