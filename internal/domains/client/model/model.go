package model

import "time"

const (
	TableName  = "clients"
	EntityName = "client"

	FieldID            = "id"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldLicenseNumber = "license_number"
	FieldLicenseExpiry = "license_expiry"
	FieldCreatedAt     = "created_at"
)

type LicenseStatus string

const (
	LicenseValid        LicenseStatus = "Valid"
	LicenseExpiringSoon LicenseStatus = "Expiring Soon"
	LicenseExpired      LicenseStatus = "Expired"

	expiringWithinMonths = 3
)

type Client struct {
	ID            int64     `db:"id"             json:"id"             xml:"id"             yaml:"id"`
	FirstName     string    `db:"first_name"     json:"first_name"     xml:"first_name"     yaml:"first_name"`
	LastName      string    `db:"last_name"      json:"last_name"      xml:"last_name"      yaml:"last_name"`
	Email         string    `db:"email"          json:"email"          xml:"email"          yaml:"email"`
	Phone         string    `db:"phone"          json:"phone"          xml:"phone"          yaml:"phone"`
	Address       string    `db:"address"        json:"address"        xml:"address"        yaml:"address"`
	LicenseNumber string    `db:"license_number" json:"license_number" xml:"license_number" yaml:"license_number"`
	LicenseExpiry time.Time `db:"license_expiry" json:"license_expiry" xml:"license_expiry" yaml:"license_expiry"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"     xml:"created_at"     yaml:"created_at"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// LicenseStatusAt compares the expiry date with the calendar day of now.
func (c Client) LicenseStatusAt(now time.Time) LicenseStatus {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	expiry := time.Date(c.LicenseExpiry.Year(), c.LicenseExpiry.Month(), c.LicenseExpiry.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case expiry.Before(today):
		return LicenseExpired
	case expiry.Before(today.AddDate(0, expiringWithinMonths, 0)):
		return LicenseExpiringSoon
	default:
		return LicenseValid
	}
}
