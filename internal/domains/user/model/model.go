package model

import "time"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
	FieldEmail        = "email"
	FieldRole         = "role"
	FieldCreatedAt    = "created_at"
	FieldIsActive     = "is_active"
)

const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
)

var Roles = []string{RoleAdmin, RoleManager, RoleStaff}

// User is an operator account. PasswordHash never leaves the process.
type User struct {
	ID           int64     `db:"id"            json:"id"         xml:"id"         yaml:"id"`
	Username     string    `db:"username"      json:"username"   xml:"username"   yaml:"username"`
	PasswordHash string    `db:"password_hash" json:"-"          xml:"-"          yaml:"-"`
	Email        string    `db:"email"         json:"email"      xml:"email"      yaml:"email"`
	Role         string    `db:"role"          json:"role"       xml:"role"       yaml:"role"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at" xml:"created_at" yaml:"created_at"`
	IsActive     bool      `db:"is_active"     json:"is_active"  xml:"is_active"  yaml:"is_active"`
}

func (u User) StatusLabel() string {
	if u.IsActive {
		return "Active"
	}

	return "Inactive"
}
