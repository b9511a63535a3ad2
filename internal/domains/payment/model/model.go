package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "id"
	FieldRentalID      = "rental_id"
	FieldAmount        = "amount"
	FieldPaymentMethod = "payment_method"
	FieldPaymentDate   = "payment_date"
	FieldStatus        = "status"
	FieldTransactionID = "transaction_id"
)

const (
	MethodCreditCard   = "Credit Card"
	MethodCash         = "Cash"
	MethodBankTransfer = "Bank Transfer"
)

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

var (
	Methods  = []string{MethodCreditCard, MethodCash, MethodBankTransfer}
	Statuses = []string{StatusPending, StatusCompleted, StatusFailed}
)

type Payment struct {
	ID            int64           `db:"id"             json:"id"             xml:"id"             yaml:"id"`
	RentalID      int64           `db:"rental_id"      json:"rental_id"      xml:"rental_id"      yaml:"rental_id"`
	Amount        decimal.Decimal `db:"amount"         json:"amount"         xml:"amount"         yaml:"amount"`
	PaymentMethod string          `db:"payment_method" json:"payment_method" xml:"payment_method" yaml:"payment_method"`
	PaymentDate   time.Time       `db:"payment_date"   json:"payment_date"   xml:"payment_date"   yaml:"payment_date"`
	Status        string          `db:"status"         json:"status"         xml:"status"         yaml:"status"`
	TransactionID string          `db:"transaction_id" json:"transaction_id" xml:"transaction_id" yaml:"transaction_id"`

	ClientName  string `db:"client_name"  expr:"clients.first_name || ' ' || clients.last_name" json:"client_name"  xml:"client_name"  yaml:"client_name"`
	VehicleInfo string `db:"vehicle_info" expr:"vehicles.make || ' ' || vehicles.model"         json:"vehicle_info" xml:"vehicle_info" yaml:"vehicle_info"`
}

func (Payment) GetJoinQuery() string {
	return "JOIN rentals ON rentals.id = payments.rental_id " +
		"JOIN clients ON clients.id = rentals.client_id " +
		"JOIN vehicles ON vehicles.id = rentals.vehicle_id"
}

func (p Payment) CanProcess() bool {
	return p.Status == StatusPending
}

// NewTransactionID returns an 8 character upper-case token.
func NewTransactionID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
