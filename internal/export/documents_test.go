package export_test

import (
	"bytes"
	clientModel "carrental/internal/domains/client/model"
	paymentModel "carrental/internal/domains/payment/model"
	rentalModel "carrental/internal/domains/rental/model"
	userModel "carrental/internal/domains/user/model"
	vehicleModel "carrental/internal/domains/vehicle/model"
	"carrental/internal/export"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleInvoice() export.Invoice {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	return export.Invoice{
		Rental:  rentalModel.Rental{ID: 42, StartDate: start, EndDate: start.AddDate(0, 0, 3), TotalAmount: decimal.NewFromInt(135), Deposit: decimal.NewFromInt(50), Status: rentalModel.StatusActive},
		Client:  clientModel.Client{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", LicenseNumber: "DL-1"},
		Vehicle: vehicleModel.Vehicle{Make: "Toyota", Model: "Corolla", Year: 2022, LicensePlate: "AB-123", DailyRate: decimal.NewFromInt(45), VehicleType: vehicleModel.TypeEconomy},
	}
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-00042", export.InvoiceNumber(42))
	assert.Equal(t, "INV-123456", export.InvoiceNumber(123456))
}

func TestQRPayload(t *testing.T) {
	payload := export.QRPayload(7, "Jane Doe", "Toyota Corolla (AB-123)", reportTime)

	assert.Equal(t, "RENTAL:7|CLIENT:Jane Doe|VEHICLE:Toyota Corolla (AB-123)|DATE:20240615", payload)

	png, err := export.QRCode(payload)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestInvoicePDF(t *testing.T) {
	company := export.Company{Name: "Car Rental Management System", Address: "123 Rental Street", Phone: "(123) 456-7890", Email: "info@carrental.com"}

	data, err := export.InvoicePDF(sampleInvoice(), company, reportTime)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "INV-00042")
}

func TestReceipt(t *testing.T) {
	payment := paymentModel.Payment{ID: 9, Amount: decimal.RequireFromString("99.9"), PaymentMethod: paymentModel.MethodCash, Status: paymentModel.StatusCompleted, TransactionID: "AB12CD34"}
	rental := sampleInvoice().Rental
	rental.ClientName = "Jane Doe"
	rental.VehicleInfo = "Toyota Corolla (AB-123)"

	text := string(export.Receipt(payment, rental, reportTime))

	assert.Contains(t, text, "CAR RENTAL PAYMENT RECEIPT")
	assert.Contains(t, text, "Receipt #: AB12CD34\n")
	assert.Contains(t, text, "Date: 2024-06-15 14:30:05\n")
	assert.Contains(t, text, "Amount: $99.90\n")
	assert.Contains(t, text, "Period: 2024-06-01 to 2024-06-04\n")
	assert.Contains(t, text, "Total Rental: $135.00\n")
	assert.Equal(t, "Payment_Receipt_AB12CD34_20240615.txt", export.ReceiptFileName(payment, reportTime))
}

func TestPaymentsCSV(t *testing.T) {
	payments := []paymentModel.Payment{
		{ID: 1, RentalID: 2, ClientName: "Doe, Jane", VehicleInfo: "BMW X5", Amount: decimal.NewFromInt(10), PaymentMethod: paymentModel.MethodBankTransfer, PaymentDate: reportTime, Status: paymentModel.StatusPending, TransactionID: "AAAA1111"},
	}

	data, err := export.PaymentsCSV(payments)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "ID,RentalID,Client,Vehicle,Amount,Method,Date,Status,TransactionID", strings.Join(records[0], ","))
	assert.Equal(t, []string{"1", "2", "Doe, Jane", "BMW X5", "10.00", "Bank Transfer", "2024-06-15", "Pending", "AAAA1111"}, records[1])
}

func TestDump(t *testing.T) {
	users := []userModel.User{{ID: 1, Username: "admin", PasswordHash: "$2a$10$secret", Role: userModel.RoleAdmin, IsActive: true}}

	t.Run("json", func(t *testing.T) {
		data, err := export.Dump(export.FormatJSON, "users", "user", users)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "admin", decoded[0]["username"])
		assert.NotContains(t, string(data), "secret")
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := export.Dump(export.FormatYAML, "users", "user", users)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, "Admin", decoded[0]["role"])
		assert.NotContains(t, string(data), "secret")
	})

	t.Run("xml", func(t *testing.T) {
		data, err := export.Dump(export.FormatXML, "users", "user", users)
		require.NoError(t, err)

		var decoded struct {
			Users []struct {
				Username string `xml:"username"`
			} `xml:"user"`
		}
		require.NoError(t, xml.Unmarshal(data, &decoded))
		require.Len(t, decoded.Users, 1)
		assert.Equal(t, "admin", decoded.Users[0].Username)
		assert.NotContains(t, string(data), "secret")
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		data, err := export.Dump[userModel.User](export.FormatJSON, "users", "user", nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := export.Dump(export.FormatPDF, "users", "user", users)
		assert.Error(t, err)
	})
}
