package export

import (
	paymentModel "carrental/internal/domains/payment/model"
	rentalModel "carrental/internal/domains/rental/model"
	"strconv"
	"strings"
	"time"
)

const receiptRule = "================================="

// Receipt is the plain text payment receipt handed to the client.
func Receipt(payment paymentModel.Payment, rental rentalModel.Rental, now time.Time) []byte {
	var b strings.Builder

	line := func(parts ...string) {
		b.WriteString(strings.Join(parts, ""))
		b.WriteByte('\n')
	}

	line(receiptRule)
	line("CAR RENTAL PAYMENT RECEIPT")
	line(receiptRule)
	line("Receipt #: ", payment.TransactionID)
	line("Date: ", now.Format(time.DateTime))
	line()
	line("Payment Details:")
	line("----------------")
	line("Payment ID: ", strconv.FormatInt(payment.ID, 10))
	line("Amount: ", money(payment.Amount))
	line("Method: ", payment.PaymentMethod)
	line("Status: ", payment.Status)
	line()
	line("Rental Details:")
	line("--------------")
	line("Rental ID: ", strconv.FormatInt(rental.ID, 10))
	line("Client: ", rental.ClientName)
	line("Vehicle: ", rental.VehicleInfo)
	line("Period: ", rental.StartDate.Format(time.DateOnly), " to ", rental.EndDate.Format(time.DateOnly))
	line("Total Rental: ", money(rental.TotalAmount))
	line()
	line(receiptRule)
	line("Thank you for your payment!")
	line(receiptRule)

	return []byte(b.String())
}

func ReceiptFileName(payment paymentModel.Payment, now time.Time) string {
	return "Payment_Receipt_" + payment.TransactionID + "_" + now.Format("20060102") + string(FormatTXT)
}
