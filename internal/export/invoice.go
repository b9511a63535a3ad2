package export

import (
	"bytes"
	clientModel "carrental/internal/domains/client/model"
	rentalModel "carrental/internal/domains/rental/model"
	vehicleModel "carrental/internal/domains/vehicle/model"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
)

const (
	qrImageName = "rental-qr"
	qrPixels    = 256
	qrSizeMM    = 35.0

	labelWidth = 50.0
	lineHeight = 7.0
)

// Company is the letterhead printed on invoices.
type Company struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

type Invoice struct {
	Rental  rentalModel.Rental
	Client  clientModel.Client
	Vehicle vehicleModel.Vehicle
}

var invoiceTerms = []string{
	"1. Vehicle must be returned in the same condition.",
	"2. Late returns will incur additional charges.",
	"3. Fuel is not included in the rental price.",
	"4. Insurance coverage as per agreement.",
}

func InvoiceNumber(rentalID int64) string {
	return fmt.Sprintf("INV-%05d", rentalID)
}

// QRPayload is the text encoded in the invoice QR code.
func QRPayload(rentalID int64, clientName, vehicleInfo string, now time.Time) string {
	return fmt.Sprintf("RENTAL:%d|CLIENT:%s|VEHICLE:%s|DATE:%s", rentalID, clientName, vehicleInfo, now.Format("20060102"))
}

func QRCode(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.High, qrPixels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	return png, nil
}

func money(amount interface{ StringFixed(int32) string }) string {
	return "$" + amount.StringFixed(2)
}

// InvoicePDF renders a one page rental invoice with a QR code in the top right corner.
func InvoicePDF(inv Invoice, company Company, now time.Time) ([]byte, error) {
	qr, err := QRCode(QRPayload(inv.Rental.ID, inv.Client.FullName(), inv.Vehicle.Info(), now))
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(InvoiceNumber(inv.Rental.ID), false)
	pdf.SetCreationDate(now)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	centered := func(text string, size float64, style string) {
		pdf.SetFont("Helvetica", style, size)
		pdf.CellFormat(0, lineHeight+1, tr(text), "", 1, "C", false, 0, "")
	}

	section := func(title string) {
		pdf.Ln(lineHeight / 2)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, lineHeight+1, tr(title), "B", 1, "L", false, 0, "")
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelWidth, lineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, lineHeight, tr(value), "", 1, "L", false, 0, "")
	}

	pdf.RegisterImageOptionsReader(qrImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))

	left, top, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	pdf.ImageOptions(qrImageName, pageWidth-right-qrSizeMM, top, qrSizeMM, qrSizeMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	pdf.SetX(left)

	centered("Car Rental Invoice", 20, "B")
	pdf.Ln(lineHeight / 2)
	centered(company.Name, 11, "")
	centered(company.Address, 11, "")
	centered(fmt.Sprintf("Phone: %s | Email: %s", company.Phone, company.Email), 11, "")
	pdf.Ln(lineHeight)

	row("Invoice Number:", InvoiceNumber(inv.Rental.ID))
	row("Invoice Date:", now.Format(time.DateOnly))
	row("Rental ID:", strconv.FormatInt(inv.Rental.ID, 10))

	section("Client Information")
	row("Name:", inv.Client.FullName())
	row("Email:", inv.Client.Email)
	row("Phone:", inv.Client.Phone)
	row("License Number:", inv.Client.LicenseNumber)

	section("Vehicle Information")
	row("Vehicle:", fmt.Sprintf("%s (%d)", inv.Vehicle.DisplayName(), inv.Vehicle.Year))
	row("License Plate:", inv.Vehicle.LicensePlate)
	row("Color:", inv.Vehicle.Color)
	row("Type:", inv.Vehicle.VehicleType)

	section("Rental Details")
	row("Start Date:", inv.Rental.StartDate.Format(time.DateOnly))
	row("End Date:", inv.Rental.EndDate.Format(time.DateOnly))
	row("Daily Rate:", money(inv.Vehicle.DailyRate))
	row("Rental Days:", strconv.Itoa(rentalModel.RentalDays(inv.Rental.StartDate, inv.Rental.EndDate)))
	row("Total Amount:", money(inv.Rental.TotalAmount))
	row("Deposit:", money(inv.Rental.Deposit))
	row("Status:", inv.Rental.Status)

	section("Terms and Conditions")
	pdf.SetFont("Helvetica", "", 10)

	for _, term := range invoiceTerms {
		pdf.CellFormat(0, lineHeight-1, tr(term), "", 1, "L", false, 0, "")
	}

	pdf.Ln(lineHeight * 2)
	centered("Thank you for choosing our service!", 12, "I")

	var buf bytes.Buffer
	if err = pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.Bytes(), nil
}
