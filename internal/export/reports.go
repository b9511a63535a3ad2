package export

import (
	clientModel "carrental/internal/domains/client/model"
	dashboardModel "carrental/internal/domains/dashboard/model"
	paymentModel "carrental/internal/domains/payment/model"
	rentalModel "carrental/internal/domains/rental/model"
	vehicleModel "carrental/internal/domains/vehicle/model"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	vehiclesFill = "4F81BD"
	rentalsFill  = "9BC2E6"
	paymentsFill = "C6E0B4"
	clientsFill  = "FFC7CE"

	paymentsTable = "PaymentsTable"
	notAvailable  = "N/A"
)

var (
	vehicleHeaders = []string{"ID", "Make", "Model", "Year", "License Plate", "Color", "Daily Rate", "Available", "Type", "Created Date"}
	rentalHeaders  = []string{"Rental ID", "Client", "Vehicle", "Start Date", "End Date", "Actual Return", "Total Amount", "Deposit", "Status", "Created Date"}
	paymentHeaders = []string{"Payment ID", "Rental ID", "Client", "Vehicle", "Amount", "Payment Method", "Payment Date", "Status", "Transaction ID"}
	clientHeaders  = []string{"Client ID", "First Name", "Last Name", "Email", "Phone", "Address", "License Number", "License Expiry", "Created Date"}
)

var rentalStatusColors = map[string]string{
	"active":    colorGreen,
	"reserved":  colorBlue,
	"completed": colorDarkGreen,
	"cancelled": colorRed,
}

var paymentStatusColors = map[string]string{
	"completed": colorGreen,
	"pending":   colorOrange,
	"failed":    colorRed,
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}

// VehiclesReport renders one row per vehicle followed by summary statistics.
func VehiclesReport(vehicles []vehicleModel.Vehicle, now time.Time) ([]byte, error) {
	file := excelize.NewFile()
	s := newSheet(file, "Vehicles")
	s.header(vehicleHeaders, vehiclesFill, colorWhite)

	available := 0

	for idx, v := range vehicles {
		row := idx + 2

		s.set(1, row, v.ID)
		s.set(2, row, v.Make)
		s.set(3, row, v.Model)
		s.set(4, row, v.Year)
		s.set(5, row, v.LicensePlate)
		s.set(6, row, v.Color)
		s.set(7, row, v.DailyRate.InexactFloat64())
		s.currency(7, row)
		s.set(8, row, yesNo(v.IsAvailable))
		s.set(9, row, v.VehicleType)
		s.set(10, row, v.CreatedAt)
		s.date(10, row)

		if v.IsAvailable {
			available++
			s.fontColor(8, row, colorGreen, false)
		} else {
			s.fontColor(8, row, colorRed, false)
		}
	}

	last := len(vehicles) + 3
	s.title(last, "Summary Statistics", 12)
	s.label(last+1, "Total Vehicles:", len(vehicles))
	s.label(last+2, "Available Vehicles:", available)
	s.set(1, last+3, "Average Daily Rate:")

	if len(vehicles) > 0 {
		s.formula(2, last+3, "AVERAGE("+dataRange(7, len(vehicles))+")")
	} else {
		s.set(2, last+3, 0)
	}

	s.currency(2, last+3)
	s.timestamp(last+5, now)

	return render(file, s)
}

func RentalsReport(rentals []rentalModel.Rental, now time.Time) ([]byte, error) {
	file := excelize.NewFile()
	s := newSheet(file, "Rentals")
	s.header(rentalHeaders, rentalsFill, colorBlack)

	active := 0

	for idx, r := range rentals {
		row := idx + 2

		s.set(1, row, r.ID)
		s.set(2, row, r.ClientName)
		s.set(3, row, r.VehicleInfo)
		s.set(4, row, r.StartDate)
		s.date(4, row)
		s.set(5, row, r.EndDate)
		s.date(5, row)

		if r.ActualReturnDate != nil {
			s.set(6, row, r.ActualReturnDate.Format(time.DateOnly))
		} else {
			s.set(6, row, notAvailable)
		}

		s.set(7, row, r.TotalAmount.InexactFloat64())
		s.currency(7, row)
		s.set(8, row, r.Deposit.InexactFloat64())
		s.currency(8, row)
		s.set(9, row, r.Status)
		s.set(10, row, r.CreatedAt)
		s.date(10, row)

		if color, ok := rentalStatusColors[strings.ToLower(r.Status)]; ok {
			s.fontColor(9, row, color, false)
		}

		if r.Status == rentalModel.StatusActive {
			active++
		}
	}

	last := len(rentals) + 3
	s.title(last, "Summary", 12)
	s.label(last+1, "Total Rentals:", len(rentals))
	s.label(last+2, "Active Rentals:", active)
	s.set(1, last+3, "Total Revenue:")
	s.formula(2, last+3, "SUM("+dataRange(7, len(rentals))+")")
	s.currency(2, last+3)
	s.timestamp(last+5, now)

	return render(file, s)
}

// PaymentsReport also turns the data rows into a filterable table.
func PaymentsReport(payments []paymentModel.Payment, now time.Time) ([]byte, error) {
	file := excelize.NewFile()
	s := newSheet(file, "Payments")
	s.header(paymentHeaders, paymentsFill, colorBlack)

	completed, pending := 0, 0

	for idx, p := range payments {
		row := idx + 2

		s.set(1, row, p.ID)
		s.set(2, row, p.RentalID)
		s.set(3, row, p.ClientName)
		s.set(4, row, p.VehicleInfo)
		s.set(5, row, p.Amount.InexactFloat64())
		s.currency(5, row)
		s.set(6, row, p.PaymentMethod)
		s.set(7, row, p.PaymentDate)
		s.date(7, row)
		s.set(8, row, p.Status)
		s.set(9, row, p.TransactionID)

		if color, ok := paymentStatusColors[strings.ToLower(p.Status)]; ok {
			s.fontColor(8, row, color, false)
		}

		switch p.Status {
		case paymentModel.StatusCompleted:
			completed++
		case paymentModel.StatusPending:
			pending++
		}
	}

	if len(payments) > 0 && s.err == nil {
		s.err = file.AddTable(s.name, &excelize.Table{
			Range:     fmt.Sprintf("A1:%s%d", columnName(len(paymentHeaders)), len(payments)+1),
			Name:      paymentsTable,
			StyleName: "TableStyleMedium6",
		})
	}

	last := len(payments) + 4
	s.title(last, "Summary", 12)
	s.label(last+1, "Total Payments:", len(payments))
	s.set(1, last+2, "Total Amount:")
	s.formula(2, last+2, "SUM("+dataRange(5, len(payments))+")")
	s.currency(2, last+2)
	s.label(last+3, "Completed Payments:", completed)
	s.label(last+4, "Pending Payments:", pending)
	s.timestamp(last+6, now)

	return render(file, s)
}

// ClientsReport marks expired licences red and bold, and those expiring within
// three months orange.
func ClientsReport(clients []clientModel.Client, now time.Time) ([]byte, error) {
	file := excelize.NewFile()
	s := newSheet(file, "Clients")
	s.header(clientHeaders, clientsFill, colorBlack)

	expired, expiring := 0, 0

	for idx, c := range clients {
		row := idx + 2

		s.set(1, row, c.ID)
		s.set(2, row, c.FirstName)
		s.set(3, row, c.LastName)
		s.set(4, row, c.Email)
		s.set(5, row, c.Phone)
		s.set(6, row, c.Address)
		s.set(7, row, c.LicenseNumber)
		s.set(8, row, c.LicenseExpiry)
		s.set(9, row, c.CreatedAt)
		s.date(9, row)

		switch c.LicenseStatusAt(now) {
		case clientModel.LicenseExpired:
			expired++
			s.style(8, row, "licence-expired", func() *excelize.Style {
				format := dateFormat

				return &excelize.Style{CustomNumFmt: &format, Font: &excelize.Font{Color: colorRed, Bold: true}}
			})
		case clientModel.LicenseExpiringSoon:
			expiring++
			s.style(8, row, "licence-expiring", func() *excelize.Style {
				format := dateFormat

				return &excelize.Style{CustomNumFmt: &format, Font: &excelize.Font{Color: colorOrange}}
			})
		default:
			s.date(8, row)
		}
	}

	last := len(clients) + 3
	s.title(last, "Summary", 12)
	s.label(last+1, "Total Clients:", len(clients))
	s.label(last+2, "Expired Licenses:", expired)
	s.label(last+3, "Licenses Expiring Soon (<3 months):", expiring)
	s.timestamp(last+5, now)

	return render(file, s)
}

func DashboardReport(stats dashboardModel.Stats, now time.Time) ([]byte, error) {
	file := excelize.NewFile()
	s := newSheet(file, "Dashboard Summary")

	s.title(1, "Car Rental Management Dashboard", 16)

	if s.err == nil {
		s.err = file.MergeCell(s.name, "A1", "C1")
	}

	s.set(1, 2, "Report Period: "+now.Format(time.DateOnly))
	s.style(1, 2, "italic", func() *excelize.Style {
		return &excelize.Style{Font: &excelize.Font{Italic: true}}
	})

	rows := []struct {
		label    string
		value    any
		currency bool
	}{
		{"Total Vehicles", stats.TotalVehicles, false},
		{"Available Vehicles", stats.AvailableVehicles, false},
		{"Total Clients", stats.TotalClients, false},
		{"Active Rentals", stats.ActiveRentals, false},
		{"Completed Rentals", stats.CompletedRentals, false},
		{"Total Revenue", stats.TotalRevenue.InexactFloat64(), true},
		{"Monthly Revenue", stats.MonthRevenue.InexactFloat64(), true},
	}

	for idx, stat := range rows {
		row := idx + 4

		s.label(row, stat.label+":", stat.value)
		s.style(1, row, "bold", func() *excelize.Style {
			return &excelize.Style{Font: &excelize.Font{Bold: true}}
		})

		if stat.currency {
			s.currency(2, row)
		}
	}

	if s.err == nil {
		s.err = file.SetColWidth(s.name, "A", "B", columnWidth)
	}

	return render(file, s)
}
