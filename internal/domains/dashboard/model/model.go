package model

import (
	paymentModel "carrental/internal/domains/payment/model"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Stats struct {
	TotalVehicles     int             `json:"total_vehicles"     xml:"total_vehicles"     yaml:"total_vehicles"`
	AvailableVehicles int             `json:"available_vehicles" xml:"available_vehicles" yaml:"available_vehicles"`
	TotalClients      int             `json:"total_clients"      xml:"total_clients"      yaml:"total_clients"`
	ActiveRentals     int             `json:"active_rentals"     xml:"active_rentals"     yaml:"active_rentals"`
	CompletedRentals  int             `json:"completed_rentals"  xml:"completed_rentals"  yaml:"completed_rentals"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"      xml:"total_revenue"      yaml:"total_revenue"`
	MonthRevenue      decimal.Decimal `json:"month_revenue"      xml:"month_revenue"      yaml:"month_revenue"`
	GeneratedAt       time.Time       `json:"generated_at"       xml:"generated_at"       yaml:"generated_at"`
}

// AddRevenue sums completed payments into the totals; payments on or after
// monthStart also count towards MonthRevenue.
func (s *Stats) AddRevenue(payments []paymentModel.Payment, monthStart time.Time) {
	for _, p := range payments {
		if p.Status != paymentModel.StatusCompleted {
			continue
		}

		s.TotalRevenue = s.TotalRevenue.Add(p.Amount)

		if !p.PaymentDate.Before(monthStart) {
			s.MonthRevenue = s.MonthRevenue.Add(p.Amount)
		}
	}
}

// Rows lists the figures in display order.
func (s Stats) Rows() [][2]string {
	return [][2]string{
		{"Total Vehicles", strconv.Itoa(s.TotalVehicles)},
		{"Available Vehicles", strconv.Itoa(s.AvailableVehicles)},
		{"Total Clients", strconv.Itoa(s.TotalClients)},
		{"Active Rentals", strconv.Itoa(s.ActiveRentals)},
		{"Completed Rentals", strconv.Itoa(s.CompletedRentals)},
		{"Total Revenue", "$" + s.TotalRevenue.StringFixed(2)},
		{"Revenue This Month", "$" + s.MonthRevenue.StringFixed(2)},
	}
}
