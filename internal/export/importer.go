package export

import (
	clientDto "carrental/internal/domains/client/model/dto"
	vehicleModel "carrental/internal/domains/vehicle/model"
	vehicleDto "carrental/internal/domains/vehicle/model/dto"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	defaultYear = 2023
)

var (
	defaultDailyRate = decimal.RequireFromString("50.00")

	importDateLayouts = []string{time.DateOnly, time.DateTime, "01/02/2006", "1/2/2006", "01-02-06", "1/2/06"}
)

// readRows returns the data rows of the first worksheet, header excluded.
func readRows(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}

	if len(rows) < 2 {
		return nil, nil
	}

	data := make([][]string, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		data = append(data, row)
	}

	return data, nil
}

func blank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}

	return true
}

func column(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseInt(value string, fallback int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}

	return fallback
}

func parseDecimal(value string, fallback decimal.Decimal) decimal.Decimal {
	if d, err := decimal.NewFromString(strings.TrimPrefix(value, "$")); err == nil {
		return d
	}

	return fallback
}

func parseDate(value string, fallback time.Time) time.Time {
	for _, layout := range importDateLayouts {
		if t, err := time.ParseInLocation(layout, value, fallback.Location()); err == nil {
			return t
		}
	}

	return fallback
}

// ImportVehicles reads Make, Model, Year, License Plate, Color, Daily Rate,
// Available and Type columns. Unreadable numbers fall back to defaults and only
// "yes" marks a vehicle available.
func ImportVehicles(r io.Reader) ([]vehicleDto.AddVehicleRequest, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	reqs := make([]vehicleDto.AddVehicleRequest, 0, len(rows))

	for _, row := range rows {
		vehicleType := column(row, 7)
		if vehicleType == "" {
			vehicleType = vehicleModel.TypeStandard
		}

		reqs = append(reqs, vehicleDto.AddVehicleRequest{
			Make:         column(row, 0),
			Model:        column(row, 1),
			Year:         parseInt(column(row, 2), defaultYear),
			LicensePlate: column(row, 3),
			Color:        column(row, 4),
			DailyRate:    parseDecimal(column(row, 5), defaultDailyRate),
			IsAvailable:  strings.EqualFold(column(row, 6), "yes"),
			VehicleType:  vehicleType,
		})
	}

	return reqs, nil
}

// ImportClients reads First Name, Last Name, Email, Phone, Address, License
// Number and License Expiry. A missing or unreadable expiry becomes one year
// from now.
func ImportClients(r io.Reader, now time.Time) ([]clientDto.AddClientRequest, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	fallback := now.AddDate(1, 0, 0)
	reqs := make([]clientDto.AddClientRequest, 0, len(rows))

	for _, row := range rows {
		reqs = append(reqs, clientDto.AddClientRequest{
			FirstName:     column(row, 0),
			LastName:      column(row, 1),
			Email:         column(row, 2),
			Phone:         column(row, 3),
			Address:       column(row, 4),
			LicenseNumber: column(row, 5),
			LicenseExpiry: parseDate(column(row, 6), fallback),
		})
	}

	return reqs, nil
}
