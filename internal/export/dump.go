package export

import (
	"bytes"
	paymentModel "carrental/internal/domains/payment/model"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Dump serialises items as an indented JSON array, a YAML sequence, or an XML
// document <root><element>...</element></root>.
func Dump[T any](format Format, root, element string, items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}

		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}

		return data, nil
	case FormatXML:
		return dumpXML(root, element, items)
	default:
		return nil, fmt.Errorf("cannot dump as %s", format)
	}
}

func dumpXML[T any](root, element string, items []T) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(start); err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	for _, item := range items {
		if err := enc.EncodeElement(item, xml.StartElement{Name: xml.Name{Local: element}}); err != nil {
			return nil, fmt.Errorf("failed to encode xml: %w", err)
		}
	}

	if err := enc.EncodeToken(start.End()); err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

var paymentCSVHeader = []string{"ID", "RentalID", "Client", "Vehicle", "Amount", "Method", "Date", "Status", "TransactionID"}

func PaymentsCSV(payments []paymentModel.Payment) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(paymentCSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range payments {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.RentalID, 10),
			p.ClientName,
			p.VehicleInfo,
			p.Amount.StringFixed(2),
			p.PaymentMethod,
			p.PaymentDate.Format(time.DateOnly),
			p.Status,
			p.TransactionID,
		}

		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write payment %d: %w", p.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}

	return buf.Bytes(), nil
}
