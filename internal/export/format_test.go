package export_test

import (
	"carrental/internal/export"
	"carrental/shared/failure"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		allowed []export.Format
		want    export.Format
		wantErr bool
	}{
		{name: "xlsx", target: "out/report.xlsx", allowed: []export.Format{export.FormatXLSX}, want: export.FormatXLSX},
		{name: "case insensitive", target: "REPORT.JSON", allowed: []export.Format{export.FormatJSON}, want: export.FormatJSON},
		{name: "yml alias", target: "s3://bucket/users.yml", allowed: []export.Format{export.FormatYAML}, want: export.FormatYAML},
		{name: "not allowed here", target: "users.xlsx", allowed: []export.Format{export.FormatJSON}, wantErr: true},
		{name: "no extension", target: "report", allowed: []export.Format{export.FormatJSON}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := export.FormatOf(tt.target, tt.allowed...)

			if tt.wantErr {
				assert.True(t, errors.Is(err, failure.ErrUnknownFormat))
				assert.True(t, failure.IsCode(err, failure.CodeValidation))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, "Payments_Report_20240131_154500.xlsx", export.DefaultFileName("Payments_Report", export.FormatXLSX, now))
}

func TestResolveTarget(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		target string
		want   string
	}{
		{target: ".xlsx", want: "Vehicles_Report_20240131_154500.xlsx"},
		{target: "reports/.PDF", want: "reports/Vehicles_Report_20240131_154500.pdf"},
		{target: "s3://bucket/.csv", want: "s3://bucket/Vehicles_Report_20240131_154500.csv"},
		{target: "fleet.xlsx", want: "fleet.xlsx"},
		{target: "fleet", want: "fleet"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, export.ResolveTarget(tt.target, "Vehicles_Report", now), tt.target)
	}
}
