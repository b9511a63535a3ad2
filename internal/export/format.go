package export

import (
	"carrental/shared/failure"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
)

type Format string

const (
	FormatXLSX Format = ".xlsx"
	FormatCSV  Format = ".csv"
	FormatJSON Format = ".json"
	FormatXML  Format = ".xml"
	FormatYAML Format = ".yaml"
	FormatPDF  Format = ".pdf"
	FormatTXT  Format = ".txt"
)

var contentTypes = map[Format]string{
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:  "text/csv",
	FormatJSON: "application/json",
	FormatXML:  "application/xml",
	FormatYAML: "application/yaml",
	FormatPDF:  "application/pdf",
	FormatTXT:  "text/plain; charset=utf-8",
}

func (f Format) ContentType() string {
	return contentTypes[f]
}

// FormatOf picks the output format from the file extension of target. Only the
// formats listed in allowed are accepted.
func FormatOf(target string, allowed ...Format) (Format, error) {
	ext := Format(strings.ToLower(filepath.Ext(target)))
	if ext == ".yml" {
		ext = FormatYAML
	}

	for _, format := range allowed {
		if format == ext {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: %q", failure.ErrUnknownFormat, filepath.Ext(target))
}

// DefaultFileName builds names like Payments_Report_20240131_154500.xlsx.
func DefaultFileName(prefix string, format Format, now time.Time) string {
	return prefix + "_" + now.Format("20060102_150405") + string(format)
}

// ResolveTarget fills in a default file name when target names only a format,
// as in ".xlsx", "reports/.pdf" or "s3://bucket/.csv".
func ResolveTarget(target, prefix string, now time.Time) string {
	base := path.Base(filepath.ToSlash(target))
	ext := path.Ext(base)

	if ext == "" || base != ext {
		return target
	}

	return strings.TrimSuffix(target, base) + DefaultFileName(prefix, Format(strings.ToLower(ext)), now)
}
