package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	currencyFormat = "$#,##0.00"
	dateFormat     = "yyyy-mm-dd"

	colorWhite     = "FFFFFF"
	colorBlack     = "000000"
	colorGreen     = "008000"
	colorDarkGreen = "006400"
	colorBlue      = "0000FF"
	colorRed       = "FF0000"
	colorOrange    = "FFA500"

	columnWidth = 18
)

// sheet writes one worksheet and keeps the first error, so report builders read
// as a flat list of cell writes.
type sheet struct {
	file     *excelize.File
	name     string
	styles   map[string]int
	formulas map[string]string
	err      error
}

func newSheet(file *excelize.File, name string) *sheet {
	s := &sheet{file: file, name: name, styles: map[string]int{}, formulas: map[string]string{}}

	// a new workbook starts with Sheet1
	s.err = file.SetSheetName(file.GetSheetName(0), name)

	return s
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)

	return name
}

func (s *sheet) set(col, row int, value any) {
	if s.err != nil {
		return
	}

	s.err = s.file.SetCellValue(s.name, cell(col, row), value)
}

func (s *sheet) formula(col, row int, formula string) {
	if s.err != nil {
		return
	}

	s.formulas[cell(col, row)] = formula
	s.err = s.file.SetCellFormula(s.name, cell(col, row), formula)
}

// cacheResults stores each formula's computed result next to it. Viewers that
// do not recalculate on open (previews, most readers) show that cached value.
// A formula that evaluates to an error such as #DIV/0! stays uncached.
func (s *sheet) cacheResults() {
	for ref, formula := range s.formulas {
		if s.err != nil {
			return
		}

		result, err := s.file.CalcCellValue(s.name, ref, excelize.Options{RawCellValue: true})
		if err != nil || result == "" {
			continue
		}

		if s.err = s.file.SetCellDefault(s.name, ref, result); s.err != nil {
			return
		}

		s.err = s.file.SetCellFormula(s.name, ref, formula)
	}
}

// style applies a named style, creating it on first use.
func (s *sheet) style(col, row int, key string, build func() *excelize.Style) {
	s.styleRange(cell(col, row), cell(col, row), key, build)
}

func (s *sheet) styleRange(from, to, key string, build func() *excelize.Style) {
	if s.err != nil {
		return
	}

	id, ok := s.styles[key]
	if !ok {
		id, s.err = s.file.NewStyle(build())
		if s.err != nil {
			return
		}

		s.styles[key] = id
	}

	s.err = s.file.SetCellStyle(s.name, from, to, id)
}

func (s *sheet) currency(col, row int) {
	s.style(col, row, "currency", func() *excelize.Style {
		format := currencyFormat

		return &excelize.Style{CustomNumFmt: &format}
	})
}

func (s *sheet) date(col, row int) {
	s.style(col, row, "date", func() *excelize.Style {
		format := dateFormat

		return &excelize.Style{CustomNumFmt: &format}
	})
}

func (s *sheet) fontColor(col, row int, color string, bold bool) {
	s.style(col, row, fmt.Sprintf("font-%s-%t", color, bold), func() *excelize.Style {
		return &excelize.Style{Font: &excelize.Font{Color: color, Bold: bold}}
	})
}

// header writes the bold, filled, centred first row.
func (s *sheet) header(headers []string, fill, font string) {
	for idx, title := range headers {
		s.set(idx+1, 1, title)
	}

	s.styleRange(cell(1, 1), cell(len(headers), 1), "header", func() *excelize.Style {
		return &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: font},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}
	})

	if s.err == nil {
		s.err = s.file.SetColWidth(s.name, "A", columnName(len(headers)), columnWidth)
	}
}

func (s *sheet) title(row int, text string, size float64) {
	s.set(1, row, text)
	s.style(1, row, fmt.Sprintf("title-%.0f", size), func() *excelize.Style {
		return &excelize.Style{Font: &excelize.Font{Bold: true, Size: size}}
	})
}

// label writes "label" in column A and value in column B.
func (s *sheet) label(row int, label string, value any) {
	s.set(1, row, label)
	s.set(2, row, value)
}

func (s *sheet) timestamp(row int, now time.Time) {
	s.set(1, row, "Report generated on: "+now.Format(time.DateTime))
	s.style(1, row, "italic", func() *excelize.Style {
		return &excelize.Style{Font: &excelize.Font{Italic: true}}
	})
}

func columnName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)

	return name
}

// dataRange is the column range of the data rows, e.g. G2:G11. An empty list
// still yields a one-cell range so formulas stay valid.
func dataRange(col, rows int) string {
	last := rows + 1
	if last < 2 {
		last = 2
	}

	return fmt.Sprintf("%s2:%s%d", columnName(col), columnName(col), last)
}

func render(file *excelize.File, s *sheet) ([]byte, error) {
	defer file.Close()

	s.cacheResults()

	if s.err != nil {
		return nil, fmt.Errorf("failed to build %s sheet: %w", s.name, s.err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
