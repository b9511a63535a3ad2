package response

import (
	"carrental/shared/failure"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

const (
	ExitOK           = 0
	ExitInternal     = 1
	ExitValidation   = 2
	ExitUnauthorized = 3
	ExitNotFound     = 4
	ExitConflict     = 5
	ExitDataAccess   = 6
)

// styled colours output only for terminals; buffers and pipes get plain text.
func styled(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)

	if _, ok := w.(*os.File); !ok {
		c.DisableColor()
	}

	return c
}

// WithTable prints rows as aligned columns under a header line.
func WithTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to print table: %w", err)
	}

	return nil
}

// WithValues prints "label: value" lines, labels padded to one width.
func WithValues(w io.Writer, values [][2]string) {
	width := 0
	for _, v := range values {
		width = max(width, len(v[0]))
	}

	label := styled(w, color.Bold)

	for _, v := range values {
		label.Fprintf(w, "%-*s", width+1, v[0]+":")
		fmt.Fprintf(w, " %s\n", v[1])
	}
}

func WithStatus(w io.Writer, message string) {
	styled(w, color.FgCyan).Fprintln(w, message)
}

func WithMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func WithError(w io.Writer, err error) {
	styled(w, color.FgRed, color.Bold).Fprintln(w, "Error: "+err.Error())
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch failure.GetCode(err) {
	case failure.CodeValidation:
		return ExitValidation
	case failure.CodeUnauthorized:
		return ExitUnauthorized
	case failure.CodeNotFound:
		return ExitNotFound
	case failure.CodeConflict:
		return ExitConflict
	case failure.CodeDataAccess:
		return ExitDataAccess
	default:
		return ExitInternal
	}
}
