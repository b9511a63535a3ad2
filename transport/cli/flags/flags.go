package flags

import (
	"carrental/shared/failure"
	"carrental/shared/listfilter"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

const (
	Search = "search"
	Status = "status"
	From   = "from"
	To     = "to"
	Out    = "out"
	ID     = "id"
)

// Filters are the list flags every screen command accepts. Date bounds are
// only offered where the rows carry a date.
func Filters(statuses []string, dated bool) []cli.Flag {
	list := []cli.Flag{
		&cli.StringFlag{Name: Search, Aliases: []string{"s"}, Usage: "case-insensitive text to look for"},
		&cli.StringFlag{Name: Status, Usage: "one of " + strings.Join(statuses, ", "), Value: listfilter.All},
		&cli.StringFlag{Name: Out, Aliases: []string{"o"}, Usage: "export the visible rows; the extension selects the format"},
	}

	if dated {
		list = append(list,
			&cli.StringFlag{Name: From, Usage: "earliest date, yyyy-mm-dd"},
			&cli.StringFlag{Name: To, Usage: "latest date, yyyy-mm-dd"},
		)
	}

	return list
}

// Criteria reads the list flags of c.
func Criteria(c *cli.Context) (listfilter.Criteria, error) {
	from, err := listfilter.ParseDate(c.String(From))
	if err != nil {
		return listfilter.Criteria{}, failure.ValidationFromError(err)
	}

	to, err := listfilter.ParseDate(c.String(To))
	if err != nil {
		return listfilter.Criteria{}, failure.ValidationFromError(err)
	}

	return listfilter.Criteria{
		Search: c.String(Search),
		Status: c.String(Status),
		From:   from,
		To:     to,
	}, nil
}

func IDFlag(usage string) cli.Flag {
	return &cli.Int64Flag{Name: ID, Usage: usage, Required: true}
}

// RequiredID reads a positive -id.
func RequiredID(c *cli.Context) (int64, error) {
	id := c.Int64(ID)
	if id <= 0 {
		return 0, failure.Validation(fmt.Sprintf("-%s must be a positive number", ID)) // nolint:wrapcheck
	}

	return id, nil
}

// Date reads a required yyyy-mm-dd flag.
func Date(c *cli.Context, name string) (time.Time, error) {
	t, err := listfilter.ParseDate(c.String(name))
	if err != nil {
		return time.Time{}, failure.ValidationFromError(err)
	}

	if t == nil {
		return time.Time{}, failure.Validation(fmt.Sprintf("-%s is required", name)) // nolint:wrapcheck
	}

	return *t, nil
}

// Decimal reads a money flag; an unset flag is zero.
func Decimal(c *cli.Context, name string) (decimal.Decimal, error) {
	value := strings.TrimSpace(c.String(name))
	if value == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, failure.Validation(fmt.Sprintf("-%s: %q is not a number", name, value)) // nolint:wrapcheck
	}

	return d, nil
}
