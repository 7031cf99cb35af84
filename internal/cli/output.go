package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/models/dto"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// row writes one tab-separated line
func row(t *tabwriter.Writer, cells ...interface{}) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(t, strings.Join(parts, "\t"))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printPagination(w io.Writer, p dto.PaginationInfo) {
	if !p.TotalsKnown() {
		if p.Page > 1 {
			fmt.Fprintf(w, "\nPage %d\n", p.Page)
		}
		return
	}
	fmt.Fprintf(w, "\nPage %d of %d (%d items)", p.Page, p.TotalPages, p.TotalItems)
	if p.HasNext() {
		fmt.Fprintf(w, ", next: --page %d", p.Page+1)
	}
	fmt.Fprintln(w)
}

// listFlags are the paging and search flags of every list command
func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "page number"},
		&cli.IntFlag{Name: "limit", Usage: "items per page"},
		&cli.StringFlag{Name: "search", Usage: "free-text search"},
		&cli.StringFlag{Name: "sort-by", Usage: "sort field"},
		&cli.StringFlag{Name: "sort-order", Usage: "asc or desc"},
	}
}

func listParams(c *cli.Context) dto.ListParams {
	return dto.ListParams{
		Page:      c.Int("page"),
		Limit:     c.Int("limit"),
		Search:    c.String("search"),
		SortBy:    c.String("sort-by"),
		SortOrder: dto.SortOrder(c.String("sort-order")),
	}
}

// optionalBool is nil unless the flag was given on the command line
func optionalBool(c *cli.Context, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}
	return dto.Ptr(c.Bool(name))
}

func optionalString(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	return dto.Ptr(c.String(name))
}

func optionalInt(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	return dto.Ptr(c.Int(name))
}

func optionalFloat(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	return dto.Ptr(c.Float64(name))
}

// requireID returns the first positional argument
func requireID(c *cli.Context, what string) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", cli.Exit(fmt.Sprintf("missing %s id", what), 2)
	}
	return id, nil
}
