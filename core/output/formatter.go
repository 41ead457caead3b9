// Package output provides output formatting for the CLI.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/diff"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/pricing"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/validation"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	RenderQuote(w io.Writer, receipt *types.Receipt) error
	RenderPreview(w io.Writer, preview *cost.Preview) error
	RenderDiff(w io.Writer, result *diff.Result) error
	RenderValidation(w io.Writer, fieldErrors []validation.FieldError) error
	RenderPrices(w io.Writer, prices *pricing.Tables) error
}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch Format(format) {
	case FormatCLI, "":
		return &CLIFormatter{Color: color}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
	}
}

// ANSI escapes used by the CLI formatter
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
)

// CLIFormatter renders aligned plain-text tables
type CLIFormatter struct {
	// Color enables ANSI colors for totals and deltas
	Color bool
}

// Format returns the format type
func (f *CLIFormatter) Format() Format { return FormatCLI }

// RenderQuote prints one line per receipt item and the total
func (f *CLIFormatter) RenderQuote(w io.Writer, receipt *types.Receipt) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if receipt.GroupID != "" {
		fmt.Fprintf(tw, "Group %s\t\n", receipt.GroupID)
	}
	if len(receipt.Items) == 0 {
		fmt.Fprintln(tw, "No charges\t")
	}
	for _, item := range receipt.Items {
		fmt.Fprintf(tw, "%s\t%s\t\n", item.Label, item.Amount)
	}
	fmt.Fprintf(tw, "%s\t%s\t\n", f.bold("Total"), f.bold(receipt.Total.String()))

	return tw.Flush()
}

// RenderPreview prints the label and the cost before and after
func (f *CLIFormatter) RenderPreview(w io.Writer, p *cost.Preview) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	label := p.Label
	if label == "" {
		label = "No change"
	}
	fmt.Fprintf(tw, "%s\t\n", f.bold(label))
	fmt.Fprintf(tw, "Field\t%s\n", p.Field)
	fmt.Fprintf(tw, "Current\t%s\n", p.OldCost)
	fmt.Fprintf(tw, "Change\t%s\n", f.delta(p.Delta))
	fmt.Fprintf(tw, "New\t%s\n", p.NewCost())

	return tw.Flush()
}

// RenderDiff prints each adjustment and the totals
func (f *CLIFormatter) RenderDiff(w io.Writer, r *diff.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, a := range r.Adjustments {
		fmt.Fprintf(tw, "%s\t%s\n", f.delta(a.Delta), a.Label)
	}
	if len(r.Adjustments) > 0 {
		fmt.Fprintln(tw, "\t")
	}
	fmt.Fprintf(tw, "Before\t%s\n", r.TotalBefore)
	fmt.Fprintf(tw, "After\t%s\n", r.TotalAfter)
	fmt.Fprintf(tw, "%s\t%s\n", f.bold("Change"), f.delta(r.Delta))

	return tw.Flush()
}

// RenderValidation prints each failed rule
func (f *CLIFormatter) RenderValidation(w io.Writer, fieldErrors []validation.FieldError) error {
	if len(fieldErrors) == 0 {
		_, err := fmt.Fprintln(w, f.paint(ansiGreen, "Group is valid"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, fe := range fieldErrors {
		fmt.Fprintf(tw, "%s\t%s\n", f.paint(ansiRed, fe.Field), fe.Message)
	}
	return tw.Flush()
}

// RenderPrices prints the table and power options with prices
func (f *CLIFormatter) RenderPrices(w io.Writer, prices *pricing.Tables) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, f.bold("Tables"))
	for _, opt := range prices.PreregTableOpts() {
		fmt.Fprintf(tw, "  %d\t%s\n", opt.Value, opt.Label)
	}
	fmt.Fprintln(tw, f.bold("Power"))
	for _, opt := range prices.PowerOpts() {
		fmt.Fprintf(tw, "  %d\t%s\n", opt.Value, opt.Label)
	}
	fmt.Fprintln(tw, f.bold("Badges"))
	fmt.Fprintf(tw, "  Group\t%s\n", types.FromWhole(prices.GroupBadgePrice))
	fmt.Fprintf(tw, "  Dealer\t%s\n", types.FromWhole(prices.DealerBadgePrice))

	return tw.Flush()
}

func (f *CLIFormatter) delta(c types.Cents) string {
	switch {
	case c > 0:
		return f.paint(ansiRed, c.Signed())
	case c < 0:
		return f.paint(ansiGreen, c.Signed())
	}
	return c.Signed()
}

func (f *CLIFormatter) bold(s string) string {
	return f.paint(ansiBold, s)
}

func (f *CLIFormatter) paint(code, s string) string {
	if !f.Color {
		return s
	}
	return code + s + ansiReset
}

// JSONFormatter renders results as JSON documents
type JSONFormatter struct {
	// Indent is the per-level indentation; empty renders compact JSON
	Indent string
}

// Format returns the format type
func (f *JSONFormatter) Format() Format { return FormatJSON }

// RenderQuote encodes the receipt
func (f *JSONFormatter) RenderQuote(w io.Writer, receipt *types.Receipt) error {
	return f.encode(w, receipt)
}

// RenderPreview encodes the preview with its new cost
func (f *JSONFormatter) RenderPreview(w io.Writer, p *cost.Preview) error {
	return f.encode(w, struct {
		*cost.Preview
		NewCost types.Cents `json:"new_cost"`
	}{p, p.NewCost()})
}

// RenderDiff encodes the diff result
func (f *JSONFormatter) RenderDiff(w io.Writer, r *diff.Result) error {
	return f.encode(w, r)
}

// RenderValidation encodes the failed rules
func (f *JSONFormatter) RenderValidation(w io.Writer, fieldErrors []validation.FieldError) error {
	if fieldErrors == nil {
		fieldErrors = []validation.FieldError{}
	}
	return f.encode(w, struct {
		Valid  bool                    `json:"valid"`
		Errors []validation.FieldError `json:"errors"`
	}{len(fieldErrors) == 0, fieldErrors})
}

// RenderPrices encodes the option lists and the raw tables
func (f *JSONFormatter) RenderPrices(w io.Writer, prices *pricing.Tables) error {
	return f.encode(w, struct {
		TableOptions []pricing.Option `json:"table_options"`
		PowerOptions []pricing.Option `json:"power_options"`
		Tables       *pricing.Tables  `json:"tables"`
		Hash         string           `json:"hash"`
	}{prices.PreregTableOpts(), prices.PreregPowerOpts(), prices, prices.Hash()})
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(v)
}
