package present

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
)

// TextFormatter prints each report section under a bracketed heading.
type TextFormatter struct{}

// Format writes sections in report order, then the correlation block.
func (f *TextFormatter) Format(w io.Writer, doc Document) error {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if doc.Dataset != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", doc.Dataset))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", doc.Rows))

	if doc.Report != nil {
		for _, s := range doc.Report.Sections() {
			b.WriteString("\n[" + strings.ToUpper(s.Label) + "]\n")
			writeSection(&b, s)
		}
	}
	if c := doc.Correlation; c != nil {
		b.WriteString("\n[CORRELATION MATRIX]\n")
		writeMatrix(&b, c)
		b.WriteString("\n")
		b.WriteString(DriverLine(c))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// DriverLine is the one-sentence verdict on the target's strongest driver.
func DriverLine(c *analysis.Correlation) string {
	if c.Driver == nil {
		return fmt.Sprintf("No numeric column has a defined correlation with %s.", c.Target)
	}
	return fmt.Sprintf("The variable most correlated with %s is '%s' (r=%.2f).", c.Target, c.Driver.Column, c.Driver.R)
}

func writeSection(b *strings.Builder, s analysis.Section) {
	switch v := s.Value.(type) {
	case []analysis.ColumnType:
		for _, t := range v {
			b.WriteString(fmt.Sprintf("- %s: %s\n", t.Name, t.Type))
		}
	case []analysis.ColumnScale:
		for _, t := range v {
			b.WriteString(fmt.Sprintf("- %s: %s\n", t.Column, t.Scale))
		}
	case []analysis.MissingCount:
		for _, m := range v {
			b.WriteString(fmt.Sprintf("- %s: %d\n", m.Column, m.Count))
		}
	case []analysis.NumericSummary:
		tw := newTable(b, []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"})
		for _, n := range v {
			tw.Append([]string{n.Column, strconv.Itoa(n.Count), fnum(n.Mean), fnum(n.Std), fnum(n.Min), fnum(n.Q25), fnum(n.Median), fnum(n.Q75), fnum(n.Max)})
		}
		tw.Render()
	case []analysis.CategoricalSummary:
		tw := newTable(b, []string{"column", "count", "unique", "top", "freq"})
		for _, c := range v {
			tw.Append([]string{c.Column, strconv.Itoa(c.Count), strconv.Itoa(c.Unique), safeVal(c.Top), strconv.Itoa(c.Freq)})
		}
		tw.Render()
	case analysis.Mode:
		if v.Count == 0 {
			b.WriteString("(no values)\n")
			return
		}
		b.WriteString(fmt.Sprintf("%s (%d rows)\n", v.Value, v.Count))
	case []analysis.CategoryShare:
		for _, c := range v {
			b.WriteString(fmt.Sprintf("- %s: %.2f%%\n", safeVal(c.Value), c.Percent))
		}
	case []analysis.CategoryCount:
		for _, c := range v {
			b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
		}
	default:
		b.WriteString(fmt.Sprintf("%v\n", v))
	}
}

func writeMatrix(b *strings.Builder, c *analysis.Correlation) {
	tw := newTable(b, append([]string{""}, c.Columns...))
	for i, name := range c.Columns {
		row := []string{name}
		for j := range c.Columns {
			row = append(row, fcorr(c.Values[i][j]))
		}
		tw.Append(row)
	}
	tw.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetBorder(false)
	tw.SetCenterSeparator(" ")
	tw.SetColumnSeparator(" ")
	tw.SetRowSeparator("-")
	return tw
}

func fnum(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func fcorr(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
