// Package present renders analysis results for humans and machines.
package present

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
)

// Document is everything one run prints.
type Document struct {
	Dataset     string
	Rows        int
	Report      *analysis.Report
	Correlation *analysis.Correlation // optional
}

// Formatter writes a Document to w.
type Formatter interface {
	Format(w io.Writer, doc Document) error
}

// Formats lists the names accepted by ForName.
var Formats = []string{"text", "json", "yaml"}

// ForName returns the formatter registered under name.
func ForName(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml", "yml":
		return &YAMLFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use %s)", name, strings.Join(Formats, "|"))
	}
}

// num maps undefined values to nil so encoders print null.
func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
