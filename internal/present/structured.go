package present

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
)

// JSONFormatter writes the document as indented JSON.
type JSONFormatter struct{}

// Format encodes doc; undefined statistics become null.
func (f *JSONFormatter) Format(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toWire(doc))
}

// YAMLFormatter writes the same shape as JSONFormatter in YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toWire(doc)); err != nil {
		return err
	}
	return enc.Close()
}

type wireDoc struct {
	Dataset     string           `json:"dataset" yaml:"dataset"`
	Rows        int              `json:"rows" yaml:"rows"`
	Sections    []wireSection    `json:"sections" yaml:"sections"`
	Correlation *wireCorrelation `json:"correlation,omitempty" yaml:"correlation,omitempty"`
}

// wireSection keeps section order, which a JSON object would not.
type wireSection struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

type wireNumeric struct {
	Column string   `json:"column" yaml:"column"`
	Count  int      `json:"count" yaml:"count"`
	Mean   *float64 `json:"mean" yaml:"mean"`
	Std    *float64 `json:"std" yaml:"std"`
	Min    *float64 `json:"min" yaml:"min"`
	Q25    *float64 `json:"q25" yaml:"q25"`
	Median *float64 `json:"median" yaml:"median"`
	Q75    *float64 `json:"q75" yaml:"q75"`
	Max    *float64 `json:"max" yaml:"max"`
}

type wireCorrelation struct {
	Target  string       `json:"target" yaml:"target"`
	Columns []string     `json:"columns" yaml:"columns"`
	Matrix  [][]*float64 `json:"matrix" yaml:"matrix"`
	Driver  *wireDriver  `json:"driver" yaml:"driver"`
}

type wireDriver struct {
	Column string  `json:"column" yaml:"column"`
	R      float64 `json:"r" yaml:"r"`
}

func toWire(doc Document) wireDoc {
	out := wireDoc{Dataset: doc.Dataset, Rows: doc.Rows}
	if doc.Report != nil {
		for _, s := range doc.Report.Sections() {
			v := s.Value
			if nums, ok := v.([]analysis.NumericSummary); ok {
				v = wireNumerics(nums)
			}
			out.Sections = append(out.Sections, wireSection{Key: s.Key, Label: s.Label, Value: v})
		}
	}
	if c := doc.Correlation; c != nil {
		wc := &wireCorrelation{Target: c.Target, Columns: c.Columns}
		for _, row := range c.Values {
			wr := make([]*float64, len(row))
			for j, r := range row {
				wr[j] = num(r)
			}
			wc.Matrix = append(wc.Matrix, wr)
		}
		if c.Driver != nil {
			wc.Driver = &wireDriver{Column: c.Driver.Column, R: c.Driver.R}
		}
		out.Correlation = wc
	}
	return out
}

func wireNumerics(in []analysis.NumericSummary) []wireNumeric {
	out := make([]wireNumeric, 0, len(in))
	for _, n := range in {
		out = append(out, wireNumeric{
			Column: n.Column, Count: n.Count,
			Mean: num(n.Mean), Std: num(n.Std), Min: num(n.Min),
			Q25: num(n.Q25), Median: num(n.Median), Q75: num(n.Q75), Max: num(n.Max),
		})
	}
	return out
}
