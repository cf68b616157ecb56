package present

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

func sampleDoc(t *testing.T) Document {
	t.Helper()
	ds, err := dataset.FromRecords("seguro_de_vida.csv", [][]string{
		{"idade", "filhos", "fumante", "regiao", "despesas", "flat"},
		{"19", "0", "yes", "southwest", "16884.92", "1"},
		{"18", "1", "no", "southeast", "1725.55", "1"},
		{"28", "3", "no", "southeast", "4449.46", "1"},
	})
	require.NoError(t, err)
	rep, err := analysis.Analyze(ds)
	require.NoError(t, err)
	corr, err := analysis.Correlate(ds, analysis.ColCharges)
	require.NoError(t, err)
	return Document{Dataset: ds.Name(), Rows: ds.Rows(), Report: rep, Correlation: corr}
}

func TestTextFormatterSectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{}).Format(&buf, sampleDoc(t)))
	out := buf.String()

	headings := []string{
		"[DATASET SUMMARY]",
		"[TYPES & SCALES]",
		"[SCALES]",
		"[MISSING VALUES]",
		"[NUMERIC DESCRIPTIVE MEASURES]",
		"[CATEGORICAL DESCRIPTIVE MEASURES]",
		"[MOST FREQUENT CHILDREN COUNT]",
		"[SMOKER PERCENTAGE]",
		"[REGION COUNTS]",
		"[CORRELATION MATRIX]",
	}
	last := -1
	for _, h := range headings {
		i := strings.Index(out, h)
		require.Greater(t, i, last, "heading %s out of order:\n%s", h, out)
		last = i
	}
	require.Contains(t, out, "File: seguro_de_vida.csv")
	require.Contains(t, out, "- idade: int")
	require.Contains(t, out, "- fumante: categorical")
	require.Contains(t, out, "- no: 66.67%")
	require.Contains(t, out, "- southeast: 2")
	require.Contains(t, out, "0 (1 rows)")
	require.Contains(t, out, "NaN", "zero-variance column prints NaN")
	require.Contains(t, out, "The variable most correlated with despesas is '")
}

func TestDriverLine(t *testing.T) {
	c := &analysis.Correlation{Target: "despesas", Driver: &analysis.Driver{Column: "idade", R: 0.29901}}
	require.Equal(t, "The variable most correlated with despesas is 'idade' (r=0.30).", DriverLine(c))

	c.Driver = nil
	require.Equal(t, "No numeric column has a defined correlation with despesas.", DriverLine(c))
}

func TestJSONFormatterNullsUndefined(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, sampleDoc(t)))

	var got struct {
		Dataset  string `json:"dataset"`
		Rows     int    `json:"rows"`
		Sections []struct {
			Key   string          `json:"key"`
			Value json.RawMessage `json:"value"`
		} `json:"sections"`
		Correlation struct {
			Columns []string     `json:"columns"`
			Matrix  [][]*float64 `json:"matrix"`
			Driver  struct {
				Column string `json:"column"`
			} `json:"driver"`
		} `json:"correlation"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 3, got.Rows)
	require.Len(t, got.Sections, 8)
	require.Equal(t, analysis.SectionTypes, got.Sections[0].Key)
	require.Equal(t, analysis.SectionRegionCounts, got.Sections[7].Key)
	require.Contains(t, string(got.Sections[1].Value), `"scale": "numeric"`)

	flat := -1
	for i, c := range got.Correlation.Columns {
		if c == "flat" {
			flat = i
		}
	}
	require.GreaterOrEqual(t, flat, 0)
	require.Nil(t, got.Correlation.Matrix[flat][flat])
	require.NotEqual(t, "flat", got.Correlation.Driver.Column)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).Format(&buf, sampleDoc(t)))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "seguro_de_vida.csv", got["dataset"])
	sections, ok := got["sections"].([]any)
	require.True(t, ok)
	require.Len(t, sections, 8)
}

func TestForName(t *testing.T) {
	for _, name := range []string{"", "text", "JSON", "yaml", "yml"} {
		f, err := ForName(name)
		require.NoError(t, err, name)
		require.NotNil(t, f)
	}
	_, err := ForName("xml")
	require.Error(t, err)
}

func TestNum(t *testing.T) {
	require.Nil(t, num(math.NaN()))
	require.Nil(t, num(math.Inf(1)))
	require.Equal(t, 2.5, *num(2.5))
}
