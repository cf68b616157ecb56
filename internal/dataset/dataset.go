package dataset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// nanValues are the cell spellings treated as absent.
var nanValues = []string{"", "NA", "NaN", "<nil>"}

// Dataset is the read-only, in-memory form of a loaded CSV.
type Dataset struct {
	name    string
	rows    int
	columns []Column
	index   map[string]int
}

// Column is a typed view over one dataset column.
type Column struct {
	Name  string
	Type  series.Type
	Scale Scale

	values series.Series
}

// Load reads a delimited file with a header row; .tsv files are tab-separated,
// everything else comma-separated.
// Column and row order are preserved; each column gets the most specific
// type (int, float, bool, string) that fits all its present values.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(skipBOM(f),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nanValues),
		dataframe.WithDelimiter(sniffDelimiter(path)),
	)
	if df.Err != nil {
		return nil, &FormatError{Path: path, Err: df.Err}
	}
	return fromFrame(filepath.Base(path), df)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark, as spreadsheet exports write one.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// FromRecords builds a Dataset from in-memory records; the first record is the header.
func FromRecords(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, &FormatError{Err: errors.New("no header row")}
	}
	width := len(records[0])
	for i, rec := range records {
		if len(rec) != width {
			return nil, &FormatError{Err: fmt.Errorf("record %d: wrong number of fields (%d, want %d)", i+1, len(rec), width)}
		}
	}
	df := dataframe.LoadRecords(records, dataframe.HasHeader(true), dataframe.DetectTypes(true), dataframe.NaNValues(nanValues))
	if df.Err != nil {
		return nil, &FormatError{Err: df.Err}
	}
	return fromFrame(name, df)
}

func fromFrame(name string, df dataframe.DataFrame) (*Dataset, error) {
	names := df.Names()
	types := df.Types()
	ds := &Dataset{
		name:    name,
		rows:    df.Nrow(),
		columns: make([]Column, len(names)),
		index:   make(map[string]int, len(names)),
	}
	for i, n := range names {
		s := df.Col(n)
		if s.Err != nil {
			return nil, &FormatError{Path: name, Err: s.Err}
		}
		t := types[i]
		if t == series.String && ds.rows > 0 && allMissing(s) {
			// no values to infer from: an empty column is numeric
			t = series.Float
			s = series.New(s.Records(), series.Float, n)
		}
		ds.columns[i] = Column{Name: n, Type: t, Scale: ScaleOf(t), values: s}
		ds.index[n] = i
	}
	return ds, nil
}

func allMissing(s series.Series) bool {
	for _, m := range s.IsNaN() {
		if !m {
			return false
		}
	}
	return true
}

// Name is the base name of the source file.
func (d *Dataset) Name() string { return d.name }

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.rows }

// Columns returns the column descriptors in file order.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Numeric returns the numeric columns in file order.
func (d *Dataset) Numeric() []Column {
	var out []Column
	for _, c := range d.columns {
		if c.Scale == Numeric {
			out = append(out, c)
		}
	}
	return out
}

// Column looks a column up by exact name.
func (d *Dataset) Column(name string) (Column, error) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, &MissingColumnError{Column: name}
	}
	return d.columns[i], nil
}

// Require reports the first of names that is absent.
func (d *Dataset) Require(names ...string) error {
	for _, n := range names {
		if _, ok := d.index[n]; !ok {
			return &MissingColumnError{Column: n}
		}
	}
	return nil
}

// Missing flags absent cells.
func (c Column) Missing() []bool { return c.values.IsNaN() }

// MissingCount counts absent cells.
func (c Column) MissingCount() int {
	n := 0
	for _, m := range c.values.IsNaN() {
		if m {
			n++
		}
	}
	return n
}

// Floats returns the column as float64, NaN where absent or non-numeric.
func (c Column) Floats() []float64 {
	if c.Scale != Numeric {
		out := make([]float64, c.values.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	return c.values.Float()
}

// Strings returns the raw cell text, "" where absent.
func (c Column) Strings() []string {
	recs := c.values.Records()
	for i, m := range c.values.IsNaN() {
		if m {
			recs[i] = ""
		}
	}
	return recs
}

// Present returns the non-missing cell texts in row order.
func (c Column) Present() []string {
	recs := c.values.Records()
	miss := c.values.IsNaN()
	out := make([]string, 0, len(recs))
	for i, v := range recs {
		if !miss[i] {
			out = append(out, v)
		}
	}
	return out
}
