package analysis

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

// InsufficientDataError indicates fewer than two numeric columns.
type InsufficientDataError struct {
	NumericColumns int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: correlation needs at least 2 numeric columns, have %d", e.NumericColumns)
}

// Correlation holds a symmetric Pearson matrix across numeric columns.
type Correlation struct {
	Target  string
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
	// Driver is the non-target column most correlated with Target; nil
	// when every candidate correlation is undefined.
	Driver *Driver
}

// Driver names the column with the largest signed correlation against the target.
type Driver struct {
	Column string
	R      float64
}

// Correlate builds the pairwise-complete Pearson matrix over the numeric
// columns of ds and picks the strongest driver of target.
func Correlate(ds *dataset.Dataset, target string) (*Correlation, error) {
	if _, err := ds.Column(target); err != nil {
		return nil, err
	}
	cols := ds.Numeric()
	if len(cols) < 2 {
		return nil, &InsufficientDataError{NumericColumns: len(cols)}
	}
	ti := -1
	names := make([]string, len(cols))
	data := make([][]float64, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		data[i] = c.Floats()
		if c.Name == target {
			ti = i
		}
	}
	if ti < 0 {
		// present but categorical: not part of the numeric matrix
		return nil, &dataset.MissingColumnError{Column: target}
	}

	n := len(cols)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			r := pearson(data[a], data[b])
			if a == b && !math.IsNaN(r) {
				r = 1
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}

	out := &Correlation{Target: target, Columns: names, Values: mat}
	for j := 0; j < n; j++ {
		if j == ti {
			continue
		}
		r := mat[ti][j]
		if math.IsNaN(r) {
			continue
		}
		if out.Driver == nil || r > out.Driver.R {
			out.Driver = &Driver{Column: names[j], R: r}
		}
	}
	return out, nil
}

// Value looks up the correlation between two columns.
func (c *Correlation) Value(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, n := range c.Columns {
		if n == a {
			ia = i
		}
		if n == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return c.Values[ia][ib], true
}

// pearson uses rows where both values are present. Fewer than two such
// rows or zero variance on either side yields NaN.
func pearson(xs, ys []float64) float64 {
	var px, py []float64
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px = append(px, xs[i])
		py = append(py, ys[i])
	}
	if len(px) < 2 {
		return math.NaN()
	}
	var mx, my float64
	for i := range px {
		mx += px[i]
		my += py[i]
	}
	mx /= float64(len(px))
	my /= float64(len(py))
	var sxy, sxx, syy float64
	for i := range px {
		dx := px[i] - mx
		dy := py[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	r := sxy / math.Sqrt(sxx*syy)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
