package analysis

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

// NumericSummary mirrors the usual count/mean/std/min/quartiles/max block.
type NumericSummary struct {
	Column string  `json:"column" yaml:"column"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Q25    float64 `json:"q25" yaml:"q25"`
	Median float64 `json:"median" yaml:"median"`
	Q75    float64 `json:"q75" yaml:"q75"`
	Max    float64 `json:"max" yaml:"max"`
}

// CategoricalSummary holds count, distinct count and the most frequent value.
type CategoricalSummary struct {
	Column string `json:"column" yaml:"column"`
	Count  int    `json:"count" yaml:"count"`
	Unique int    `json:"unique" yaml:"unique"`
	Top    string `json:"top" yaml:"top"`
	Freq   int    `json:"freq" yaml:"freq"`
}

// CategoryCount is one value of a categorical column and its frequency.
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// CategoryShare is a CategoryCount expressed as a percentage of present rows.
type CategoryShare struct {
	Value   string  `json:"value" yaml:"value"`
	Count   int     `json:"count" yaml:"count"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Mode is the most frequent value of a column.
type Mode struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

func describeNumeric(c dataset.Column) NumericSummary {
	xs := present(c.Floats())
	s := NumericSummary{Column: c.Name, Count: len(xs)}
	if len(xs) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sample := stats.Sample{Xs: xs}
	sample.Sort()
	s.Mean = sample.Mean()
	s.Std = math.NaN()
	if len(xs) > 1 {
		s.Std = sample.StdDev()
	}
	sorted := sample.Xs
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q25 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q75 = quantile(sorted, 0.75)
	return s
}

func describeCategorical(c dataset.Column) CategoricalSummary {
	counts := countValues(c.Present())
	s := CategoricalSummary{Column: c.Name, Unique: len(counts)}
	for _, kv := range counts {
		s.Count += kv.Count
	}
	if len(counts) > 0 {
		s.Top = counts[0].Value
		s.Freq = counts[0].Count
	}
	return s
}

// countValues tallies values, most frequent first, ties in ascending order.
func countValues(vals []string) []CategoryCount {
	m := make(map[string]int)
	for _, v := range vals {
		m[v]++
	}
	out := make([]CategoryCount, 0, len(m))
	for k, v := range m {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func shares(counts []CategoryCount) []CategoryShare {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]CategoryShare, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryShare{Value: c.Value, Count: c.Count, Percent: float64(c.Count) * 100 / float64(total)})
	}
	return out
}

// modeOf picks the most frequent present value. Ties go to the smallest
// value, numerically for numeric columns.
func modeOf(c dataset.Column) Mode {
	if c.Scale != dataset.Numeric {
		counts := countValues(c.Present())
		if len(counts) == 0 {
			return Mode{}
		}
		return Mode{Value: counts[0].Value, Count: counts[0].Count}
	}
	m := make(map[float64]int)
	for _, x := range present(c.Floats()) {
		m[x]++
	}
	best, bestN := math.NaN(), 0
	for x, n := range m {
		if n > bestN || (n == bestN && x < best) {
			best, bestN = x, n
		}
	}
	if bestN == 0 {
		return Mode{}
	}
	return Mode{Value: strconv.FormatFloat(best, 'f', -1, 64), Count: bestN}
}

func present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// quantile interpolates linearly between the closest ranks at (n-1)*q.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
