// Package chart draws the dataset's fixed set of charts to image files.
package chart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

// Chart names, also used as file base names.
const (
	AgeHistogram    = "age_histogram"
	SmokerCount     = "smoker_count"
	ChargesVsAge    = "charges_vs_age"
	ChargesBySmoker = "charges_by_smoker"
)

const histBins = 20

// Charts lists every chart Render draws, in drawing order.
func Charts() []string {
	return []string{AgeHistogram, SmokerCount, ChargesVsAge, ChargesBySmoker}
}

// Formats accepted by Renderer.Format.
var Formats = []string{"png", "svg", "pdf"}

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// Renderer writes charts into Dir.
type Renderer struct {
	Dir    string
	Format string // png|svg|pdf
	Width  vg.Length
	Height vg.Length
	Logger zerolog.Logger
}

// NewRenderer returns a Renderer with default page size.
func NewRenderer(dir, format string, logger zerolog.Logger) *Renderer {
	return &Renderer{
		Dir:    dir,
		Format: format,
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
		Logger: logger.With().Str("module", "chart").Logger(),
	}
}

// Render draws every chart and returns the written paths.
func (r *Renderer) Render(ds *dataset.Dataset) ([]string, error) {
	if err := ds.Require(analysis.ColAge, analysis.ColSmoker, analysis.ColCharges); err != nil {
		return nil, err
	}
	format := strings.ToLower(strings.TrimSpace(r.Format))
	if format == "" {
		format = "png"
	}
	if !contains(Formats, format) {
		return nil, fmt.Errorf("unsupported chart format: %s (use %s)", r.Format, strings.Join(Formats, "|"))
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	builders := map[string]func(*dataset.Dataset) (*plot.Plot, error){
		AgeHistogram:    ageHistogram,
		SmokerCount:     smokerCount,
		ChargesVsAge:    chargesVsAge,
		ChargesBySmoker: chargesBySmoker,
	}
	var written []string
	for _, name := range Charts() {
		p, err := builders[name](ds)
		if err != nil {
			return written, fmt.Errorf("chart %s: %w", name, err)
		}
		path := filepath.Join(r.Dir, name+"."+format)
		if err := p.Save(r.Width, r.Height, path); err != nil {
			return written, fmt.Errorf("save chart %s: %w", name, err)
		}
		r.Logger.Debug().Str("chart", name).Str("path", path).Msg("chart written")
		written = append(written, path)
	}
	return written, nil
}

func ageHistogram(ds *dataset.Dataset) (*plot.Plot, error) {
	age, _ := ds.Column(analysis.ColAge)
	vals := finite(age.Floats())
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = "Age distribution"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(vals), histBins)
	if err != nil {
		return nil, err
	}
	p.Add(h)

	if curve := kdeCurve(vals, histBins); curve != nil {
		l, err := plotter.NewLine(curve)
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
	}
	return p, nil
}

// kdeCurve samples a Gaussian KDE scaled to histogram counts. It returns
// nil when the sample has no spread.
func kdeCurve(vals []float64, bins int) plotter.XYs {
	sample := stats.Sample{Xs: vals}
	sd := sample.StdDev()
	if len(vals) < 2 || sd == 0 || math.IsNaN(sd) {
		return nil
	}
	lo, hi := sample.Bounds()
	// Scott's rule
	bw := 1.06 * sd * math.Pow(float64(len(vals)), -0.2)
	kde := &stats.KDE{Sample: sample, Kernel: stats.GaussianKernel, Bandwidth: bw}

	scale := float64(len(vals)) * (hi - lo) / float64(bins)
	const steps = 200
	pts := make(plotter.XYs, steps+1)
	for i := 0; i <= steps; i++ {
		x := lo + (hi-lo)*float64(i)/steps
		pts[i].X = x
		pts[i].Y = kde.PDF(x) * scale
	}
	return pts
}

func smokerCount(ds *dataset.Dataset) (*plot.Plot, error) {
	smoker, _ := ds.Column(analysis.ColSmoker)
	counts := tally(smoker.Present())
	if len(counts) == 0 {
		return nil, ErrNoData
	}
	labels := make([]string, len(counts))
	vals := make(plotter.Values, len(counts))
	for i, c := range counts {
		labels[i] = c.value
		vals[i] = float64(c.count)
	}
	p := plot.New()
	p.Title.Text = "Smokers"
	p.X.Label.Text = "Smoker"
	p.Y.Label.Text = "Count"

	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return nil, err
	}
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

func chargesVsAge(ds *dataset.Dataset) (*plot.Plot, error) {
	age, _ := ds.Column(analysis.ColAge)
	charges, _ := ds.Column(analysis.ColCharges)
	xs, ys := age.Floats(), charges.Floats()
	var pts plotter.XYs
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	if len(pts) == 0 {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = "Charges vs age"
	p.X.Label.Text = "Age"
	p.Y.Label.Text = "Charges"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	p.Add(s)
	return p, nil
}

func chargesBySmoker(ds *dataset.Dataset) (*plot.Plot, error) {
	smoker, _ := ds.Column(analysis.ColSmoker)
	charges, _ := ds.Column(analysis.ColCharges)
	groups := map[string][]float64{}
	cats, ys := smoker.Strings(), charges.Floats()
	miss := smoker.Missing()
	for i := range cats {
		if miss[i] || !isFinite(ys[i]) {
			continue
		}
		groups[cats[i]] = append(groups[cats[i]], ys[i])
	}
	if len(groups) == 0 {
		return nil, ErrNoData
	}
	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = "Charges by smoker status"
	p.X.Label.Text = "Smoker"
	p.Y.Label.Text = "Charges"
	for i, name := range names {
		b, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(groups[name]))
		if err != nil {
			return nil, err
		}
		p.Add(b)
	}
	p.NominalX(names...)
	return p, nil
}

type valueCount struct {
	value string
	count int
}

func tally(vals []string) []valueCount {
	m := map[string]int{}
	for _, v := range vals {
		m[v]++
	}
	out := make([]valueCount, 0, len(m))
	for k, v := range m {
		out = append(out, valueCount{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].value < out[j].value })
	return out
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isFinite(x) {
			out = append(out, x)
		}
	}
	return out
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
