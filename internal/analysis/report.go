// Package analysis computes the descriptive report and the correlation
// report over a loaded insurance dataset. Both are pure functions of the
// dataset; nothing here prints.
package analysis

import (
	"github.com/go-gota/gota/series"

	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

// Columns referenced by name.
const (
	ColAge      = "idade"
	ColChildren = "filhos"
	ColSmoker   = "fumante"
	ColRegion   = "regiao"
	ColCharges  = "despesas"
)

// RequiredColumns must all be present for Analyze to run.
var RequiredColumns = []string{ColAge, ColChildren, ColSmoker, ColRegion, ColCharges}

// ColumnType describes a column's storage type and scale.
type ColumnType struct {
	Name  string        `json:"name" yaml:"name"`
	Type  string        `json:"type" yaml:"type"`
	Scale dataset.Scale `json:"scale" yaml:"scale"`
}

// MissingCount is the number of absent cells in a column.
type MissingCount struct {
	Column string `json:"column" yaml:"column"`
	Count  int    `json:"count" yaml:"count"`
}

// Report is the descriptive statistics bundle, one field per section.
type Report struct {
	Types        []ColumnType         `json:"types" yaml:"types"`
	Missing      []MissingCount       `json:"missing" yaml:"missing"`
	Numeric      []NumericSummary     `json:"numeric" yaml:"numeric"`
	Categorical  []CategoricalSummary `json:"categorical" yaml:"categorical"`
	ChildrenMode Mode                 `json:"children_mode" yaml:"children_mode"`
	SmokerShare  []CategoryShare      `json:"smoker_share" yaml:"smoker_share"`
	RegionCounts []CategoryCount      `json:"region_counts" yaml:"region_counts"`
}

// Section keys, in display order.
const (
	SectionTypes        = "types"
	SectionScales       = "scales"
	SectionMissing      = "missing"
	SectionNumeric      = "numeric"
	SectionCategorical  = "categorical"
	SectionChildrenMode = "children_mode"
	SectionSmokerShare  = "smoker_share"
	SectionRegionCounts = "region_counts"
)

// Section is one labelled entry of the report.
type Section struct {
	Key   string
	Label string
	Value any
}

// Analyze computes the report. It fails with *dataset.MissingColumnError
// when any of RequiredColumns is absent.
func Analyze(ds *dataset.Dataset) (*Report, error) {
	if err := ds.Require(RequiredColumns...); err != nil {
		return nil, err
	}
	rep := &Report{}
	for _, c := range ds.Columns() {
		rep.Types = append(rep.Types, ColumnType{Name: c.Name, Type: string(c.Type), Scale: c.Scale})
		rep.Missing = append(rep.Missing, MissingCount{Column: c.Name, Count: c.MissingCount()})
		switch {
		case c.Scale == dataset.Numeric:
			rep.Numeric = append(rep.Numeric, describeNumeric(c))
		case c.Type == series.String:
			rep.Categorical = append(rep.Categorical, describeCategorical(c))
		}
	}

	children, _ := ds.Column(ColChildren)
	rep.ChildrenMode = modeOf(children)

	smoker, _ := ds.Column(ColSmoker)
	rep.SmokerShare = shares(countValues(smoker.Present()))

	region, _ := ds.Column(ColRegion)
	rep.RegionCounts = countValues(region.Present())
	return rep, nil
}

// Sections returns the report as an ordered label/value list.
func (r *Report) Sections() []Section {
	return []Section{
		{Key: SectionTypes, Label: "Types & Scales", Value: r.Types},
		{Key: SectionScales, Label: "Scales", Value: r.scales()},
		{Key: SectionMissing, Label: "Missing Values", Value: r.Missing},
		{Key: SectionNumeric, Label: "Numeric Descriptive Measures", Value: r.Numeric},
		{Key: SectionCategorical, Label: "Categorical Descriptive Measures", Value: r.Categorical},
		{Key: SectionChildrenMode, Label: "Most Frequent Children Count", Value: r.ChildrenMode},
		{Key: SectionSmokerShare, Label: "Smoker Percentage", Value: r.SmokerShare},
		{Key: SectionRegionCounts, Label: "Region Counts", Value: r.RegionCounts},
	}
}

// ColumnScale pairs a column with its scale.
type ColumnScale struct {
	Column string        `json:"column" yaml:"column"`
	Scale  dataset.Scale `json:"scale" yaml:"scale"`
}

func (r *Report) scales() []ColumnScale {
	out := make([]ColumnScale, 0, len(r.Types))
	for _, t := range r.Types {
		out = append(out, ColumnScale{Column: t.Name, Scale: t.Scale})
	}
	return out
}
