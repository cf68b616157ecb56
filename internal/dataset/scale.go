package dataset

import "github.com/go-gota/gota/series"

// Scale is the measurement scale of a column.
type Scale int

const (
	Categorical Scale = iota
	Numeric
)

func (s Scale) String() string {
	if s == Numeric {
		return "numeric"
	}
	return "categorical"
}

// MarshalText lets JSON and YAML encoders print the scale name.
func (s Scale) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// ScaleOf classifies a storage type. Only integer and floating-point
// columns are numeric; text and boolean columns are categorical.
func ScaleOf(t series.Type) Scale {
	switch t {
	case series.Int, series.Float:
		return Numeric
	default:
		return Categorical
	}
}
