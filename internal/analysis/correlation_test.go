package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/seguro-stats/internal/dataset"
)

func TestCorrelateMatrixProperties(t *testing.T) {
	corr, err := Correlate(mustDataset(t, policyRows), ColCharges)
	require.NoError(t, err)
	require.Equal(t, []string{"idade", "imc", "filhos", "despesas"}, corr.Columns)

	n := len(corr.Columns)
	for i := 0; i < n; i++ {
		require.Equal(t, 1.0, corr.Values[i][i], corr.Columns[i])
		for j := 0; j < n; j++ {
			require.Equal(t, corr.Values[i][j], corr.Values[j][i])
			require.LessOrEqual(t, math.Abs(corr.Values[i][j]), 1.0)
		}
	}
}

func TestCorrelateDriver(t *testing.T) {
	ds := mustDataset(t, [][]string{
		{"idade", "filhos", "fumante", "despesas", "regiao"},
		{"20", "3", "no", "100", "n"},
		{"30", "1", "no", "210", "n"},
		{"40", "2", "yes", "290", "s"},
		{"50", "0", "yes", "405", "s"},
	})
	corr, err := Correlate(ds, ColCharges)
	require.NoError(t, err)
	require.NotNil(t, corr.Driver)
	require.Equal(t, "idade", corr.Driver.Column)
	require.Greater(t, corr.Driver.R, 0.99)

	r, ok := corr.Value("filhos", "despesas")
	require.True(t, ok)
	require.Less(t, r, 0.0)
	_, ok = corr.Value("fumante", "despesas")
	require.False(t, ok, "categorical columns are not in the matrix")
}

func TestCorrelateSignedNotAbsolute(t *testing.T) {
	ds := mustDataset(t, [][]string{
		{"a", "b", "y"},
		{"1", "10", "1"},
		{"2", "7", "2"},
		{"3", "9", "3"},
		{"4", "1", "4"},
	})
	corr, err := Correlate(ds, "y")
	require.NoError(t, err)
	rb, _ := corr.Value("b", "y")
	require.Less(t, rb, -0.7)
	require.Equal(t, "a", corr.Driver.Column)
}

func TestCorrelateZeroVarianceIsNaN(t *testing.T) {
	ds := mustDataset(t, [][]string{
		{"flat", "x", "y"},
		{"5", "1", "2"},
		{"5", "2", "4"},
		{"5", "3", "7"},
	})
	corr, err := Correlate(ds, "y")
	require.NoError(t, err)
	r, _ := corr.Value("flat", "y")
	require.True(t, math.IsNaN(r))
	r, _ = corr.Value("flat", "flat")
	require.True(t, math.IsNaN(r))
	require.Equal(t, "x", corr.Driver.Column)
}

func TestCorrelateSkipsIncompletePairs(t *testing.T) {
	ds := mustDataset(t, [][]string{
		{"x", "y"},
		{"1", "2"},
		{"2", ""},
		{"3", "6"},
		{"", "8"},
		{"4", "8"},
	})
	corr, err := Correlate(ds, "y")
	require.NoError(t, err)
	r, _ := corr.Value("x", "y")
	require.InDelta(t, pearson([]float64{1, 3, 4}, []float64{2, 6, 8}), r, 1e-12)
}

func TestCorrelateErrors(t *testing.T) {
	t.Run("missing target", func(t *testing.T) {
		ds := mustDataset(t, [][]string{{"a", "b"}, {"1", "2"}, {"2", "3"}})
		_, err := Correlate(ds, "despesas")
		var mce *dataset.MissingColumnError
		require.ErrorAs(t, err, &mce)
		require.Equal(t, "despesas", mce.Column)
	})
	t.Run("categorical target", func(t *testing.T) {
		ds := mustDataset(t, [][]string{{"a", "b", "c"}, {"1", "2", "x"}, {"2", "3", "y"}})
		_, err := Correlate(ds, "c")
		var mce *dataset.MissingColumnError
		require.ErrorAs(t, err, &mce)
	})
	t.Run("one numeric column", func(t *testing.T) {
		ds := mustDataset(t, [][]string{{"despesas", "fumante"}, {"1", "yes"}, {"2", "no"}})
		_, err := Correlate(ds, "despesas")
		var ide *InsufficientDataError
		require.ErrorAs(t, err, &ide)
		require.Equal(t, 1, ide.NumericColumns)
	})
}

func TestPearsonSelfAndSymmetry(t *testing.T) {
	a := []float64{1.5, 2, 7, 3.25, 9}
	b := []float64{4, 1, 0.5, 8, 2}
	require.InDelta(t, 1.0, pearson(a, a), 1e-12)
	require.Equal(t, pearson(a, b), pearson(b, a))
}
