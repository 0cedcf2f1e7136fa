package charts

import (
	"fmt"
	"html/template"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins matches the transfer benefit histogram.
const DefaultBins = 20

// HistSeries is one overlaid distribution.
type HistSeries struct {
	Name   string
	Values []float64
	Color  string
}

// Bins is a shared binning of several series.
type Bins struct {
	Dividers []float64
	Counts   [][]float64
}

// Labels names each bin by its center.
func (b Bins) Labels() []string {
	if len(b.Dividers) < 2 {
		return nil
	}
	out := make([]string, len(b.Dividers)-1)
	for i := range out {
		hi := b.Dividers[i+1]
		if i == len(out)-1 {
			hi = math.Nextafter(hi, math.Inf(-1))
		}
		out[i] = fmt.Sprintf("%.1f", (b.Dividers[i]+hi)/2)
	}
	return out
}

// Bin splits every series into the same n equal-width bins spanning the
// combined range. The top edge is inclusive.
func Bin(n int, series ...[]float64) Bins {
	if n <= 0 {
		n = DefaultBins
	}
	var all []float64
	for _, s := range series {
		all = append(all, s...)
	}
	if len(all) == 0 {
		return Bins{}
	}
	lo, hi := floats.Min(all), floats.Max(all)
	if hi == lo {
		hi = lo + 1
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram treats the last divider as exclusive.
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := make([][]float64, len(series))
	for i, s := range series {
		sorted := slices.Clone(s)
		slices.Sort(sorted)
		counts[i] = stat.Histogram(make([]float64, n), dividers, sorted, nil)
	}
	return Bins{Dividers: dividers, Counts: counts}
}

// Histogram renders overlaid series as stacked bars over shared bins.
func Histogram(o Options, bins int, series ...HistSeries) template.HTML {
	values := make([][]float64, len(series))
	for i, s := range series {
		values[i] = s.Values
	}
	b := Bin(bins, values...)

	bars := make([]BarSeries, len(series))
	for i, s := range series {
		var counts []float64
		if i < len(b.Counts) {
			counts = b.Counts[i]
		}
		bars[i] = BarSeries{Name: s.Name, Values: counts, Color: s.Color, Stack: "hist"}
	}
	return Bar(o, b.Labels(), bars...)
}
