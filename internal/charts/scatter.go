package charts

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Point is one marker on a value/value scatter.
type Point struct {
	Name  string
	X, Y  float64
	Size  int
	Color string
}

const (
	minSymbolSize = 8
	maxSymbolSize = 40
)

// Scatter renders one series per point so every marker keeps its own color
// and legend entry.
func Scatter(o Options, points []Point) template.HTML {
	sc := charts.NewScatter()
	global := []charts.GlobalOpts{
		initOpts(o), titleOpts(o), tooltip("item"), legend(true),
		charts.WithXAxisOpts(opts.XAxis{Name: o.XName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: o.YName, Type: "value"}),
	}
	sc.SetGlobalOptions(global...)

	for _, p := range points {
		data := []opts.ScatterData{{
			Name:       p.Name,
			Value:      []interface{}{p.X, p.Y},
			Symbol:     "circle",
			SymbolSize: p.Size,
		}}
		var seriesOpts []charts.SeriesOpts
		if p.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: p.Color}))
		}
		sc.AddSeries(p.Name, data, seriesOpts...)
	}
	return snippet(sc)
}

// SizeScale maps v linearly from [lo, hi] to a readable symbol size.
func SizeScale(v, lo, hi float64) int {
	if hi <= lo {
		return (minSymbolSize + maxSymbolSize) / 2
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return minSymbolSize + int(t*float64(maxSymbolSize-minSymbolSize)+0.5)
}
