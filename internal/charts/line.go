package charts

import (
	"html/template"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineSeries is one series over the shared x axis. NaN values are gaps.
// Markers-only series draw symbols without connecting lines; Sizes gives a
// per-point symbol size.
type LineSeries struct {
	Name        string
	Values      []float64
	Sizes       []int
	Symbol      string
	Color       string
	MarkersOnly bool
}

// Line renders a multi-series line chart.
func Line(o Options, x []string, series ...LineSeries) template.HTML {
	line := charts.NewLine()
	global := []charts.GlobalOpts{initOpts(o), titleOpts(o), tooltip("axis"), legend(true)}
	line.SetGlobalOptions(append(global, axisOpts(o, "category")...)...)
	line.SetXAxis(x)

	for _, s := range series {
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			d := opts.LineData{Name: at(x, i), Value: v, Symbol: s.Symbol}
			if math.IsNaN(v) {
				d.Value = "-"
			}
			if i < len(s.Sizes) {
				d.SymbolSize = s.Sizes[i]
			}
			data[i] = d
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ConnectNulls: opts.Bool(!s.MarkersOnly)}),
		}
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		if s.MarkersOnly {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Width: 0}))
		} else if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Color: s.Color}))
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return snippet(line)
}
