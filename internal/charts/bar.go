package charts

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// BarSeries is one series over the shared category axis. Colors, when set,
// colors each bar individually and wins over Color.
type BarSeries struct {
	Name   string
	Values []float64
	Colors []string
	Color  string
	Stack  string
	Labels bool
}

// Bar renders a category bar chart. Series sharing a Stack are stacked.
func Bar(o Options, categories []string, series ...BarSeries) template.HTML {
	bar := charts.NewBar()
	global := []charts.GlobalOpts{initOpts(o), titleOpts(o), tooltip("axis"), legend(len(series) > 1)}
	bar.SetGlobalOptions(append(global, axisOpts(o, "category")...)...)
	bar.SetXAxis(categories)

	for _, s := range series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Name: at(categories, i), Value: v}
			if c := at(s.Colors, i); c != "" {
				data[i].ItemStyle = &opts.ItemStyle{Color: c}
			}
		}
		var seriesOpts []charts.SeriesOpts
		if s.Stack != "" {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: s.Stack}))
		}
		if s.Color != "" {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}))
		}
		if s.Labels {
			seriesOpts = append(seriesOpts, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
		}
		bar.AddSeries(s.Name, data, seriesOpts...)
	}
	return snippet(bar)
}

func at(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}
