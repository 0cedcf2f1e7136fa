package charts

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Slice is one pie segment.
type Slice struct {
	Name  string
	Value float64
	Color string
}

// Pie renders a pie chart with percentage labels.
func Pie(o Options, slices []Slice) template.HTML {
	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts(o), titleOpts(o), tooltip("item"), legend(false))

	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value}
		if s.Color != "" {
			data[i].ItemStyle = &opts.ItemStyle{Color: s.Color}
		}
	}
	pie.AddSeries(o.Title, data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return snippet(pie)
}
