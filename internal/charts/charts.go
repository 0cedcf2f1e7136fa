// Package charts builds embeddable ECharts snippets with go-echarts.
package charts

import (
	"html/template"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

// AssetsHost serves echarts.min.js; the page layout loads it once.
const AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

const (
	defaultWidth  = "100%"
	defaultHeight = "420px"
)

// Options are shared by every builder.
type Options struct {
	// ID becomes the chart's DOM id; it must be unique on the page.
	ID       string
	Title    string
	Subtitle string
	XName    string
	YName    string
	Height   string
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
}

// scriptBodyEscaper keeps option JSON from closing the script element or
// opening an HTML comment; both forms are equivalent inside JS strings.
var scriptBodyEscaper = strings.NewReplacer("</", `<\/`, "<!--", `<\!--`)

func snippet(c snippetRenderer) template.HTML {
	s := c.RenderSnippet()
	return template.HTML(s.Element + escapeScript(s.Script))
}

// escapeScript escapes the body between the opening <script ...> tag and the
// final </script>, leaving the tags themselves intact.
func escapeScript(script string) string {
	open := strings.Index(script, "<script")
	if open < 0 {
		return scriptBodyEscaper.Replace(script)
	}
	bodyStart := strings.Index(script[open:], ">")
	bodyEnd := strings.LastIndex(script, "</script>")
	if bodyStart < 0 || bodyEnd < 0 {
		return scriptBodyEscaper.Replace(script)
	}
	bodyStart += open + 1
	if bodyEnd < bodyStart {
		return script
	}
	return script[:bodyStart] + scriptBodyEscaper.Replace(script[bodyStart:bodyEnd]) + script[bodyEnd:]
}

func initOpts(o Options) charts.GlobalOpts {
	height := o.Height
	if height == "" {
		height = defaultHeight
	}
	return charts.WithInitializationOpts(opts.Initialization{
		Width:      defaultWidth,
		Height:     height,
		ChartID:    sanitizeID(o.ID),
		AssetsHost: AssetsHost,
	})
}

func titleOpts(o Options) charts.GlobalOpts {
	return charts.WithTitleOpts(opts.Title{Title: o.Title, Subtitle: o.Subtitle})
}

func axisOpts(o Options, xType string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithXAxisOpts(opts.XAxis{Name: o.XName, Type: xType}),
		charts.WithYAxisOpts(opts.YAxis{Name: o.YName}),
	}
}

func tooltip(trigger string) charts.GlobalOpts {
	return charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: trigger})
}

func legend(show bool) charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{Show: opts.Bool(show), Top: "bottom"})
}

// sanitizeID keeps ids usable as JavaScript identifiers; go-echarts derives
// the chart variable name from it.
func sanitizeID(id string) string {
	b := []byte(id)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
