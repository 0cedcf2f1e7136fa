package charts

import (
	"fmt"
	"math"
)

// rdYlGn is the ColorBrewer RdYlGn diverging scheme, red (low) to green (high).
var rdYlGn = [][3]float64{
	{165, 0, 38},
	{215, 48, 39},
	{244, 109, 67},
	{253, 174, 97},
	{254, 224, 139},
	{255, 255, 191},
	{217, 239, 139},
	{166, 217, 106},
	{102, 189, 99},
	{26, 152, 80},
	{0, 104, 55},
}

// Palette cycles through series colors for multi-manager charts.
var Palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

const (
	ColorSuccess  = "#2ca02c"
	ColorFailure  = "#d62728"
	ColorPositive = "rgba(0, 250, 146, 0.7)"
	ColorNegative = "rgba(239, 85, 59, 0.7)"
)

// SeriesColor returns the palette color for the i-th series.
func SeriesColor(i int) string {
	return Palette[((i%len(Palette))+len(Palette))%len(Palette)]
}

// RdYlGn maps v within [lo, hi] onto the red-yellow-green scale. A degenerate
// range maps everything to the midpoint.
func RdYlGn(v, lo, hi float64) string {
	t := 0.5
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	if math.IsNaN(t) {
		t = 0.5
	}
	t = math.Max(0, math.Min(1, t))

	pos := t * float64(len(rdYlGn)-1)
	i := int(math.Floor(pos))
	if i >= len(rdYlGn)-1 {
		return hex(rdYlGn[len(rdYlGn)-1])
	}
	frac := pos - float64(i)
	a, b := rdYlGn[i], rdYlGn[i+1]
	return hex([3]float64{
		a[0] + (b[0]-a[0])*frac,
		a[1] + (b[1]-a[1])*frac,
		a[2] + (b[2]-a[2])*frac,
	})
}

func hex(c [3]float64) string {
	return fmt.Sprintf("#%02x%02x%02x", int(math.Round(c[0])), int(math.Round(c[1])), int(math.Round(c[2])))
}

// Scale bounds a set of values for RdYlGn.
func Scale(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
