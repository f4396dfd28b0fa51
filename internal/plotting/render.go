package plotting

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RMahshie/tabled/internal/dataset"
)

// ErrNotRasterizable marks plot types the server does not render to PNG.
// The resolved spec still carries everything a client needs to draw them.
var ErrNotRasterizable = errors.New("plot type is not rendered server-side")

const (
	chartWidth   = 1024
	chartHeight  = 512
	maxBars      = 50
	histogramBin = 20
)

// Render rasterizes a resolved spec to PNG. Box and violin plots return
// ErrNotRasterizable; line and scatter plots need a numeric or datetime
// X column.
func Render(t *dataset.Table, resampled *dataset.Table, spec Spec, w io.Writer) error {
	switch spec.Type {
	case PlotBox, PlotViolin:
		return fmt.Errorf("%s: %w", spec.Type, ErrNotRasterizable)
	case PlotBar:
		return renderBars(t, spec, w)
	case PlotHistogram:
		return renderHistogram(t, spec, w)
	default:
		return renderSeries(t, resampled, spec, w)
	}
}

func renderSeries(t *dataset.Table, resampled *dataset.Table, spec Spec, w io.Writer) error {
	var series []chart.Series
	for _, s := range spec.Series {
		src := t
		if s.Source == SourceResampled {
			src = resampled
		}
		if src == nil {
			continue
		}
		cs, err := buildSeries(src, s, spec.Type)
		if err != nil {
			return err
		}
		series = append(series, cs)
	}
	c := chart.Chart{
		Title:  spec.Title,
		Width:  chartWidth,
		Height: chartHeight,
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}
	return c.Render(chart.PNG, w)
}

func buildSeries(src *dataset.Table, s Series, pt PlotType) (chart.Series, error) {
	xcol := src.Column(s.X)
	ycol := src.Column(s.Y)
	if xcol == nil || ycol == nil {
		return nil, fmt.Errorf("series %q references missing columns", s.Name)
	}
	if ycol.Type != dataset.TypeNumeric {
		return nil, fmt.Errorf("column %q is not numeric", s.Y)
	}

	style := seriesStyle(s.Style, pt)

	switch xcol.Type {
	case dataset.TypeDatetime, dataset.TypeNumeric:
	default:
		return nil, fmt.Errorf("column %q is not numeric or datetime; %s plots need a plottable x-axis", s.X, pt)
	}

	if xcol.Type == dataset.TypeDatetime {
		var xs []time.Time
		var ys []float64
		for i := range xcol.Times {
			if xcol.Valid[i] && ycol.Valid[i] {
				xs = append(xs, xcol.Times[i])
				ys = append(ys, ycol.Nums[i])
			}
		}
		// go-chart needs at least two X values; pad a lone point.
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		return chart.TimeSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style}, nil
	}

	var xs, ys []float64
	for i := range xcol.Nums {
		if xcol.Valid[i] && ycol.Valid[i] {
			xs = append(xs, xcol.Nums[i])
			ys = append(ys, ycol.Nums[i])
		}
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: style}, nil
}

// seriesStyle maps a spec style onto go-chart stroke/dot styling: scatter
// series render dots only, everything else strokes.
func seriesStyle(s Style, pt PlotType) chart.Style {
	col := drawing.ColorFromHex(trimHash(s.Color))
	if pt == PlotScatter {
		return chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3 + s.Width,
			DotColor:    col,
		}
	}
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: s.Width,
	}
	if s.Dash {
		st.StrokeDashArray = []float64{5.0, 5.0}
	}
	return st
}

func renderBars(t *dataset.Table, spec Spec, w io.Writer) error {
	xcol := t.Column(spec.X)
	ycol := t.Column(spec.Y)
	if xcol == nil || ycol == nil {
		return fmt.Errorf("bar plot references missing columns")
	}
	if ycol.Type != dataset.TypeNumeric {
		return fmt.Errorf("column %q is not numeric", spec.Y)
	}
	var bars []chart.Value
	for i := range xcol.Text {
		if !ycol.Valid[i] {
			continue
		}
		bars = append(bars, chart.Value{Label: xcol.Text[i], Value: ycol.Nums[i]})
		if len(bars) == maxBars {
			break
		}
	}
	if len(bars) == 0 {
		return fmt.Errorf("no plottable rows for bar chart")
	}
	bc := chart.BarChart{
		Title:    spec.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(len(bars)),
		Bars:     bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderHistogram(t *dataset.Table, spec Spec, w io.Writer) error {
	col := t.Column(spec.X)
	if col == nil {
		return fmt.Errorf("histogram references missing column %q", spec.X)
	}
	if col.Type != dataset.TypeNumeric {
		return fmt.Errorf("column %q is not numeric", spec.X)
	}
	var vals []float64
	for i, v := range col.Nums {
		if col.Valid[i] && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return fmt.Errorf("no plottable values in column %q", spec.X)
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	bins := histogramBin
	width := (hi - lo) / float64(bins)
	if width == 0 {
		bins, width = 1, 1
	}
	counts := make([]int, bins)
	for _, v := range vals {
		b := int((v - lo) / width)
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	bars := make([]chart.Value, bins)
	for i, n := range counts {
		bars[i] = chart.Value{
			Label: fmt.Sprintf("%.3g", lo+width*(float64(i)+0.5)),
			Value: float64(n),
		}
	}
	bc := chart.BarChart{
		Title:    spec.Title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth(bins),
		Bars:     bars,
	}
	return bc.Render(chart.PNG, w)
}

func barWidth(n int) int {
	w := (chartWidth - 100) / n
	if w < 4 {
		w = 4
	}
	if w > 60 {
		w = 60
	}
	return w
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
