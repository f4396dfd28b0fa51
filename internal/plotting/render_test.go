package plotting

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/tabled/internal/dataset"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func renderToBuffer(t *testing.T, tbl, resampled *dataset.Table, spec Spec) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(tbl, resampled, spec, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngHeader))
	return &buf
}

func TestRenderLinePNG(t *testing.T) {
	tbl := plotTable(t)
	spec := Resolve(tbl, nil, Request{Type: PlotLine, X: "ts", Y: "temp"})
	renderToBuffer(t, tbl, nil, spec)
}

func TestRenderScatterWithOverlays(t *testing.T) {
	tbl := plotTable(t)
	rs := resampledTable(t)
	spec := Resolve(tbl, rs, Request{
		Type: PlotScatter, X: "ts", Y: "temp", CompareResampled: true, Secondary: "humidity",
	})
	require.Len(t, spec.Series, 3)
	renderToBuffer(t, tbl, rs, spec)
}

func TestRenderTimeSeriesXAxis(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tbl, err := dataset.NewTable(
		dataset.NewTimeColumn("when", []time.Time{base, base.Add(time.Minute), base.Add(2 * time.Minute)}, nil),
		dataset.NewNumericColumn("v", []float64{1, 2, 3}, nil),
	)
	require.NoError(t, err)
	spec := Resolve(tbl, nil, Request{Type: PlotLine, X: "when", Y: "v"})
	renderToBuffer(t, tbl, nil, spec)
}

func TestRenderSinglePointDoesNotFail(t *testing.T) {
	tbl, err := dataset.NewTable(
		dataset.NewNumericColumn("x", []float64{1}, nil),
		dataset.NewNumericColumn("y", []float64{2}, nil),
	)
	require.NoError(t, err)
	spec := Resolve(tbl, nil, Request{Type: PlotLine, X: "x", Y: "y"})
	renderToBuffer(t, tbl, nil, spec)
}

func TestRenderBarChart(t *testing.T) {
	tbl := plotTable(t)
	spec := Resolve(tbl, nil, Request{Type: PlotBar, X: "site", Y: "temp"})
	renderToBuffer(t, tbl, nil, spec)
}

func TestRenderHistogram(t *testing.T) {
	tbl := plotTable(t)
	spec := Resolve(tbl, nil, Request{Type: PlotHistogram, X: "temp"})
	renderToBuffer(t, tbl, nil, spec)
}

func TestRenderTextXAxisLineFails(t *testing.T) {
	tbl := plotTable(t)
	spec := Resolve(tbl, nil, Request{Type: PlotLine, X: "site", Y: "temp"})
	var buf bytes.Buffer
	err := Render(tbl, nil, spec, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plottable x-axis")
}

func TestRenderBoxAndViolinNotRasterizable(t *testing.T) {
	tbl := plotTable(t)
	for _, pt := range []PlotType{PlotBox, PlotViolin} {
		spec := Resolve(tbl, nil, Request{Type: pt, X: "temp"})
		var buf bytes.Buffer
		err := Render(tbl, nil, spec, &buf)
		assert.True(t, errors.Is(err, ErrNotRasterizable), "plot type %s", pt)
	}
}

func TestBarWidthClamped(t *testing.T) {
	assert.Equal(t, 60, barWidth(1))
	assert.Equal(t, 4, barWidth(1000))
}
