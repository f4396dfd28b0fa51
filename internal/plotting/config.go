// Package plotting resolves user plot selections into fully-specified,
// always-valid plot specs and renders them with go-chart.
package plotting

import (
	"fmt"
	"strings"

	"github.com/RMahshie/tabled/internal/dataset"
)

// PlotType enumerates the supported chart types.
type PlotType string

const (
	PlotScatter   PlotType = "scatter"
	PlotLine      PlotType = "line"
	PlotBar       PlotType = "bar"
	PlotHistogram PlotType = "histogram"
	PlotBox       PlotType = "box"
	PlotViolin    PlotType = "violin"
)

// PlotTypes lists the supported chart types.
func PlotTypes() []PlotType {
	return []PlotType{PlotScatter, PlotLine, PlotBar, PlotHistogram, PlotBox, PlotViolin}
}

// ParsePlotType parses a plot type token, case-insensitively.
func ParsePlotType(s string) (PlotType, error) {
	token := PlotType(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range PlotTypes() {
		if token == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown plot type %q", s)
}

// Overlay modes of a resolved spec.
const (
	OverlaySingle    = "single"
	OverlayCompare   = "compare-original-vs-resampled"
	OverlaySecondary = "add-secondary-signal"
)

// Series source tags.
const (
	SourceOriginal  = "original"
	SourceResampled = "resampled"
	SourceSecondary = "secondary"
)

// Fixed series styles: the original series is solid blue, the resampled
// overlay is dashed and heavier (matching the original viewer's styling),
// and the secondary signal gets a distinct dashed green.
var (
	styleOriginal  = Style{Color: "#1f77b4", Width: 1}
	styleResampled = Style{Color: "#d62728", Width: 3, Dash: true}
	styleSecondary = Style{Color: "#2ca02c", Width: 1, Dash: true}
)

// Style is the fixed rendering style of one series.
type Style struct {
	Color string  `json:"color" doc:"Series color as a hex string"`
	Width float64 `json:"width" doc:"Stroke width in pixels"`
	Dash  bool    `json:"dash,omitempty" doc:"Whether the stroke is dashed"`
}

// Series is one resolved data series of a plot.
type Series struct {
	Name   string `json:"name" doc:"Series display name"`
	Source string `json:"source" enum:"original,resampled,secondary" doc:"Which table and column feed the series"`
	X      string `json:"x" doc:"X-axis column"`
	Y      string `json:"y,omitempty" doc:"Y-axis column, absent for histograms"`
	Style  Style  `json:"style"`
}

// Spec is a fully-resolved plot configuration. Resolve never fails; invalid
// selections degrade to the nearest valid single-series plot with notices.
type Spec struct {
	Type    PlotType `json:"plot_type" enum:"scatter,line,bar,histogram,box,violin" doc:"Chart type"`
	X       string   `json:"x" doc:"X-axis column"`
	Y       string   `json:"y,omitempty" doc:"Y-axis column, absent for histograms"`
	Title   string   `json:"title" doc:"Chart title"`
	Overlay string   `json:"overlay_mode" enum:"single,compare-original-vs-resampled,add-secondary-signal" doc:"Active overlay mode"`
	Series  []Series `json:"series" doc:"Resolved series in draw order"`
	Notices []string `json:"notices,omitempty" doc:"Informational notices about degraded selections"`
}

// Request carries the user's plot selections.
type Request struct {
	Type             PlotType
	X                string
	Y                string
	CompareResampled bool
	Secondary        string
}

// XCandidates returns the selectable X columns for a plot type: numeric
// columns for histograms (all columns when none are numeric, mirroring the
// original viewer), all columns otherwise.
func XCandidates(t *dataset.Table, p PlotType) []string {
	if p == PlotHistogram {
		if numeric := t.NumericColumns(); len(numeric) > 0 {
			return numeric
		}
	}
	return t.ColumnNames()
}

// YCandidates returns the selectable Y columns: none for histograms,
// numeric columns otherwise (all columns when none are numeric).
func YCandidates(t *dataset.Table, p PlotType) []string {
	if p == PlotHistogram {
		return nil
	}
	if numeric := t.NumericColumns(); len(numeric) > 0 {
		return numeric
	}
	return t.ColumnNames()
}

// Resolve validates the selections against the table's column types and
// produces a spec that is always renderable as at least a single-series
// plot of the original table.
func Resolve(t *dataset.Table, resampled *dataset.Table, req Request) Spec {
	spec := Spec{Type: req.Type, Overlay: OverlaySingle}

	spec.X = pickColumn(req.X, XCandidates(t, req.Type), "x", &spec)
	if req.Type != PlotHistogram {
		spec.Y = pickColumn(req.Y, YCandidates(t, req.Type), "y", &spec)
	} else if req.Y != "" {
		spec.Notices = append(spec.Notices, "histograms take a single column; the y selection is ignored")
	}

	spec.Series = []Series{{
		Name:   seriesName(spec.X, spec.Y),
		Source: SourceOriginal,
		X:      spec.X,
		Y:      spec.Y,
		Style:  styleOriginal,
	}}

	if req.CompareResampled {
		switch {
		case resampled == nil:
			spec.Notices = append(spec.Notices, "no resampled data available to compare; showing original data only")
		case req.Type != PlotLine && req.Type != PlotScatter:
			spec.Notices = append(spec.Notices,
				"overlapped comparison is only available for line and scatter plots; showing original data only")
		case resampled.Column(spec.X) == nil || resampled.Column(spec.Y) == nil:
			spec.Notices = append(spec.Notices, fmt.Sprintf(
				"resampled data has no columns %q and %q; showing original data only", spec.X, spec.Y))
		default:
			spec.Overlay = OverlayCompare
			spec.Series = append(spec.Series, Series{
				Name:   seriesName(spec.X, spec.Y) + " (resampled)",
				Source: SourceResampled,
				X:      spec.X,
				Y:      spec.Y,
				Style:  styleResampled,
			})
		}
	}

	if req.Secondary != "" {
		sec := t.Column(req.Secondary)
		switch {
		case req.Type == PlotHistogram:
			spec.Notices = append(spec.Notices, "secondary signals are not supported for histograms")
		case sec == nil:
			spec.Notices = append(spec.Notices, fmt.Sprintf("unknown secondary column %q", req.Secondary))
		case sec.Type != dataset.TypeNumeric:
			spec.Notices = append(spec.Notices, fmt.Sprintf("secondary column %q is not numeric", req.Secondary))
		case req.Secondary == spec.Y:
			spec.Notices = append(spec.Notices, fmt.Sprintf("secondary column %q is already plotted", req.Secondary))
		default:
			if spec.Overlay == OverlaySingle {
				spec.Overlay = OverlaySecondary
			}
			spec.Series = append(spec.Series, Series{
				Name:   req.Secondary,
				Source: SourceSecondary,
				X:      spec.X,
				Y:      req.Secondary,
				Style:  styleSecondary,
			})
		}
	}

	spec.Title = title(spec)
	return spec
}

func pickColumn(requested string, pool []string, axis string, spec *Spec) string {
	if len(pool) == 0 {
		return ""
	}
	for _, c := range pool {
		if c == requested {
			return c
		}
	}
	if requested != "" {
		spec.Notices = append(spec.Notices, fmt.Sprintf(
			"column %q is not a valid %s-axis choice for %s plots; using %q", requested, axis, spec.Type, pool[0]))
	}
	return pool[0]
}

func seriesName(x, y string) string {
	if y == "" {
		return x
	}
	return fmt.Sprintf("%s vs %s", x, y)
}

func title(spec Spec) string {
	switch spec.Type {
	case PlotHistogram:
		return fmt.Sprintf("Distribution of %s", spec.X)
	case PlotBox:
		return fmt.Sprintf("Box Plot: %s", spec.X)
	case PlotViolin:
		return fmt.Sprintf("Violin Plot: %s", spec.X)
	default:
		if spec.Overlay == OverlayCompare {
			return fmt.Sprintf("%s vs %s - Original vs Resampled", spec.X, spec.Y)
		}
		return fmt.Sprintf("%s vs %s", spec.X, spec.Y)
	}
}
