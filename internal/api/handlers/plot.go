package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/tabled/internal/plotting"
	"github.com/RMahshie/tabled/pkg/models"
)

// ResolvePlot validates the plot selections against the dataset's column
// types and returns a fully-specified plot spec. Invalid combinations
// degrade to the nearest valid single-series plot with notices; this
// operation never fails for a live dataset.
func (h *DatasetHandler) ResolvePlot(ctx context.Context, req *models.PlotRequest) (*models.PlotResponse, error) {
	sess, err := h.session(req.ID)
	if err != nil {
		return nil, err
	}
	plotType, err := plotting.ParsePlotType(req.Body.PlotType)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid plot type", err)
	}

	spec := plotting.Resolve(sess.Table, sess.Resampled, plotting.Request{
		Type:             plotType,
		X:                req.Body.X,
		Y:                req.Body.Y,
		CompareResampled: req.Body.CompareResampled,
		Secondary:        req.Body.Secondary,
	})
	return &models.PlotResponse{Body: specBody(spec)}, nil
}

// RenderPlot resolves the selections and rasterizes the chart to PNG.
// Registered as a plain chi handler because the response is an image.
func (h *DatasetHandler) RenderPlot(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionFromPath(r)
	if err != nil {
		writeHumaError(w, err)
		return
	}

	var body models.PlotBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid plot request body", err.Error())
		return
	}
	plotType, err := plotting.ParsePlotType(body.PlotType)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid plot type", err.Error())
		return
	}

	spec := plotting.Resolve(sess.Table, sess.Resampled, plotting.Request{
		Type:             plotType,
		X:                body.X,
		Y:                body.Y,
		CompareResampled: body.CompareResampled,
		Secondary:        body.Secondary,
	})

	start := time.Now()
	var buf bytes.Buffer
	if err := plotting.Render(sess.Table, sess.Resampled, spec, &buf); err != nil {
		if errors.Is(err, plotting.ErrNotRasterizable) {
			writeProblem(w, http.StatusUnprocessableEntity,
				"Plot type is not rendered server-side", err.Error())
			return
		}
		writeProblem(w, http.StatusUnprocessableEntity, "Failed to render plot", err.Error())
		return
	}
	h.metrics.RenderSeconds.Observe(time.Since(start).Seconds())

	log.Info().Str("datasetID", sess.ID.String()).Str("plotType", string(spec.Type)).
		Int("series", len(spec.Series)).Dur("elapsed", time.Since(start)).
		Msg("Plot rendered")

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func specBody(spec plotting.Spec) models.PlotSpecBody {
	body := models.PlotSpecBody{
		PlotType: string(spec.Type),
		X:        spec.X,
		Y:        spec.Y,
		Title:    spec.Title,
		Overlay:  spec.Overlay,
		Notices:  spec.Notices,
	}
	for _, s := range spec.Series {
		body.Series = append(body.Series, models.PlotSeries{
			Name:   s.Name,
			Source: s.Source,
			X:      s.X,
			Y:      s.Y,
			Style: models.PlotStyle{
				Color: s.Style.Color,
				Width: s.Style.Width,
				Dash:  s.Style.Dash,
			},
		})
	}
	return body
}
