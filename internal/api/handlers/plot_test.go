package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/tabled/pkg/models"
)

// chiRouter mounts the handler's plain chi endpoints the way the API wires
// them, so URL params resolve.
func chiRouter(h *DatasetHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/datasets/{id}/plot/render", h.RenderPlot)
	r.Get("/api/datasets/{id}/export/{format}", h.ExportDataset)
	r.Get("/api/datasets/{id}/raw", h.DownloadRaw)
	return r
}

func TestResolvePlotHandler(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)

	req := &models.PlotRequest{ID: sess.ID.String()}
	req.Body = models.PlotBody{PlotType: "line", X: "ts", Y: "value"}

	resp, err := h.ResolvePlot(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "line", resp.Body.PlotType)
	assert.Equal(t, "ts vs value", resp.Body.Title)
	assert.Equal(t, "single", resp.Body.Overlay)
	require.Len(t, resp.Body.Series, 1)
	assert.Equal(t, "#1f77b4", resp.Body.Series[0].Style.Color)
}

func TestResolvePlotHandlerDegradedCompare(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)

	req := &models.PlotRequest{ID: sess.ID.String()}
	req.Body = models.PlotBody{PlotType: "bar", X: "ts", Y: "value", CompareResampled: true}

	resp, err := h.ResolvePlot(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "single", resp.Body.Overlay)
	require.Len(t, resp.Body.Series, 1)
	assert.NotEmpty(t, resp.Body.Notices)
}

func TestResolvePlotHandlerBadType(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)

	req := &models.PlotRequest{ID: sess.ID.String()}
	req.Body = models.PlotBody{PlotType: "pie"}

	_, err := h.ResolvePlot(context.Background(), req)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func renderRequest(t *testing.T, router http.Handler, id string, body models.PlotBody) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/datasets/"+id+"/plot/render", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRenderPlotPNG(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)
	router := chiRouter(h)

	rec := renderRequest(t, router, sess.ID.String(), models.PlotBody{PlotType: "line", X: "ts", Y: "value"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}))
}

func TestRenderPlotCompareOverlay(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)
	_, err := h.Resample(context.Background(), resampleRequest(sess.ID.String(), "ts", "30S", "mean"))
	require.NoError(t, err)
	router := chiRouter(h)

	rec := renderRequest(t, router, sess.ID.String(),
		models.PlotBody{PlotType: "scatter", X: "ts", Y: "value", CompareResampled: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestRenderPlotBoxNotRasterizable(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)
	router := chiRouter(h)

	rec := renderRequest(t, router, sess.ID.String(), models.PlotBody{PlotType: "box", X: "value"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRenderPlotUnknownDataset(t *testing.T) {
	h, _ := newTestHandler(t)
	router := chiRouter(h)

	rec := renderRequest(t, router, "00000000-0000-0000-0000-000000000000",
		models.PlotBody{PlotType: "line"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
