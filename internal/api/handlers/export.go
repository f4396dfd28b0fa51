package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/tabled/internal/dataset"
	"github.com/RMahshie/tabled/internal/session"
)

// ExportDataset re-encodes the originally loaded table (never the resampled
// one) in the requested format and serves it as a download.
func (h *DatasetHandler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionFromPath(r)
	if err != nil {
		writeHumaError(w, err)
		return
	}
	format, ok := dataset.ParseFormat(chi.URLParam(r, "format"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Unknown export format",
			"supported formats: csv, xlsx, parquet")
		return
	}

	data, err := dataset.Encode(sess.Table, format)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Failed to export dataset", err.Error())
		return
	}

	h.metrics.Exports.WithLabelValues(string(format)).Inc()
	log.Info().Str("datasetID", sess.ID.String()).Str("format", string(format)).
		Int("bytes", len(data)).Msg("Dataset exported")

	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *DatasetHandler) sessionFromPath(r *http.Request) (*session.Session, error) {
	return h.session(chi.URLParam(r, "id"))
}
