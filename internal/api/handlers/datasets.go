package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/tabled/internal/dataset"
	"github.com/RMahshie/tabled/internal/ingest"
	"github.com/RMahshie/tabled/internal/metrics"
	"github.com/RMahshie/tabled/internal/repository"
	"github.com/RMahshie/tabled/internal/session"
	"github.com/RMahshie/tabled/internal/storage"
	"github.com/RMahshie/tabled/pkg/models"
)

const defaultPreviewRows = 100

// DatasetHandler handles dataset-related HTTP requests. The catalog
// repository and object store are optional; nil disables them.
type DatasetHandler struct {
	store       *session.Store
	ingestor    *ingest.Ingestor
	repo        repository.DatasetRepository
	objects     storage.ObjectStore
	metrics     *metrics.Metrics
	maxUpload   int64
	previewRows int
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(store *session.Store, ingestor *ingest.Ingestor, repo repository.DatasetRepository,
	objects storage.ObjectStore, m *metrics.Metrics, maxUpload int64, previewRows int) *DatasetHandler {
	if maxUpload <= 0 {
		maxUpload = ingest.DefaultMaxBytes
	}
	if previewRows <= 0 {
		previewRows = defaultPreviewRows
	}
	return &DatasetHandler{
		store:       store,
		ingestor:    ingestor,
		repo:        repo,
		objects:     objects,
		metrics:     m,
		maxUpload:   maxUpload,
		previewRows: previewRows,
	}
}

// UploadDataset accepts a multipart file upload and loads it as a new
// dataset session. Registered as a plain chi handler because the payload
// is a form, not JSON.
func (h *DatasetHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeProblem(w, http.StatusBadRequest, "File too large or malformed form", err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Failed to read uploaded file", err.Error())
		return
	}
	defer file.Close()

	log.Info().Str("filename", header.Filename).Int64("size", header.Size).Msg("Upload received")
	loaded, err := h.ingestor.FromReader(header.Filename, file)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Failed to load dataset", err.Error())
		return
	}

	summary := h.register(r.Context(), loaded, "upload", header.Filename)
	writeJSON(w, http.StatusCreated, summary)
}

// ImportDataset fetches a remote file and loads it as a new dataset session
func (h *DatasetHandler) ImportDataset(ctx context.Context, req *models.ImportDatasetRequest) (*models.DatasetResponse, error) {
	log.Info().Str("url", req.Body.URL).Msg("Importing dataset from URL")
	loaded, err := h.ingestor.FromURL(ctx, req.Body.URL)
	if err != nil {
		return nil, huma.Error400BadRequest("Failed to load dataset from URL", err)
	}

	summary := h.register(ctx, loaded, "url", req.Body.URL)
	return &models.DatasetResponse{Body: summary}, nil
}

// register creates the session for a loaded dataset and records it in the
// optional catalog and archive. Catalog and archive failures are logged,
// not surfaced: the in-memory session is already usable.
func (h *DatasetHandler) register(ctx context.Context, loaded *ingest.Loaded, sourceKind, sourceDetail string) models.DatasetSummary {
	sess := &session.Session{
		ID:        uuid.New(),
		Name:      loaded.Name,
		Format:    loaded.Format,
		Table:     loaded.Table,
		CreatedAt: time.Now(),
	}

	if h.objects != nil {
		key := fmt.Sprintf("datasets/%s.%s", sess.ID, loaded.Format)
		if err := h.objects.Upload(ctx, key, loaded.Format.MIME(), loaded.Raw); err != nil {
			log.Warn().Err(err).Str("datasetID", sess.ID.String()).Msg("Failed to archive raw file")
		} else {
			sess.ArchiveKey = key
		}
	}

	h.store.Put(sess)

	if h.repo != nil {
		record := &models.DatasetRecord{
			ID:           sess.ID.String(),
			Name:         loaded.Name,
			SourceKind:   sourceKind,
			SourceDetail: sourceDetail,
			Format:       string(loaded.Format),
			RowCount:     loaded.Table.NumRows(),
			ColumnCount:  loaded.Table.NumCols(),
			CreatedAt:    sess.CreatedAt,
		}
		if err := h.repo.Create(ctx, record); err != nil {
			log.Warn().Err(err).Str("datasetID", sess.ID.String()).Msg("Failed to catalog dataset")
		}
	}

	h.metrics.DatasetsLoaded.WithLabelValues(sourceKind, string(loaded.Format)).Inc()
	log.Info().Str("datasetID", sess.ID.String()).Str("name", loaded.Name).
		Int("rows", loaded.Table.NumRows()).Int("columns", loaded.Table.NumCols()).
		Msg("Dataset loaded")

	return h.summary(sess, h.previewRows)
}

// GetDataset returns the dataset's shape, column types and a preview
func (h *DatasetHandler) GetDataset(ctx context.Context, req *models.GetDatasetRequest) (*models.DatasetResponse, error) {
	sess, err := h.session(req.ID)
	if err != nil {
		return nil, err
	}
	rows := req.Rows
	if rows <= 0 {
		rows = h.previewRows
	}
	return &models.DatasetResponse{Body: h.summary(sess, rows)}, nil
}

// ListDatasets lists catalog records of loaded datasets
func (h *DatasetHandler) ListDatasets(ctx context.Context, req *struct{}) (*models.ListDatasetsResponse, error) {
	if h.repo == nil {
		return nil, huma.Error501NotImplemented("Dataset catalog is not configured", nil)
	}
	records, err := h.repo.List(ctx, 0)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list datasets", err)
	}
	resp := &models.ListDatasetsResponse{}
	for _, r := range records {
		resp.Body.Datasets = append(resp.Body.Datasets, *r)
	}
	return resp, nil
}

// DeleteDataset drops the session and best-effort cleans up the catalog
// record and archived file
func (h *DatasetHandler) DeleteDataset(ctx context.Context, req *models.DeleteDatasetRequest) (*models.DeleteDatasetResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid dataset ID", err)
	}
	sess, ok := h.store.Delete(id)
	if !ok {
		return nil, huma.Error404NotFound("Dataset not found", nil)
	}

	if h.objects != nil && sess.ArchiveKey != "" {
		if err := h.objects.Delete(ctx, sess.ArchiveKey); err != nil {
			log.Warn().Err(err).Str("key", sess.ArchiveKey).Msg("Failed to delete archived file")
		}
	}
	if h.repo != nil {
		if err := h.repo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("datasetID", req.ID).Msg("Failed to delete catalog record")
		}
	}

	resp := &models.DeleteDatasetResponse{}
	resp.Body.Message = "Dataset deleted"
	return resp, nil
}

// DownloadRaw serves the originally ingested bytes from the archive.
func (h *DatasetHandler) DownloadRaw(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionFromPath(r)
	if err != nil {
		writeHumaError(w, err)
		return
	}
	if h.objects == nil || sess.ArchiveKey == "" {
		writeProblem(w, http.StatusNotImplemented, "Raw-file archive is not configured", "")
		return
	}
	data, err := h.objects.Download(r.Context(), sess.ArchiveKey)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Failed to download archived file", err.Error())
		return
	}
	w.Header().Set("Content-Type", sess.Format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *DatasetHandler) summary(sess *session.Session, previewRows int) models.DatasetSummary {
	return models.DatasetSummary{
		ID:        sess.ID.String(),
		Name:      sess.Name,
		Format:    string(sess.Format),
		Rows:      sess.Table.NumRows(),
		Columns:   columnInfo(sess.Table),
		Preview:   sess.Table.Records(previewRows),
		Resampled: sess.Resampled != nil,
		CreatedAt: sess.CreatedAt,
	}
}

// session resolves a path ID to a live session, mapping failures to huma
// errors.
func (h *DatasetHandler) session(id string) (*session.Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid dataset ID", err)
	}
	sess, ok := h.store.Get(parsed)
	if !ok {
		return nil, huma.Error404NotFound("Dataset not found", nil)
	}
	return sess, nil
}

func columnInfo(t *dataset.Table) []models.ColumnInfo {
	info := make([]models.ColumnInfo, 0, t.NumCols())
	for _, c := range t.Columns {
		info = append(info, models.ColumnInfo{Name: c.Name, Type: c.Type.String()})
	}
	return info
}

// writeJSON and writeProblem emulate huma's response shapes on the plain
// chi endpoints (uploads and binary downloads).
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"title":  title,
		"status": status,
		"detail": detail,
	})
}

// writeHumaError renders an error produced by the shared session helper on
// a plain chi endpoint.
func writeHumaError(w http.ResponseWriter, err error) {
	var status huma.StatusError
	if errors.As(err, &status) {
		writeProblem(w, status.GetStatus(), err.Error(), "")
		return
	}
	writeProblem(w, http.StatusInternalServerError, "Internal server error", err.Error())
}
