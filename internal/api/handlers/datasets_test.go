package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/tabled/internal/dataset"
	"github.com/RMahshie/tabled/internal/ingest"
	"github.com/RMahshie/tabled/internal/metrics"
	"github.com/RMahshie/tabled/internal/session"
	"github.com/RMahshie/tabled/pkg/models"
)

// MockDatasetRepository implements repository.DatasetRepository for testing
type MockDatasetRepository struct {
	mock.Mock
}

func (m *MockDatasetRepository) Create(ctx context.Context, record *models.DatasetRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockDatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DatasetRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.DatasetRecord), args.Error(1)
}

func (m *MockDatasetRepository) List(ctx context.Context, limit int) ([]*models.DatasetRecord, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.DatasetRecord), args.Error(1)
}

func (m *MockDatasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectStore implements storage.ObjectStore for testing
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockObjectStore) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

const sampleCSV = "ts,value\n0,1\n5,2\n10,3\n15,4\n20,5\n25,6\n30,7\n35,8\n40,9\n45,10\n50,11\n55,12\n"

func newTestHandler(t *testing.T, deps ...interface{}) (*DatasetHandler, *session.Store) {
	t.Helper()
	var repo *MockDatasetRepository
	var objects *MockObjectStore
	for _, d := range deps {
		switch v := d.(type) {
		case *MockDatasetRepository:
			repo = v
		case *MockObjectStore:
			objects = v
		}
	}
	store := session.NewStore()
	m := metrics.New(prometheus.NewRegistry())
	h := &DatasetHandler{
		store:       store,
		ingestor:    ingest.New(0),
		metrics:     m,
		maxUpload:   ingest.DefaultMaxBytes,
		previewRows: defaultPreviewRows,
	}
	if repo != nil {
		h.repo = repo
	}
	if objects != nil {
		h.objects = objects
	}
	return h, store
}

func loadSession(t *testing.T, store *session.Store) *session.Session {
	t.Helper()
	tbl, err := dataset.DecodeCSV([]byte(sampleCSV))
	require.NoError(t, err)
	sess := &session.Session{
		ID:        uuid.New(),
		Name:      "readings.csv",
		Format:    dataset.FormatCSV,
		Table:     tbl,
		CreatedAt: time.Now(),
	}
	store.Put(sess)
	return sess
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestUploadDataset(t *testing.T) {
	h, store := newTestHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "readings.csv")
	require.NoError(t, err)
	part.Write([]byte(sampleCSV))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadDataset(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var summary models.DatasetSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, "readings.csv", summary.Name)
	assert.Equal(t, "csv", summary.Format)
	assert.Equal(t, 12, summary.Rows)
	require.Len(t, summary.Columns, 2)
	assert.Equal(t, "numeric", summary.Columns[0].Type)
	assert.Equal(t, 1, store.Len())
}

func TestUploadDatasetRejectsUnsupportedType(t *testing.T) {
	h, store := newTestHandler(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "notes.txt")
	part.Write([]byte("hello"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/datasets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.UploadDataset(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Zero(t, store.Len())
}

func TestImportDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	repo := new(MockDatasetRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.DatasetRecord) bool {
		return r.SourceKind == "url" && r.RowCount == 12
	})).Return(nil)

	h, _ := newTestHandler(t, repo)
	req := &models.ImportDatasetRequest{}
	req.Body.URL = srv.URL + "/readings.csv"

	resp, err := h.ImportDataset(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Body.Rows)
	assert.False(t, resp.Body.Resampled)
	repo.AssertExpectations(t)
}

func TestImportDatasetBadURL(t *testing.T) {
	h, _ := newTestHandler(t)
	req := &models.ImportDatasetRequest{}
	req.Body.URL = "ftp://example.com/data.csv"

	_, err := h.ImportDataset(context.Background(), req)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestRegisterArchivesRawBytes(t *testing.T) {
	objects := new(MockObjectStore)
	objects.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("datasets/") && key[:9] == "datasets/"
	}), "text/csv", []byte(sampleCSV)).Return(nil)

	h, store := newTestHandler(t, objects)
	loaded, err := h.ingestor.FromReader("readings.csv", bytes.NewReader([]byte(sampleCSV)))
	require.NoError(t, err)
	summary := h.register(context.Background(), loaded, "upload", "readings.csv")

	sess, ok := store.Get(uuid.MustParse(summary.ID))
	require.True(t, ok)
	assert.NotEmpty(t, sess.ArchiveKey)
	objects.AssertExpectations(t)
}

func TestGetDataset(t *testing.T) {
	h, store := newTestHandler(t)
	sess := loadSession(t, store)

	resp, err := h.GetDataset(context.Background(), &models.GetDatasetRequest{ID: sess.ID.String(), Rows: 3})
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Body.Rows)
	assert.Len(t, resp.Body.Preview, 3)
}

func TestGetDatasetErrors(t *testing.T) {
	h, store := newTestHandler(t)
	loadSession(t, store)

	_, err := h.GetDataset(context.Background(), &models.GetDatasetRequest{ID: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = h.GetDataset(context.Background(), &models.GetDatasetRequest{ID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestListDatasets(t *testing.T) {
	repo := new(MockDatasetRepository)
	repo.On("List", mock.Anything, 0).Return([]*models.DatasetRecord{
		{ID: uuid.NewString(), Name: "a.csv"},
		{ID: uuid.NewString(), Name: "b.xlsx"},
	}, nil)

	h, _ := newTestHandler(t, repo)
	resp, err := h.ListDatasets(context.Background(), &struct{}{})
	require.NoError(t, err)
	assert.Len(t, resp.Body.Datasets, 2)
	repo.AssertExpectations(t)
}

func TestListDatasetsWithoutCatalog(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.ListDatasets(context.Background(), &struct{}{})
	assert.Equal(t, http.StatusNotImplemented, statusOf(t, err))
}

func TestDeleteDataset(t *testing.T) {
	repo := new(MockDatasetRepository)
	objects := new(MockObjectStore)

	h, store := newTestHandler(t, repo, objects)
	sess := loadSession(t, store)
	sess.ArchiveKey = "datasets/" + sess.ID.String() + ".csv"

	repo.On("Delete", mock.Anything, sess.ID).Return(nil)
	objects.On("Delete", mock.Anything, sess.ArchiveKey).Return(nil)

	resp, err := h.DeleteDataset(context.Background(), &models.DeleteDatasetRequest{ID: sess.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "Dataset deleted", resp.Body.Message)
	assert.Zero(t, store.Len())
	repo.AssertExpectations(t)
	objects.AssertExpectations(t)
}

func TestDeleteDatasetNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	_, err := h.DeleteDataset(context.Background(), &models.DeleteDatasetRequest{ID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
