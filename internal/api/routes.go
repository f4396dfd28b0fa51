package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/RMahshie/tabled/internal/api/handlers"
)

// RegisterRoutes sets up all API routes. JSON operations go through huma;
// the multipart upload and binary downloads are plain chi handlers.
func RegisterRoutes(router *chi.Mux, api huma.API, datasetHandler *handlers.DatasetHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "importDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets/import",
		Summary:     "Import a dataset from a URL",
		Description: "Fetches a remote CSV, XLSX or Parquet file and loads it as a new dataset",
		Tags:        []string{"Dataset"},
	}, datasetHandler.ImportDataset)

	huma.Register(api, huma.Operation{
		OperationID: "getDataset",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}",
		Summary:     "Get dataset preview",
		Description: "Returns the dataset's shape, inferred column types and a row preview",
		Tags:        []string{"Dataset"},
	}, datasetHandler.GetDataset)

	huma.Register(api, huma.Operation{
		OperationID: "listDatasets",
		Method:      http.MethodGet,
		Path:        "/api/datasets",
		Summary:     "List loaded datasets",
		Description: "Returns catalog records of loaded datasets, newest first",
		Tags:        []string{"Dataset"},
	}, datasetHandler.ListDatasets)

	huma.Register(api, huma.Operation{
		OperationID: "deleteDataset",
		Method:      http.MethodDelete,
		Path:        "/api/datasets/{id}",
		Summary:     "Delete a dataset",
		Description: "Drops the dataset session and cleans up its catalog record and archived file",
		Tags:        []string{"Dataset"},
	}, datasetHandler.DeleteDataset)

	huma.Register(api, huma.Operation{
		OperationID: "resampleDataset",
		Method:      http.MethodPost,
		Path:        "/api/datasets/{id}/resample",
		Summary:     "Resample a dataset",
		Description: "Buckets numeric columns over a time axis at the chosen frequency and aggregation",
		Tags:        []string{"Resample"},
	}, datasetHandler.Resample)

	huma.Register(api, huma.Operation{
		OperationID: "getResampled",
		Method:      http.MethodGet,
		Path:        "/api/datasets/{id}/resampled",
		Summary:     "Get resampled preview",
		Description: "Returns a preview of the dataset's current resampled table",
		Tags:        []string{"Resample"},
	}, datasetHandler.GetResampled)

	huma.Register(api, huma.Operation{
		OperationID: "resolvePlot",
		Method:      http.MethodPost,
		Path:        "/api/datasets/{id}/plot",
		Summary:     "Resolve a plot configuration",
		Description: "Validates plot selections against column types and returns a fully-specified plot spec",
		Tags:        []string{"Plot"},
	}, datasetHandler.ResolvePlot)

	// Form and binary endpoints bypass huma's content negotiation.
	router.Post("/api/datasets", datasetHandler.UploadDataset)
	router.Post("/api/datasets/{id}/plot/render", datasetHandler.RenderPlot)
	router.Get("/api/datasets/{id}/export/{format}", datasetHandler.ExportDataset)
	router.Get("/api/datasets/{id}/raw", datasetHandler.DownloadRaw)
}
