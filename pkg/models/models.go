package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// ColumnInfo describes one column of a loaded dataset.
type ColumnInfo struct {
	Name string `json:"name" doc:"Column name"`
	Type string `json:"type" enum:"numeric,datetime,text" doc:"Inferred column type"`
}

// DatasetSummary is the shared body returned after loading or inspecting a
// dataset.
type DatasetSummary struct {
	ID        string       `json:"id" doc:"Dataset unique identifier"`
	Name      string       `json:"name" doc:"Original file name"`
	Format    string       `json:"format" enum:"csv,xlsx,parquet" doc:"Source file format"`
	Rows      int          `json:"rows" doc:"Total row count"`
	Columns   []ColumnInfo `json:"columns" doc:"Columns in table order with inferred types"`
	Preview   [][]string   `json:"preview" doc:"First rows as raw cell text"`
	Resampled bool         `json:"resampled" doc:"Whether a resampled table currently exists"`
	CreatedAt time.Time    `json:"created_at" doc:"When the dataset was loaded"`
}

// ImportDatasetRequest asks the service to fetch a remote file.
type ImportDatasetRequest struct {
	Body struct {
		URL string `json:"url" required:"true" format:"uri" doc:"HTTP(S) URL of a .csv, .xlsx or .parquet file"`
	}
}

// DatasetResponse wraps a dataset summary.
type DatasetResponse struct {
	Body DatasetSummary
}

// GetDatasetRequest fetches a dataset preview.
type GetDatasetRequest struct {
	ID   string `path:"id" doc:"Dataset ID"`
	Rows int    `query:"rows" minimum:"1" maximum:"1000" doc:"Preview row limit (default 100)"`
}

// DeleteDatasetRequest removes a dataset session.
type DeleteDatasetRequest struct {
	ID string `path:"id" doc:"Dataset ID"`
}

// DeleteDatasetResponse confirms session removal.
type DeleteDatasetResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// ListDatasetsResponse lists catalog records of loaded datasets.
type ListDatasetsResponse struct {
	Body struct {
		Datasets []DatasetRecord `json:"datasets" doc:"Catalog records, newest first"`
	}
}

// ResampleRequest triggers frequency-bucketed aggregation of a dataset.
type ResampleRequest struct {
	ID   string `path:"id" doc:"Dataset ID"`
	Body struct {
		TimeColumn  string `json:"time_column" required:"true" doc:"Column holding epoch seconds or parseable timestamps"`
		Frequency   string `json:"frequency" required:"true" enum:"5S,10S,30S,T,H,D,W,M,Q,Y" doc:"Bucket frequency token"`
		Aggregation string `json:"aggregation" required:"true" enum:"mean,sum,min,max,std,count,first,last" doc:"Aggregation method"`
	}
}

// ResampleResponseBody reports the outcome of a resample action.
type ResampleResponseBody struct {
	OriginalRows  int          `json:"original_rows" doc:"Row count before resampling"`
	ResampledRows int          `json:"resampled_rows" doc:"Row count after resampling (one per non-empty bucket)"`
	Columns       []ColumnInfo `json:"columns" doc:"Resampled columns, time column first"`
	Preview       [][]string   `json:"preview" doc:"First resampled rows as raw cell text"`
	Warnings      []string     `json:"warnings,omitempty" doc:"Partial-success warnings, e.g. dropped unparseable rows"`
}

// ResampleResponse wraps a resample outcome.
type ResampleResponse struct {
	Body ResampleResponseBody
}

// GetResampledRequest fetches the current resampled table preview.
type GetResampledRequest struct {
	ID   string `path:"id" doc:"Dataset ID"`
	Rows int    `query:"rows" minimum:"1" maximum:"1000" doc:"Preview row limit (default 100)"`
}

// PlotBody is the plot selection payload, shared by the resolve and render
// endpoints.
type PlotBody struct {
	PlotType         string `json:"plot_type" required:"true" enum:"scatter,line,bar,histogram,box,violin" doc:"Chart type"`
	X                string `json:"x,omitempty" doc:"X-axis column; defaults to the first valid candidate"`
	Y                string `json:"y,omitempty" doc:"Y-axis column; ignored for histograms"`
	CompareResampled bool   `json:"compare_resampled,omitempty" doc:"Overlay original and resampled data (line/scatter only)"`
	Secondary        string `json:"secondary,omitempty" doc:"Second numeric column rendered as an extra series"`
}

// PlotRequest carries the user's plot selections.
type PlotRequest struct {
	ID   string   `path:"id" doc:"Dataset ID"`
	Body PlotBody
}

// PlotStyle is the fixed rendering style of one series.
type PlotStyle struct {
	Color string  `json:"color" doc:"Series color as a hex string"`
	Width float64 `json:"width" doc:"Stroke width in pixels"`
	Dash  bool    `json:"dash,omitempty" doc:"Whether the stroke is dashed"`
}

// PlotSeries is one resolved data series.
type PlotSeries struct {
	Name   string    `json:"name" doc:"Series display name"`
	Source string    `json:"source" enum:"original,resampled,secondary" doc:"Which table and column feed the series"`
	X      string    `json:"x" doc:"X-axis column"`
	Y      string    `json:"y,omitempty" doc:"Y-axis column, absent for histograms"`
	Style  PlotStyle `json:"style"`
}

// PlotSpecBody is a fully-resolved plot configuration.
type PlotSpecBody struct {
	PlotType string       `json:"plot_type" enum:"scatter,line,bar,histogram,box,violin" doc:"Chart type"`
	X        string       `json:"x" doc:"X-axis column"`
	Y        string       `json:"y,omitempty" doc:"Y-axis column, absent for histograms"`
	Title    string       `json:"title" doc:"Chart title"`
	Overlay  string       `json:"overlay_mode" enum:"single,compare-original-vs-resampled,add-secondary-signal" doc:"Active overlay mode"`
	Series   []PlotSeries `json:"series" doc:"Resolved series in draw order"`
	Notices  []string     `json:"notices,omitempty" doc:"Informational notices about degraded selections"`
}

// PlotResponse wraps a resolved plot spec.
type PlotResponse struct {
	Body PlotSpecBody
}

// DatasetRecord is a catalog entry describing a loaded dataset (for
// internal use and the list endpoint).
type DatasetRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SourceKind   string    `json:"source_kind" enum:"upload,url"`
	SourceDetail string    `json:"source_detail"`
	Format       string    `json:"format"`
	RowCount     int       `json:"row_count"`
	ColumnCount  int       `json:"column_count"`
	CreatedAt    time.Time `json:"created_at"`
}
