package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/tabled/internal/dataset"
	"github.com/RMahshie/tabled/internal/resample"
	"github.com/RMahshie/tabled/pkg/models"
)

// Resample buckets the dataset by the requested frequency and aggregation
// and stores the result on the session, replacing any previous resample.
func (h *DatasetHandler) Resample(ctx context.Context, req *models.ResampleRequest) (*models.ResampleResponse, error) {
	sess, err := h.session(req.ID)
	if err != nil {
		return nil, err
	}

	freq, err := resample.ParseFrequency(req.Body.Frequency)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid frequency", err)
	}
	agg, err := resample.ParseAggregation(req.Body.Aggregation)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid aggregation", err)
	}
	if sess.Table.Column(req.Body.TimeColumn) == nil {
		return nil, huma.Error400BadRequest("Unknown time column", nil)
	}

	log.Info().Str("datasetID", req.ID).Str("timeColumn", req.Body.TimeColumn).
		Str("frequency", string(freq)).Str("aggregation", string(agg)).
		Msg("Resampling dataset")

	result, err := resample.Resample(sess.Table, resample.Request{
		TimeColumn:  req.Body.TimeColumn,
		Frequency:   freq,
		Aggregation: agg,
	})
	if err != nil {
		h.metrics.ResampleOps.WithLabelValues(string(freq), string(agg), "error").Inc()
		var convErr *dataset.ConversionError
		if errors.As(err, &convErr) {
			return nil, huma.Error422UnprocessableEntity(
				"Time column could not be converted to datetime format", err)
		}
		var noNumErr *dataset.NoNumericColumnsError
		if errors.As(err, &noNumErr) {
			return nil, huma.Error422UnprocessableEntity("No numeric columns found to resample", err)
		}
		return nil, huma.Error500InternalServerError("Failed to resample dataset", err)
	}

	h.store.SetResampled(sess.ID, result.Table)
	h.metrics.ResampleOps.WithLabelValues(string(freq), string(agg), "ok").Inc()

	for _, warning := range result.Warnings {
		log.Warn().Str("datasetID", req.ID).Msg(warning)
	}
	log.Info().Str("datasetID", req.ID).Int("originalRows", sess.Table.NumRows()).
		Int("resampledRows", result.Table.NumRows()).Msg("Dataset resampled")

	return &models.ResampleResponse{Body: models.ResampleResponseBody{
		OriginalRows:  sess.Table.NumRows(),
		ResampledRows: result.Table.NumRows(),
		Columns:       columnInfo(result.Table),
		Preview:       result.Table.Records(h.previewRows),
		Warnings:      result.Warnings,
	}}, nil
}

// GetResampled returns a preview of the session's current resampled table
func (h *DatasetHandler) GetResampled(ctx context.Context, req *models.GetResampledRequest) (*models.ResampleResponse, error) {
	sess, err := h.session(req.ID)
	if err != nil {
		return nil, err
	}
	if sess.Resampled == nil {
		return nil, huma.Error404NotFound("No resampled data for this dataset", nil)
	}
	rows := req.Rows
	if rows <= 0 {
		rows = h.previewRows
	}
	return &models.ResampleResponse{Body: models.ResampleResponseBody{
		OriginalRows:  sess.Table.NumRows(),
		ResampledRows: sess.Resampled.NumRows(),
		Columns:       columnInfo(sess.Resampled),
		Preview:       sess.Resampled.Records(rows),
	}}, nil
}
