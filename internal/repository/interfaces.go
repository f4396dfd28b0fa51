package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/RMahshie/tabled/pkg/models"
)

// DatasetRepository defines the interface for dataset catalog operations.
// The catalog stores metadata only; table contents live in the session
// store and, optionally, the raw-file archive.
type DatasetRepository interface {
	Create(ctx context.Context, record *models.DatasetRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.DatasetRecord, error)
	List(ctx context.Context, limit int) ([]*models.DatasetRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
