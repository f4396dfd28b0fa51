package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/RMahshie/tabled/internal/repository"
	"github.com/RMahshie/tabled/pkg/models"
)

// PostgresDatasetRepository implements DatasetRepository for PostgreSQL
type PostgresDatasetRepository struct {
	db *sql.DB
}

// NewPostgresDatasetRepository creates a new PostgreSQL dataset repository
func NewPostgresDatasetRepository(db *sql.DB) repository.DatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

// EnsureSchema creates the catalog table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			source_kind TEXT NOT NULL,
			source_detail TEXT NOT NULL DEFAULT '',
			format TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Create inserts a new dataset record
func (r *PostgresDatasetRepository) Create(ctx context.Context, record *models.DatasetRecord) error {
	query := `
		INSERT INTO datasets (id, name, source_kind, source_detail, format, row_count, column_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Name,
		record.SourceKind,
		record.SourceDetail,
		record.Format,
		record.RowCount,
		record.ColumnCount,
		record.CreatedAt)

	return err
}

// GetByID retrieves a dataset record by ID
func (r *PostgresDatasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.DatasetRecord, error) {
	query := `
		SELECT id, name, source_kind, source_detail, format, row_count, column_count, created_at
		FROM datasets
		WHERE id = $1`

	var record models.DatasetRecord
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Name,
		&record.SourceKind,
		&record.SourceDetail,
		&record.Format,
		&record.RowCount,
		&record.ColumnCount,
		&record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves the most recent dataset records
func (r *PostgresDatasetRepository) List(ctx context.Context, limit int) ([]*models.DatasetRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, name, source_kind, source_detail, format, row_count, column_count, created_at
		FROM datasets
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DatasetRecord
	for rows.Next() {
		var record models.DatasetRecord
		err := rows.Scan(
			&record.ID,
			&record.Name,
			&record.SourceKind,
			&record.SourceDetail,
			&record.Format,
			&record.RowCount,
			&record.ColumnCount,
			&record.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Delete removes a dataset record
func (r *PostgresDatasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	return err
}
