package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"intelplatform/internal/logger"
	"intelplatform/models"
)

var datasetColumns = []string{"id", "dataset_name", "last_updated", "source", "description"}

// datasetRepository is the SQLite-backed implementation of
// [DatasetRepository] over the datasets_metadata table.
type datasetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database connection and logger.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

// List returns up to limit datasets in store-native order.
// limit <= 0 disables the cap.
func (r *datasetRepository) List(ctx context.Context, limit int) ([]models.Dataset, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(datasetColumns...).From(models.Dataset{}.TableName())
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("failed to query datasets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var datasets []models.Dataset
	for rows.Next() {
		var dataset models.Dataset
		if scanErr := rows.Scan(
			&dataset.ID,
			&dataset.Name,
			&dataset.LastUpdated,
			&dataset.Source,
			&dataset.Description,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "*datasetRepository.List").Msg("failed to scan dataset row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		datasets = append(datasets, dataset)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*datasetRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return datasets, nil
}

// Count returns the total number of datasets, independent of the list cap.
func (r *datasetRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, models.Dataset{}.TableName())
}

// Insert persists a new dataset and returns it with the store-assigned ID.
func (r *datasetRepository) Insert(ctx context.Context, dataset models.Dataset) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(dataset.TableName()).
		Columns("dataset_name", "last_updated", "source", "description").
		Values(dataset.Name, dataset.LastUpdated, dataset.Source, dataset.Description).
		ToSql()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Insert").Str("name", dataset.Name).Msg("failed to insert dataset")
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Dataset{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	dataset.ID = id
	return dataset, nil
}

// Update applies the non-nil fields of update to the dataset with the given
// id and restamps last_updated, mirroring the write-time stamping on insert.
func (r *datasetRepository) Update(ctx context.Context, id int64, update models.DatasetUpdate, lastUpdated string) error {
	log := logger.FromContext(ctx)

	builder := sq.Update(models.Dataset{}.TableName()).
		Set("last_updated", lastUpdated).
		Where(sq.Eq{"id": id})
	if update.Name != nil {
		builder = builder.Set("dataset_name", *update.Name)
	}
	if update.Source != nil {
		builder = builder.Set("source", *update.Source)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Update").Int64("id", id).Msg("failed to update dataset")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffectedRows(res)
}

// Delete removes the dataset with the given id.
func (r *datasetRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(models.Dataset{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.Delete").Int64("id", id).Msg("failed to delete dataset")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffectedRows(res)
}
