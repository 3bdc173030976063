package service

import (
	"context"
	"fmt"
	"time"

	"intelplatform/internal/logger"
	"intelplatform/internal/store"
	"intelplatform/models"
)

// datasetService is the concrete implementation of DatasetService.
type datasetService struct {
	datasetRepository store.DatasetRepository
	confirmer         *deleteConfirmer

	// now stamps last_updated; swapped out in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewDatasetService constructs a DatasetService backed by the given
// repository. Safe for concurrent use.
func NewDatasetService(datasetRepository store.DatasetRepository, logger *logger.Logger) DatasetService {
	return &datasetService{
		datasetRepository: datasetRepository,
		confirmer:         newDeleteConfirmer(),
		now:               time.Now,
		logger:            logger,
	}
}

// List returns up to limit datasets; limit <= 0 applies the default display
// cap of [models.DefaultDatasetListLimit].
func (s *datasetService) List(ctx context.Context, limit int) ([]models.Dataset, error) {
	if limit <= 0 {
		limit = models.DefaultDatasetListLimit
	}

	datasets, err := s.datasetRepository.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing datasets failed: %w", err)
	}
	return datasets, nil
}

// Count returns the total number of datasets, independent of the list cap.
func (s *datasetService) Count(ctx context.Context) (int, error) {
	count, err := s.datasetRepository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting datasets failed: %w", err)
	}
	return count, nil
}

// Create stamps last_updated with the current server date and persists the
// dataset. Returns ErrInvalidDataProvided when the dataset name is empty.
func (s *datasetService) Create(ctx context.Context, dataset models.Dataset) (models.Dataset, error) {
	log := logger.FromContext(ctx)

	if dataset.Name == "" {
		log.Error().Msg("dataset name is required")
		return models.Dataset{}, ErrInvalidDataProvided
	}

	dataset.LastUpdated = s.now().Format(models.DatasetDateFormat)

	created, err := s.datasetRepository.Insert(ctx, dataset)
	if err != nil {
		log.Err(err).Str("name", dataset.Name).Msg("dataset creation ended with error")
		return models.Dataset{}, fmt.Errorf("dataset creation ended with error: %w", err)
	}

	return created, nil
}

// Update applies the non-nil fields of update to the dataset with the given
// id and restamps last_updated with the current server date. An update
// carrying no fields still restamps, matching the write-through behaviour of
// every dataset edit.
func (s *datasetService) Update(ctx context.Context, id int64, update models.DatasetUpdate) error {
	log := logger.FromContext(ctx)

	if err := s.datasetRepository.Update(ctx, id, update, s.now().Format(models.DatasetDateFormat)); err != nil {
		log.Err(err).Int64("id", id).Msg("dataset update ended with error")
		return fmt.Errorf("dataset update ended with error: %w", err)
	}

	return nil
}

// Delete removes the dataset with the given id using the same two-step
// confirmation protocol as incidents.
func (s *datasetService) Delete(ctx context.Context, sessionID int64, id int64) error {
	log := logger.FromContext(ctx)

	if !s.confirmer.confirm(sessionID, models.Dataset{}.TableName(), id) {
		log.Debug().Int64("id", id).Int64("session", sessionID).Msg("dataset deletion armed")
		return ErrConfirmDelete
	}

	if err := s.datasetRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("dataset deletion ended with error")
		return fmt.Errorf("dataset deletion ended with error: %w", err)
	}

	return nil
}
