package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intelplatform/internal/logger"
	"intelplatform/internal/store"
	"intelplatform/models"
)

// incidentService is the concrete implementation of IncidentService.
type incidentService struct {
	incidentRepository store.IncidentRepository
	confirmer          *deleteConfirmer

	// now stamps report dates; swapped out in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewIncidentService constructs an IncidentService backed by the given
// repository. The returned service holds the in-memory delete-confirmation
// state and is safe for concurrent use.
func NewIncidentService(incidentRepository store.IncidentRepository, logger *logger.Logger) IncidentService {
	return &incidentService{
		incidentRepository: incidentRepository,
		confirmer:          newDeleteConfirmer(),
		now:                time.Now,
		logger:             logger,
	}
}

// List returns all recorded incidents.
func (s *incidentService) List(ctx context.Context) ([]models.SecurityIncident, error) {
	incidents, err := s.incidentRepository.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing incidents failed: %w", err)
	}
	return incidents, nil
}

// Metrics computes the incident dashboard counters. The severity threshold
// uses the application-side severity mapping, so the medium-or-worse count
// cannot be pushed into SQL.
func (s *incidentService) Metrics(ctx context.Context) (models.IncidentMetrics, error) {
	incidents, err := s.incidentRepository.List(ctx, 0)
	if err != nil {
		return models.IncidentMetrics{}, fmt.Errorf("listing incidents for metrics failed: %w", err)
	}

	metrics := models.IncidentMetrics{Total: len(incidents)}
	for _, incident := range incidents {
		if strings.EqualFold(incident.Status, "Open") {
			metrics.Open++
		}
		if incident.SeverityLevel() >= 2 {
			metrics.MediumOrWorse++
		}
	}

	return metrics, nil
}

// Create stamps the report date with the current server time, defaults the
// status to "Open" when empty, and persists the incident.
//
// Returns ErrInvalidDataProvided when the incident type or severity is
// missing.
func (s *incidentService) Create(ctx context.Context, incident models.SecurityIncident) (models.SecurityIncident, error) {
	log := logger.FromContext(ctx)

	if incident.IncidentType == "" || incident.Severity == "" {
		log.Error().Msg("incident type and severity are required")
		return models.SecurityIncident{}, ErrInvalidDataProvided
	}

	incident.DateReported = s.now().Format(models.IncidentDateFormat)
	if incident.Status == "" {
		incident.Status = "Open"
	}

	created, err := s.incidentRepository.Insert(ctx, incident)
	if err != nil {
		log.Err(err).Str("type", incident.IncidentType).Msg("incident creation ended with error")
		return models.SecurityIncident{}, fmt.Errorf("incident creation ended with error: %w", err)
	}

	return created, nil
}

// Update applies the non-nil fields of update to the incident with the given
// id. Returns ErrInvalidDataProvided when update carries no fields at all,
// since an empty set-list cannot be rendered into SQL.
func (s *incidentService) Update(ctx context.Context, id int64, update models.IncidentUpdate) error {
	log := logger.FromContext(ctx)

	if update.IncidentType == nil && update.Severity == nil && update.Status == nil && update.Description == nil {
		log.Error().Int64("id", id).Msg("incident update carries no fields")
		return ErrInvalidDataProvided
	}

	if err := s.incidentRepository.Update(ctx, id, update); err != nil {
		log.Err(err).Int64("id", id).Msg("incident update ended with error")
		return fmt.Errorf("incident update ended with error: %w", err)
	}

	return nil
}

// Delete removes the incident with the given id using the two-step protocol:
// the first call per (session, id) arms the deletion and returns
// ErrConfirmDelete without touching the store; the immediate repeat executes
// it. A failed execution requires arming again.
func (s *incidentService) Delete(ctx context.Context, sessionID int64, id int64) error {
	log := logger.FromContext(ctx)

	if !s.confirmer.confirm(sessionID, models.SecurityIncident{}.TableName(), id) {
		log.Debug().Int64("id", id).Int64("session", sessionID).Msg("incident deletion armed")
		return ErrConfirmDelete
	}

	if err := s.incidentRepository.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("incident deletion ended with error")
		return fmt.Errorf("incident deletion ended with error: %w", err)
	}

	return nil
}
