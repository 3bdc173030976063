package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"intelplatform/internal/logger"
	"intelplatform/models"
)

var incidentColumns = []string{"id", "date_reported", "incident_type", "severity", "status", "description"}

// incidentRepository is the SQLite-backed implementation of
// [IncidentRepository] over the cyber_incidents table.
type incidentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewIncidentRepository constructs an [IncidentRepository] backed by the
// provided database connection and logger.
func NewIncidentRepository(db *DB, logger *logger.Logger) IncidentRepository {
	logger.Debug().Msg("creating incident repository")
	return &incidentRepository{
		db:     db,
		logger: logger,
	}
}

// List returns up to limit incidents in store-native order (no ORDER BY).
// limit <= 0 disables the cap.
func (r *incidentRepository) List(ctx context.Context, limit int) ([]models.SecurityIncident, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(incidentColumns...).From(models.SecurityIncident{}.TableName())
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.List").Msg("failed to query incidents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var incidents []models.SecurityIncident
	for rows.Next() {
		var incident models.SecurityIncident
		if scanErr := rows.Scan(
			&incident.ID,
			&incident.DateReported,
			&incident.IncidentType,
			&incident.Severity,
			&incident.Status,
			&incident.Description,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "*incidentRepository.List").Msg("failed to scan incident row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		incidents = append(incidents, incident)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*incidentRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return incidents, nil
}

// Count returns the total number of incidents.
func (r *incidentRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, models.SecurityIncident{}.TableName())
}

// Insert persists a new incident and returns it with the store-assigned ID.
func (r *incidentRepository) Insert(ctx context.Context, incident models.SecurityIncident) (models.SecurityIncident, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(incident.TableName()).
		Columns("date_reported", "incident_type", "severity", "status", "description").
		Values(incident.DateReported, incident.IncidentType, incident.Severity, incident.Status, incident.Description).
		ToSql()
	if err != nil {
		return models.SecurityIncident{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.Insert").Msg("failed to insert incident")
		return models.SecurityIncident{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.SecurityIncident{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	incident.ID = id
	return incident, nil
}

// Update applies the non-nil fields of update to the incident with the
// given id. The reported date is immutable.
func (r *incidentRepository) Update(ctx context.Context, id int64, update models.IncidentUpdate) error {
	log := logger.FromContext(ctx)

	builder := sq.Update(models.SecurityIncident{}.TableName()).Where(sq.Eq{"id": id})
	if update.IncidentType != nil {
		builder = builder.Set("incident_type", *update.IncidentType)
	}
	if update.Severity != nil {
		builder = builder.Set("severity", *update.Severity)
	}
	if update.Status != nil {
		builder = builder.Set("status", *update.Status)
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
		log.Err(err).Str("func", "*incidentRepository.Update").Int64("id", id).Msg("failed to update incident")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffectedRows(res)
}

// Delete removes the incident with the given id.
func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(models.SecurityIncident{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*incidentRepository.Delete").Int64("id", id).Msg("failed to delete incident")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffectedRows(res)
}
