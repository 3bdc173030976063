package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"intelplatform/internal/logger"
	"intelplatform/models"
)

var ticketColumns = []string{"id", "date_created", "priority", "status", "issue_type", "assigned_to", "description"}

// ticketRepository is the SQLite-backed implementation of [TicketRepository]
// over the it_tickets table. Tickets are append-only.
type ticketRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTicketRepository constructs a [TicketRepository] backed by the provided
// database connection and logger.
func NewTicketRepository(db *DB, logger *logger.Logger) TicketRepository {
	logger.Debug().Msg("creating ticket repository")
	return &ticketRepository{
		db:     db,
		logger: logger,
	}
}

// List returns up to limit tickets in store-native order, optionally
// filtered by exact priority match. limit <= 0 disables the cap; an empty
// priority returns all tickets.
func (r *ticketRepository) List(ctx context.Context, limit int, priority string) ([]models.ITTicket, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(ticketColumns...).From(models.ITTicket{}.TableName())
	if priority != "" {
		builder = builder.Where(sq.Eq{"priority": priority})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.List").Msg("failed to query tickets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var tickets []models.ITTicket
	for rows.Next() {
		var ticket models.ITTicket
		if scanErr := rows.Scan(
			&ticket.ID,
			&ticket.DateCreated,
			&ticket.Priority,
			&ticket.Status,
			&ticket.IssueType,
			&ticket.AssignedTo,
			&ticket.Description,
		); scanErr != nil {
			log.Err(scanErr).Str("func", "*ticketRepository.List").Msg("failed to scan ticket row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		tickets = append(tickets, ticket)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "*ticketRepository.List").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return tickets, nil
}

// Count returns the total number of tickets.
func (r *ticketRepository) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.db, models.ITTicket{}.TableName())
}

// Insert persists a new ticket and returns it with the store-assigned
// ticket number.
func (r *ticketRepository) Insert(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert(ticket.TableName()).
		Columns("date_created", "priority", "status", "issue_type", "assigned_to", "description").
		Values(ticket.DateCreated, ticket.Priority, ticket.Status, ticket.IssueType, ticket.AssignedTo, ticket.Description).
		ToSql()
	if err != nil {
		return models.ITTicket{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*ticketRepository.Insert").Msg("failed to insert ticket")
		return models.ITTicket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.ITTicket{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	ticket.ID = id
	return ticket, nil
}
