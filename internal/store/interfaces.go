package store

import (
	"context"

	"intelplatform/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repositories_mock.go -package=mock

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts a new account and returns it with the
	// store-assigned UserID. Returns [ErrUsernameTaken] when the username
	// is already registered.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the account matching username exactly
	// (case-sensitive) or [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// IncidentRepository maps rows of cyber_incidents to typed records.
type IncidentRepository interface {
	// List returns up to limit incidents in store-native order.
	// limit <= 0 means no cap.
	List(ctx context.Context, limit int) ([]models.SecurityIncident, error)

	// Count returns the total row count independent of any display cap.
	Count(ctx context.Context) (int, error)

	// Insert persists a new incident and returns it with the
	// store-assigned ID.
	Insert(ctx context.Context, incident models.SecurityIncident) (models.SecurityIncident, error)

	// Update applies the non-nil fields of update to the row with the
	// given id. Returns [ErrRecordNotFound] when no row matches.
	Update(ctx context.Context, id int64, update models.IncidentUpdate) error

	// Delete removes the row with the given id.
	// Returns [ErrRecordNotFound] when no row matches.
	Delete(ctx context.Context, id int64) error
}

// DatasetRepository maps rows of datasets_metadata to typed records.
type DatasetRepository interface {
	List(ctx context.Context, limit int) ([]models.Dataset, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, dataset models.Dataset) (models.Dataset, error)

	// Update applies the non-nil fields of update to the row with the
	// given id and restamps last_updated to lastUpdated.
	Update(ctx context.Context, id int64, update models.DatasetUpdate, lastUpdated string) error
	Delete(ctx context.Context, id int64) error
}

// TicketRepository maps rows of it_tickets to typed records.
// Tickets are read-only after creation: no update or delete methods.
type TicketRepository interface {
	// List returns up to limit tickets, optionally filtered by exact
	// priority match. limit <= 0 means no cap; empty priority means all.
	List(ctx context.Context, limit int, priority string) ([]models.ITTicket, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error)
}
