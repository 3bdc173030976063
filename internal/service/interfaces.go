package service

import (
	"context"

	"intelplatform/models"
)

// The service mocks are generated into the handler test package, their only
// consumer: generating them next to the repository mocks would make the mock
// package import this one and close an import cycle for this package's tests.
//go:generate mockgen -source=interfaces.go -destination=../handler/http/services_mock_test.go -package=http

// AuthService handles account registration, credential verification and the
// JWT session-token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account from user.Username, user.Password
	// (plain text) and user.Role, hashing the password with bcrypt before
	// storage. An empty role falls back to [models.DefaultRole].
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login verifies the supplied credentials and returns the stored
	// account. Unknown username and wrong password both yield
	// [ErrInvalidCredentials].
	Login(ctx context.Context, user models.User) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// IncidentService manages security incident records.
type IncidentService interface {
	List(ctx context.Context) ([]models.SecurityIncident, error)
	Metrics(ctx context.Context) (models.IncidentMetrics, error)

	// Create stamps the report date server-side and defaults the status to
	// "Open" when empty.
	Create(ctx context.Context, incident models.SecurityIncident) (models.SecurityIncident, error)
	Update(ctx context.Context, id int64, update models.IncidentUpdate) error

	// Delete is a two-step operation scoped to the calling session: the
	// first call for a given id arms the deletion and returns
	// [ErrConfirmDelete] without touching the store; repeating the call
	// executes it.
	Delete(ctx context.Context, sessionID int64, id int64) error
}

// DatasetService manages dataset metadata records.
type DatasetService interface {
	// List returns up to limit datasets; limit <= 0 applies the default
	// display cap.
	List(ctx context.Context, limit int) ([]models.Dataset, error)
	Count(ctx context.Context) (int, error)

	// Create stamps last_updated server-side.
	Create(ctx context.Context, dataset models.Dataset) (models.Dataset, error)

	// Update applies the non-nil fields and restamps last_updated.
	Update(ctx context.Context, id int64, update models.DatasetUpdate) error

	// Delete follows the same two-step confirmation as incidents.
	Delete(ctx context.Context, sessionID int64, id int64) error
}

// TicketService manages IT tickets. Tickets are read-only after creation.
type TicketService interface {
	// List returns all tickets, optionally filtered by exact priority.
	List(ctx context.Context, priority string) ([]models.ITTicket, error)
	Metrics(ctx context.Context) (models.TicketMetrics, error)

	// Create stamps the creation timestamp server-side and defaults the
	// status to "Open" when empty.
	Create(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error)
}

// AssistantService runs persona-scoped conversations against the external
// chat-completion API, keeping per-session, per-domain history.
type AssistantService interface {
	// Converse performs one atomic exchange: the prompt and the full reply
	// are appended to the domain's history only if the exchange succeeds.
	Converse(ctx context.Context, sessionID int64, domain models.Domain, message string) (string, error)

	// ConverseStream performs one streamed exchange. History is updated
	// with the concatenated reply once the returned stream is fully
	// drained; a failed or abandoned stream rolls the pending prompt back.
	ConverseStream(ctx context.Context, sessionID int64, domain models.Domain, message string) (*ConversationStream, error)

	// Clear drops the history of one domain for the session, leaving the
	// other domains untouched.
	Clear(ctx context.Context, sessionID int64, domain models.Domain) error
}

// CompletionClient is the outbound chat-completion transport used by the
// assistant service.
type CompletionClient interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
	Stream(ctx context.Context, messages []models.ChatMessage) (ReplyStream, error)
}

// ReplyStream is a finite pull iterator over the fragments of a streamed
// reply, as produced by the assistant transport.
type ReplyStream interface {
	Next() (fragment string, ok bool)
	Err() error
	Close() error
}
