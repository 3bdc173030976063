package service

import (
	"context"

	"intelplatform/internal/assistant"
	"intelplatform/internal/config"
	"intelplatform/internal/logger"
	"intelplatform/internal/store"
	"intelplatform/models"
)

// Services bundles every application service behind its interface, wired
// once at startup.
type Services struct {
	AuthService      AuthService
	IncidentService  IncidentService
	DatasetService   DatasetService
	TicketService    TicketService
	AssistantService AssistantService
}

// NewServices wires the service layer on top of the repositories, the
// application configuration, and the outbound chat-completion client.
func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, client CompletionClient, logger *logger.Logger) *Services {
	return &Services{
		AuthService:      NewAuthService(repositories.UserRepository, cfg.Auth, logger),
		IncidentService:  NewIncidentService(repositories.IncidentRepository, logger),
		DatasetService:   NewDatasetService(repositories.DatasetRepository, logger),
		TicketService:    NewTicketService(repositories.TicketRepository, logger),
		AssistantService: NewAssistantService(client, logger),
	}
}

// completionClient adapts the assistant transport to the [CompletionClient]
// interface so the service layer can be tested against a mock.
type completionClient struct {
	client *assistant.Client
}

// NewCompletionClient wraps the assistant transport client.
func NewCompletionClient(client *assistant.Client) CompletionClient {
	return completionClient{client: client}
}

func (c completionClient) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	return c.client.Complete(ctx, messages)
}

func (c completionClient) Stream(ctx context.Context, messages []models.ChatMessage) (ReplyStream, error) {
	stream, err := c.client.Stream(ctx, messages)
	if err != nil {
		return nil, err
	}
	return stream, nil
}
