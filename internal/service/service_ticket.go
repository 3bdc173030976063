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

// ticketService is the concrete implementation of TicketService.
// Tickets are append-only; there is no update or delete path.
type ticketService struct {
	ticketRepository store.TicketRepository

	// now stamps creation timestamps; swapped out in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewTicketService constructs a TicketService backed by the given
// repository. Safe for concurrent use.
func NewTicketService(ticketRepository store.TicketRepository, logger *logger.Logger) TicketService {
	return &ticketService{
		ticketRepository: ticketRepository,
		now:              time.Now,
		logger:           logger,
	}
}

// List returns all tickets, optionally filtered by exact priority match.
func (s *ticketService) List(ctx context.Context, priority string) ([]models.ITTicket, error) {
	tickets, err := s.ticketRepository.List(ctx, 0, priority)
	if err != nil {
		return nil, fmt.Errorf("listing tickets failed: %w", err)
	}
	return tickets, nil
}

// Metrics computes the ticket dashboard counters: total, open, and a
// per-priority breakdown.
func (s *ticketService) Metrics(ctx context.Context) (models.TicketMetrics, error) {
	tickets, err := s.ticketRepository.List(ctx, 0, "")
	if err != nil {
		return models.TicketMetrics{}, fmt.Errorf("listing tickets for metrics failed: %w", err)
	}

	metrics := models.TicketMetrics{
		Total:      len(tickets),
		ByPriority: make(map[string]int),
	}
	for _, ticket := range tickets {
		if strings.EqualFold(ticket.Status, "Open") {
			metrics.Open++
		}
		if ticket.Priority != "" {
			metrics.ByPriority[ticket.Priority]++
		}
	}

	return metrics, nil
}

// Create stamps the creation timestamp with the current server time,
// defaults the status to "Open" when empty, and persists the ticket.
//
// Returns ErrInvalidDataProvided when the priority, issue type or
// description is missing.
func (s *ticketService) Create(ctx context.Context, ticket models.ITTicket) (models.ITTicket, error) {
	log := logger.FromContext(ctx)

	if ticket.Priority == "" || ticket.IssueType == "" || ticket.Description == "" {
		log.Error().Msg("ticket priority, issue type and description are required")
		return models.ITTicket{}, ErrInvalidDataProvided
	}

	ticket.DateCreated = s.now().Format(models.TicketDateFormat)
	if ticket.Status == "" {
		ticket.Status = "Open"
	}

	created, err := s.ticketRepository.Insert(ctx, ticket)
	if err != nil {
		log.Err(err).Str("priority", ticket.Priority).Msg("ticket creation ended with error")
		return models.ITTicket{}, fmt.Errorf("ticket creation ended with error: %w", err)
	}

	return created, nil
}
