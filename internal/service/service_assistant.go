package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"intelplatform/internal/logger"
	"intelplatform/models"
)

// defaultPersona is used when a domain has no dedicated system instruction.
const defaultPersona = "You are a helpful assistant."

// personas fixes the system instruction of each expert domain.
var personas = map[models.Domain]string{
	models.DomainCybersecurity: "You are a cybersecurity expert. Analyze incidents, threats, and" +
		" vulnerabilities. Provide technical guidance using MITRE ATT&CK, CVE " +
		"references. Prioritize actionable recommendations.",
	models.DomainDataScience: "You are a data science expert. Help with data" +
		" analysis, visualization, statistical methods, and machine learning." +
		" Explain concepts clearly and suggest appropriate techniques.",
	models.DomainITOperations: "You are an IT operations expert. Help troubleshoot issues," +
		" optimize systems, manage tasks, and provide infrastructure guidance." +
		" Focus on practical solutions.",
}

// historyKey scopes a conversation history to one session and one domain.
type historyKey struct {
	sessionID int64
	domain    models.Domain
}

// assistantService is the concrete implementation of AssistantService.
// Conversation histories live in memory for the lifetime of the process and
// are guarded by a single mutex; an exchange is committed to history only
// after it has fully succeeded, so a failed exchange leaves the history
// exactly as it was.
type assistantService struct {
	client CompletionClient

	mu        sync.Mutex
	histories map[historyKey][]models.ChatMessage

	logger *logger.Logger
}

// NewAssistantService constructs an AssistantService on top of the given
// chat-completion transport. Safe for concurrent use.
func NewAssistantService(client CompletionClient, logger *logger.Logger) AssistantService {
	return &assistantService{
		client:    client,
		histories: make(map[historyKey][]models.ChatMessage),
		logger:    logger,
	}
}

// persona returns the system instruction for the domain.
func persona(domain models.Domain) string {
	if prompt, ok := personas[domain]; ok {
		return prompt
	}
	return defaultPersona
}

// buildMessages snapshots the request payload for one exchange: the domain
// persona, the committed history, and the pending prompt.
func (s *assistantService) buildMessages(key historyKey, message string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.histories[key]
	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: models.ChatRoleSystem, Content: persona(key.domain)})
	messages = append(messages, history...)
	messages = append(messages, models.ChatMessage{Role: models.ChatRoleUser, Content: message})

	return messages
}

// commitExchange appends the completed user/assistant turn pair to the
// domain's history.
func (s *assistantService) commitExchange(key historyKey, message, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.histories[key] = append(s.histories[key],
		models.ChatMessage{Role: models.ChatRoleUser, Content: message},
		models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply},
	)
}

// Converse performs one atomic exchange against the domain persona.
//
// Returns ErrUnknownDomain for an unrecognized domain and
// ErrInvalidDataProvided for an empty message. Any transport or API failure
// fails the exchange without touching the history.
func (s *assistantService) Converse(ctx context.Context, sessionID int64, domain models.Domain, message string) (string, error) {
	log := logger.FromContext(ctx)

	if !models.ValidDomain(domain) {
		return "", ErrUnknownDomain
	}
	if strings.TrimSpace(message) == "" {
		return "", ErrInvalidDataProvided
	}

	key := historyKey{sessionID: sessionID, domain: domain}

	reply, err := s.client.Complete(ctx, s.buildMessages(key, message))
	if err != nil {
		log.Err(err).Str("domain", string(domain)).Msg("assistant exchange failed")
		return "", fmt.Errorf("assistant exchange failed: %w", err)
	}

	s.commitExchange(key, message, reply)
	return reply, nil
}

// ConverseStream performs one streamed exchange against the domain persona.
//
// The returned stream yields reply fragments as they arrive. Once it is
// drained without error, the prompt and the concatenated reply are committed
// to the domain's history; a stream that fails or is closed early commits
// nothing.
func (s *assistantService) ConverseStream(ctx context.Context, sessionID int64, domain models.Domain, message string) (*ConversationStream, error) {
	log := logger.FromContext(ctx)

	if !models.ValidDomain(domain) {
		return nil, ErrUnknownDomain
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidDataProvided
	}

	key := historyKey{sessionID: sessionID, domain: domain}

	stream, err := s.client.Stream(ctx, s.buildMessages(key, message))
	if err != nil {
		log.Err(err).Str("domain", string(domain)).Msg("assistant stream failed to start")
		return nil, fmt.Errorf("assistant exchange failed: %w", err)
	}

	return NewConversationStream(stream, func(reply string) {
		s.commitExchange(key, message, reply)
	}), nil
}

// Clear drops the session's history for one domain; the other domains keep
// their histories. Returns ErrUnknownDomain for an unrecognized domain.
func (s *assistantService) Clear(ctx context.Context, sessionID int64, domain models.Domain) error {
	if !models.ValidDomain(domain) {
		return ErrUnknownDomain
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.histories, historyKey{sessionID: sessionID, domain: domain})

	return nil
}

// ConversationStream wraps a transport-level reply stream, accumulating the
// fragments so the full reply can be committed to the conversation history
// once the stream is drained cleanly.
type ConversationStream struct {
	inner  ReplyStream
	commit func(reply string)

	full     strings.Builder
	finished bool
}

// NewConversationStream wires a transport-level stream to a commit callback
// invoked with the full reply on clean exhaustion.
func NewConversationStream(inner ReplyStream, commit func(reply string)) *ConversationStream {
	return &ConversationStream{inner: inner, commit: commit}
}

// Next returns the next reply fragment; ok is false once the stream is
// exhausted. On clean exhaustion the accumulated reply is committed to the
// history exactly once.
func (c *ConversationStream) Next() (fragment string, ok bool) {
	fragment, ok = c.inner.Next()
	if ok {
		c.full.WriteString(fragment)
		return fragment, true
	}

	if !c.finished {
		c.finished = true
		if c.inner.Err() == nil {
			c.commit(c.full.String())
		}
	}
	return "", false
}

// Err returns the first error encountered while consuming the stream.
func (c *ConversationStream) Err() error {
	return c.inner.Err()
}

// Close releases the underlying stream. Closing before the stream is
// drained abandons the exchange; nothing is committed to the history.
func (c *ConversationStream) Close() error {
	return c.inner.Close()
}
