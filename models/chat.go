package models

// Chat roles as used by the chat-completion wire format.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation, in the shape the
// chat-completion API expects.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Domain selects the assistant persona for a text-generation exchange.
type Domain string

const (
	DomainCybersecurity Domain = "Cybersecurity"
	DomainDataScience   Domain = "Data Science"
	DomainITOperations  Domain = "IT Operations"
)

// ValidDomain reports whether d names one of the three assistant personas.
func ValidDomain(d Domain) bool {
	switch d {
	case DomainCybersecurity, DomainDataScience, DomainITOperations:
		return true
	}
	return false
}

// ChatRequest is the inbound body of an assistant exchange.
type ChatRequest struct {
	Domain  Domain `json:"domain"`
	Message string `json:"message"`
}

// ChatResponse is the atomic (non-streamed) reply of an assistant exchange.
type ChatResponse struct {
	Domain Domain `json:"domain"`
	Reply  string `json:"reply"`
}
