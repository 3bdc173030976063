package assistant

import "intelplatform/models"

// chatCompletionRequest is the wire format of the chat-completion endpoint.
type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream,omitempty"`
}

// chatCompletionResponse is a non-streaming chat-completion response.
type chatCompletionResponse struct {
	Choices []struct {
		Message models.ChatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// streamChunk is a single SSE payload of a streaming chat completion.
// Fragments arrive in choices[0].delta.content.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the provider-side error envelope.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}
