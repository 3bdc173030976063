package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intelplatform/internal/config"
	"intelplatform/internal/logger"
	"intelplatform/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.Assistant{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Model:          "test-model",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return client, server
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(config.Assistant{BaseURL: ""}, logger.Nop())
	assert.Error(t, err)
}

func TestComplete_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"rotate the exposed key"}}]}`)
	})

	reply, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleSystem, Content: "You are an assistant."},
		{Role: models.ChatRoleUser, Content: "leaked API key, what now?"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "rotate the exposed key", reply)
}

func TestComplete_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid api key"}`)
	})

	_, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hello"},
	})
	assert.ErrorIs(t, err, ErrAPIError)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestComplete_NoChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	})

	_, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hello"},
	})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestStream_YieldsFragmentsInOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"check \"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"the \"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive comment\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"logs\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stream, err := client.Stream(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "where do I start?"},
	})
	require.NoError(t, err)
	defer stream.Close()

	var fragments []string
	for {
		fragment, ok := stream.Next()
		if !ok {
			break
		}
		fragments = append(fragments, fragment)
	}

	assert.NoError(t, stream.Err())
	assert.Equal(t, []string{"check ", "the ", "logs"}, fragments)
	assert.Equal(t, "check the logs", strings.Join(fragments, ""))
}

func TestStream_ExhaustedStreamStaysDone(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"done\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	stream, err := client.Stream(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	_, ok := stream.Next()
	assert.True(t, ok)
	_, ok = stream.Next()
	assert.False(t, ok)

	// a finished stream never restarts
	_, ok = stream.Next()
	assert.False(t, ok)
	assert.NoError(t, stream.Err())
}

func TestStream_MidStreamAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"model overloaded\"}}\n\n")
	})

	stream, err := client.Stream(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	fragment, ok := stream.Next()
	assert.True(t, ok)
	assert.Equal(t, "partial", fragment)

	_, ok = stream.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, stream.Err(), ErrAPIError)
}

func TestStream_HTTPErrorBeforeFirstFragment(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message":"rate limited"}`)
	})

	_, err := client.Stream(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
	})
	assert.ErrorIs(t, err, ErrAPIError)
}

func TestComplete_TransportError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Complete(context.Background(), []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "hi"},
	})
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.False(t, errors.Is(err, ErrAPIError))
}
