package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"intelplatform/internal/service"
	"intelplatform/models"
)

// relayStream is a canned transport stream for the SSE relay tests.
type relayStream struct {
	fragments []string
	failErr   error
	pos       int
	closed    bool
}

func (s *relayStream) Next() (string, bool) {
	if s.pos >= len(s.fragments) {
		return "", false
	}
	fragment := s.fragments[s.pos]
	s.pos++
	return fragment, true
}

func (s *relayStream) Err() error { return s.failErr }

func (s *relayStream) Close() error {
	s.closed = true
	return nil
}

func TestAssistantChat_Atomic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	mocks.assistant.EXPECT().
		Converse(gomock.Any(), int64(7), models.DomainCybersecurity, "What is CVE-2024-3094?").
		Return("It is the xz-utils backdoor.", nil)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat",
		`{"domain":"Cybersecurity","message":"What is CVE-2024-3094?"}`, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"domain":"Cybersecurity","reply":"It is the xz-utils backdoor."}`, recorder.Body.String())
}

func TestAssistantChat_UnknownDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	mocks.assistant.EXPECT().
		Converse(gomock.Any(), int64(7), models.Domain("Astrology"), "hello").
		Return("", service.ErrUnknownDomain)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat",
		`{"domain":"Astrology","message":"hello"}`, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAssistantChat_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat",
		`{"domain":`, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAssistantChat_StreamRelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	var committed string
	inner := &relayStream{fragments: []string{"Rotate ", "the keys."}}
	stream := service.NewConversationStream(inner, func(reply string) { committed = reply })

	mocks.assistant.EXPECT().
		ConverseStream(gomock.Any(), int64(7), models.DomainCybersecurity, "What now?").
		Return(stream, nil)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat?stream=1",
		`{"domain":"Cybersecurity","message":"What now?"}`, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/event-stream", recorder.Header().Get("Content-Type"))

	body := recorder.Body.String()
	assert.Contains(t, body, "data: \"Rotate \"\n\n")
	assert.Contains(t, body, "data: \"the keys.\"\n\n")
	assert.Contains(t, body, "data: [DONE]\n\n")

	assert.Equal(t, "Rotate the keys.", committed)
	assert.True(t, inner.closed)
}

func TestAssistantChat_StreamFailsBeforeFirstFragment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	mocks.assistant.EXPECT().
		ConverseStream(gomock.Any(), int64(7), models.Domain("Astrology"), "hello").
		Return(nil, service.ErrUnknownDomain)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat?stream=1",
		`{"domain":"Astrology","message":"hello"}`, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAssistantChat_StreamFailsMidFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	var committed bool
	inner := &relayStream{fragments: []string{"partial"}, failErr: assert.AnError}
	stream := service.NewConversationStream(inner, func(string) { committed = true })

	mocks.assistant.EXPECT().
		ConverseStream(gomock.Any(), int64(7), models.DomainITOperations, "status?").
		Return(stream, nil)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/chat?stream=1",
		`{"domain":"IT Operations","message":"status?"}`, true)

	// status line is already committed when the upstream drops
	require.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "data: \"partial\"\n\n")
	assert.Contains(t, body, "event: error\n")
	assert.NotContains(t, body, "data: [DONE]")

	assert.False(t, committed, "a broken exchange must not be committed to history")
}

func TestAssistantClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	mocks.assistant.EXPECT().
		Clear(gomock.Any(), int64(7), models.DomainDataScience).
		Return(nil)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/clear",
		`{"domain":"Data Science"}`, true)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAssistantClear_UnknownDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)
	expectAuthenticated(mocks, 7)

	mocks.assistant.EXPECT().
		Clear(gomock.Any(), int64(7), models.Domain("Astrology")).
		Return(service.ErrUnknownDomain)

	recorder := doRequest(t, router, http.MethodPost, "/api/assistant/clear",
		`{"domain":"Astrology"}`, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
