package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"intelplatform/internal/logger"
	"intelplatform/internal/service"
	"intelplatform/models"
)

// testMocks bundles one mock per service interface.
type testMocks struct {
	auth      *MockAuthService
	incidents *MockIncidentService
	datasets  *MockDatasetService
	tickets   *MockTicketService
	assistant *MockAssistantService
}

func newTestRouter(t *testing.T, ctrl *gomock.Controller) (*chi.Mux, *testMocks) {
	t.Helper()

	mocks := &testMocks{
		auth:      NewMockAuthService(ctrl),
		incidents: NewMockIncidentService(ctrl),
		datasets:  NewMockDatasetService(ctrl),
		tickets:   NewMockTicketService(ctrl),
		assistant: NewMockAssistantService(ctrl),
	}

	handler := NewHandler(&service.Services{
		AuthService:      mocks.auth,
		IncidentService:  mocks.incidents,
		DatasetService:   mocks.datasets,
		TicketService:    mocks.tickets,
		AssistantService: mocks.assistant,
	}, logger.Nop())

	return handler.Init(), mocks
}

// expectAuthenticated wires ParseToken to accept the "Bearer valid-token"
// header and resolve it to the given session identity.
func expectAuthenticated(mocks *testMocks, userID int64) {
	mocks.auth.EXPECT().ParseToken(gomock.Any(), "valid-token").Return(models.Token{
		UserID:   userID,
		Username: "alice",
		Role:     models.RoleAnalyst,
	}, nil).AnyTimes()
}

func doRequest(t *testing.T, router *chi.Mux, method, target, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authenticated {
		req.Header.Set("Authorization", "Bearer valid-token")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRouter_UnauthenticatedRequestsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	protected := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/incidents/"},
		{http.MethodGet, "/api/datasets/"},
		{http.MethodGet, "/api/tickets/"},
		{http.MethodPost, "/api/assistant/chat"},
	}

	for _, tc := range protected {
		recorder := doRequest(t, router, tc.method, tc.target, "", false)
		require.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", tc.method, tc.target)
	}
}

func TestRouter_MalformedAuthorizationHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no ParseToken expectation: a header that does not parse as a bearer
	// token must be rejected before the token service is consulted
	router, _ := newTestRouter(t, ctrl)

	headers := []string{
		"abc.def.ghi", // no scheme
		"Bearer ",     // scheme without a token
	}

	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.Header.Set("Authorization", header)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestRouter_InvalidBearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, mocks := newTestRouter(t, ctrl)

	mocks.auth.EXPECT().ParseToken(gomock.Any(), "expired-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}
