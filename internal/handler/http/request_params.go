package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intelplatform/internal/utils"
)

// ErrInvalidIDParam is returned when the {id} URL parameter is missing or
// not a positive integer.
var ErrInvalidIDParam = errors.New("invalid id parameter")

// idParam parses the {id} URL parameter of the matched route.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidIDParam
	}
	return id, nil
}

// sessionID returns the authenticated user's ID from the request context.
// The auth middleware guarantees it is present on every protected route.
func sessionID(r *http.Request) (int64, bool) {
	return utils.GetUserIDFromContext(r.Context())
}
