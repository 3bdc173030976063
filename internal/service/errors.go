package service

import "errors"

var (
	// ErrInvalidDataProvided indicates missing or malformed fields in a
	// service call.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single error returned for both an
	// unknown username and a wrong password, so callers cannot distinguish
	// the two cases.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidRole indicates a registration attempt with a role outside
	// the known set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrConfirmDelete indicates the first call of a two-step delete: the
	// record is untouched and the same delete must be repeated to execute.
	ErrConfirmDelete = errors.New("delete requires confirmation")

	// ErrUnknownDomain indicates an assistant exchange addressed to a
	// domain with no configured persona.
	ErrUnknownDomain = errors.New("unknown assistant domain")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
