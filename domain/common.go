package domain

import (
	"errors"
)

const (
	// Owner id used for saved recipes until real accounts exist.
	GuestUserID = "temp-user-123"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"

	MessageOpenAIKeyNotConfigured = "OpenAI API key not configured"
	MessageStorageNotConfigured   = "object storage not configured"

	ErrOpenAIKeyNotConfigured = errors.New("OpenAI API key not configured")
	ErrStorageNotConfigured   = errors.New("object storage not configured")

	ErrParseUUID    = errors.New("failed to parse UUID")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
