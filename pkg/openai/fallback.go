package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ErrorKind is the closed classification the fallback decision is made on,
// instead of matching substrings at every call site.
type ErrorKind int

const (
	KindModelUnavailable ErrorKind = iota
	KindUnauthorized
	KindRateLimited
	KindMalformed
	KindNetwork
)

// Classify maps a raw upstream error into an ErrorKind. A failure counts as
// model-unavailable when the model name itself was rejected: HTTP 404, the
// model_not_found code, or an error message mentioning "model"/"Model".
func Classify(err error) ErrorKind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindNetwork
	}

	if apiErr.Status == http.StatusNotFound || apiErr.Code == "model_not_found" {
		return KindModelUnavailable
	}
	if strings.Contains(apiErr.Message, "model") || strings.Contains(apiErr.Message, "Model") {
		return KindModelUnavailable
	}

	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadRequest:
		return KindMalformed
	default:
		return KindNetwork
	}
}

// WithFallback runs fn against each model in order. A success returns
// immediately. A model-unavailable failure advances to the next candidate;
// any other failure is returned at once even when candidates remain. When
// every candidate fails the last error is returned.
func WithFallback[T any](
	ctx context.Context,
	models []string,
	fn func(ctx context.Context, model string) (T, error),
) (T, error) {
	var zero T
	var lastErr error

	for i, model := range models {
		log.Infof("attempting OpenAI request with model: %s", model)

		result, err := fn(ctx, model)
		if err == nil {
			return result, nil
		}

		log.Errorf("error with model %s: %v", model, err)
		lastErr = err

		if i == len(models)-1 {
			break
		}

		if Classify(err) != KindModelUnavailable {
			return zero, err
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return zero, lastErr
}
