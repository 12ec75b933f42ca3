package llm

import "fmt"

// baseError is the common error payload for all llm errors.
type baseError struct {
	Message string
	Cause   error
}

func (e *baseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *baseError) Unwrap() error {
	return e.Cause
}

// ProviderError is an error returned by an LLM provider.
type ProviderError struct {
	baseError
	Provider   string
	StatusCode int
	Retryable  bool
	RetryAfter *float64 // seconds, from rate-limit headers when present
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("[%s] %s (status=%d, retryable=%v)", e.Provider, e.Message, e.StatusCode, e.Retryable)
}

// Provider error kinds.

type AuthenticationError struct{ ProviderError }
type NotFoundError struct{ ProviderError }
type InvalidRequestError struct{ ProviderError }
type RateLimitError struct{ ProviderError }
type ServerError struct{ ProviderError }
type ContentFilterError struct{ ProviderError }
type ContextLengthError struct{ ProviderError }

// Non-provider error kinds.

type RequestTimeoutError struct{ baseError }
type NetworkError struct{ baseError }
type AbortError struct{ baseError }
type ConfigurationError struct{ baseError }

// IsRetryable reports whether the error is safe to retry at the transport
// level. Unknown errors default to retryable; configuration and request
// shape problems never are.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch e := err.(type) {
	case *ProviderError:
		return e.Retryable
	case *AuthenticationError, *NotFoundError, *InvalidRequestError,
		*ContextLengthError, *ContentFilterError, *ConfigurationError, *AbortError:
		return false
	case *RateLimitError, *ServerError, *NetworkError, *RequestTimeoutError:
		return true
	default:
		return true
	}
}
