package tokengate

import (
	"fmt"
	"net/http"
	"strings"
)

// AccountExtractor is a function that extracts an account identifier from an
// HTTP request. The identifier selects which bucket the request is admitted
// against (e.g., API key, tenant ID, user ID).
type AccountExtractor func(*http.Request) (string, error)

// ExtractHeader returns an AccountExtractor that uses a specific HTTP header.
// Example: ExtractHeader("X-Account-ID") will use the X-Account-ID header value.
func ExtractHeader(headerName string) AccountExtractor {
	return func(r *http.Request) (string, error) {
		value := r.Header.Get(headerName)
		if value == "" {
			return "", fmt.Errorf("%w: header %s not found or empty", ErrAccountExtractionFailed, headerName)
		}
		return value, nil
	}
}

// ExtractBearer returns an AccountExtractor that uses the Bearer token from
// the Authorization header. Expects header format: "Authorization: Bearer <token>"
func ExtractBearer() AccountExtractor {
	return func(r *http.Request) (string, error) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			return "", fmt.Errorf("%w: Authorization header not found", ErrAccountExtractionFailed)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", fmt.Errorf("%w: invalid Authorization header format", ErrAccountExtractionFailed)
		}

		token := parts[1]
		if token == "" {
			return "", fmt.Errorf("%w: empty bearer token", ErrAccountExtractionFailed)
		}

		return token, nil
	}
}

// ExtractQuery returns an AccountExtractor that uses a URL query parameter.
// Example: ExtractQuery("account") matches ?account=acme.
func ExtractQuery(param string) AccountExtractor {
	return func(r *http.Request) (string, error) {
		value := r.URL.Query().Get(param)
		if value == "" {
			return "", fmt.Errorf("%w: query parameter %s not found or empty", ErrAccountExtractionFailed, param)
		}
		return value, nil
	}
}

// ExtractStatic returns an AccountExtractor that always returns the same
// account. Useful when a whole listener is admitted against one bucket.
func ExtractStatic(accountID string) AccountExtractor {
	return func(r *http.Request) (string, error) {
		if accountID == "" {
			return "", fmt.Errorf("%w: static account is empty", ErrAccountExtractionFailed)
		}
		return accountID, nil
	}
}

// ExtractComposite returns an AccountExtractor that tries multiple extractors
// in order and returns the first identifier found. This is useful for
// fallback behavior (e.g., try an API key header, then a query parameter).
func ExtractComposite(extractors ...AccountExtractor) AccountExtractor {
	if len(extractors) == 0 {
		return func(r *http.Request) (string, error) {
			return "", fmt.Errorf("%w: no extractors provided", ErrAccountExtractionFailed)
		}
	}

	return func(r *http.Request) (string, error) {
		var lastErr error
		for _, extractor := range extractors {
			account, err := extractor(r)
			if err == nil && account != "" {
				return account, nil
			}
			lastErr = err
		}
		if lastErr != nil {
			return "", fmt.Errorf("%w: all extractors failed: %v", ErrAccountExtractionFailed, lastErr)
		}
		return "", fmt.Errorf("%w: all extractors returned empty account", ErrAccountExtractionFailed)
	}
}

// ParseAccountExtractorConfig creates an AccountExtractor from a configuration string.
// Supported formats:
// - "header:X-Account-ID" -> ExtractHeader("X-Account-ID")
// - "bearer" -> ExtractBearer()
// - "query:account" -> ExtractQuery("account")
// - "static:global" -> ExtractStatic("global")
func ParseAccountExtractorConfig(config string) (AccountExtractor, error) {
	parts := strings.SplitN(config, ":", 2)

	switch parts[0] {
	case "header":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: header extractor requires format 'header:HeaderName'", ErrInvalidConfig)
		}
		return ExtractHeader(parts[1]), nil

	case "bearer":
		return ExtractBearer(), nil

	case "query":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: query extractor requires format 'query:param'", ErrInvalidConfig)
		}
		return ExtractQuery(parts[1]), nil

	case "static":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: static extractor requires format 'static:account'", ErrInvalidConfig)
		}
		return ExtractStatic(parts[1]), nil

	default:
		return nil, fmt.Errorf("%w: unknown account extractor type: %s", ErrInvalidConfig, parts[0])
	}
}
