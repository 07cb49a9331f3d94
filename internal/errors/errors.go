// Package errors defines the failures a GraphQL round trip can produce.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyData is returned when a response has neither errors nor data.
var ErrEmptyData = errors.New("empty response data")

// TransportError is a non-success HTTP status from the service.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// GraphQLError carries the messages of a response's errors field.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql error: " + strings.Join(e.Messages, "; ")
}

// ParseAPIError turns an API error into a message suitable for the terminal.
func ParseAPIError(err error) string {
	if err == nil {
		return ""
	}

	var te *TransportError
	if errors.As(err, &te) {
		switch {
		case te.StatusCode == 401 || te.StatusCode == 403:
			return "❌ Authentication failed. Run 'tagsync setup token' to store a valid API token."
		case te.StatusCode == 404:
			return "❌ GraphQL endpoint not found. Check api.base_url and api.graphql_path."
		case te.StatusCode >= 500:
			return fmt.Sprintf("❌ Server error (status %d). Try again later.", te.StatusCode)
		default:
			return fmt.Sprintf("❌ Request rejected (status %d): %s", te.StatusCode, te.Body)
		}
	}

	var ge *GraphQLError
	if errors.As(err, &ge) {
		return "❌ The service rejected the request: " + strings.Join(ge.Messages, "; ")
	}

	if errors.Is(err, ErrEmptyData) {
		return "❌ The service returned an empty response."
	}

	return "❌ " + err.Error()
}
