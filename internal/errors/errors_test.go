package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", &TransportError{StatusCode: 401}, "Authentication failed"},
		{"not found", &TransportError{StatusCode: 404}, "endpoint not found"},
		{"server", fmt.Errorf("wrapped: %w", &TransportError{StatusCode: 502}), "status 502"},
		{"bad request", &TransportError{StatusCode: 400, Body: "nope"}, "nope"},
		{"graphql", &GraphQLError{Messages: []string{"a", "b"}}, "a; b"},
		{"empty", fmt.Errorf("listTags: %w", ErrEmptyData), "empty response"},
		{"other", fmt.Errorf("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, ParseAPIError(tt.err), tt.want)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "API request failed with status 500: oops", (&TransportError{500, "oops"}).Error())
	assert.Equal(t, "graphql error: x", (&GraphQLError{Messages: []string{"x"}}).Error())
}
