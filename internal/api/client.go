package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/kutbudev/tagsync/internal/config"
	apierrors "github.com/kutbudev/tagsync/internal/errors"
	"github.com/kutbudev/tagsync/internal/log"
)

type Client struct {
	GraphQLURL string
	HTTPClient *http.Client

	// RequestID is sent as X-Request-Id on every call of this client.
	RequestID string
}

// NewClient creates a client for the configured GraphQL endpoint. When an API
// token is set it is exchanged for an access token via OAuth2 client credentials;
// a bearer token is used as-is.
func NewClient(ctx context.Context, cfg config.APIConfig) *Client {
	base := &http.Client{Timeout: cfg.Timeout}

	var httpClient *http.Client
	switch {
	case cfg.Token != "":
		cc := clientcredentials.Config{
			ClientID:     "apitoken",
			ClientSecret: cfg.Token,
			TokenURL:     cfg.TokenURL(),
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		httpClient = cc.Client(context.WithValue(ctx, oauth2.HTTPClient, base))
		httpClient.Timeout = cfg.Timeout
	case cfg.Bearer != "":
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Bearer, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), src)
		httpClient.Timeout = cfg.Timeout
	default:
		httpClient = base
	}

	return &Client{
		GraphQLURL: cfg.GraphQLURL(),
		HTTPClient: httpClient,
		RequestID:  uuid.NewString(),
	}
}

type graphqlRequest struct {
	OperationName *string        `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

// Exec sends query with variables and decodes the data payload into out.
// Transport failures, GraphQL errors and empty data are all returned as errors;
// the offending request is logged first.
func (c *Client) Exec(ctx context.Context, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body := graphqlRequest{Query: query, Variables: variables}

	respBody, err := c.makeRequest(ctx, body)
	if err != nil {
		return err
	}

	var resp graphqlResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return fmt.Errorf("failed to unmarshal graphql response: %w", err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, len(resp.Errors))
		raw := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			raw[i] = string(e)
			var m struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(e, &m) == nil && m.Message != "" {
				messages[i] = m.Message
			} else {
				messages[i] = raw[i]
			}
		}
		log.Errorw("graphql request returned errors",
			"errors", raw,
			"request", requestForLog(body),
			"request_id", c.RequestID)
		return &apierrors.GraphQLError{Messages: messages}
	}

	if isEmptyData(resp.Data) {
		log.Errorw("graphql request returned no data",
			"request", requestForLog(body),
			"request_id", c.RequestID)
		return apierrors.ErrEmptyData
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal graphql data: %w", err)
	}
	return nil
}

// makeRequest posts the request body and returns the raw response body
func (c *Client) makeRequest(ctx context.Context, body graphqlRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.RequestID != "" {
		req.Header.Set("X-Request-Id", c.RequestID)
	}

	log.Debugw("graphql request", "request", requestForLog(body), "request_id", c.RequestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Errorw("graphql request failed", "error", err, "request", requestForLog(body))
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorw("graphql request rejected",
			"status", resp.StatusCode,
			"response", string(respBody),
			"request", requestForLog(body),
			"request_id", c.RequestID)
		return nil, &apierrors.TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

func isEmptyData(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 ||
		bytes.Equal(trimmed, []byte("null")) ||
		bytes.Equal(trimmed, []byte("{}"))
}

func requestForLog(body graphqlRequest) string {
	data, err := json.Marshal(body)
	if err != nil {
		return body.Query
	}
	return string(data)
}
