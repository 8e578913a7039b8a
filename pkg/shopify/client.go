package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ssh-randy/photosynthesis/pkg/config"
)

// GraphQLError mirrors the error entries returned by the Admin GraphQL API.
type GraphQLError struct {
	Message    string `json:"message"`
	Path       []any  `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	if e.Extensions.Code != "" {
		return fmt.Sprintf("%s: %s", e.Extensions.Code, e.Message)
	}
	return e.Message
}

type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Client talks to the Shopify Admin GraphQL API on behalf of a shop.
type Client struct {
	apiVersion string
	token      string
	httpClient *http.Client
}

// NewClient builds an Admin API client from the app configuration.
func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		apiVersion: cfg.APIVersion,
		token:      cfg.AdminToken,
		httpClient: http.DefaultClient,
	}
}

// Query posts a GraphQL document with variables to the shop's Admin API and
// decodes the data payload into out. GraphQL-level errors and non-2xx
// responses are returned as errors; partial id misses inside a valid data
// payload are not errors at this layer.
func (c *Client) Query(ctx context.Context, shopDomain, query string, variables map[string]any, out any) error {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, c.apiVersion)

	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encoding graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting graphql query: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading graphql response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("admin api status %d: %s", res.StatusCode, truncate(raw, 512))
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("graphql error: %w", envelope.Errors[0])
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding graphql data: %w", err)
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
