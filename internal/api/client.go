package api

import (
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"github.com/diogo/askbox/internal/models"
)

// Client talks to the credential provider and the completion endpoint.
// It holds no credential itself; callers pass the key per request.
type Client struct {
	httpClient    tls_client.HttpClient
	credentialURL string
	completionURL string
	logger        zerolog.Logger
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCredentialURL sets the credential provider endpoint
func WithCredentialURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.credentialURL = url
		}
	}
}

// WithCompletionURL sets the chat-completion endpoint
func WithCompletionURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.completionURL = url
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Client
func NewClient(opts ...ClientOption) (*Client, error) {
	client := &Client{
		credentialURL: models.DefaultCredentialURL,
		completionURL: models.EndpointCompletion,
		logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(300),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// do sends req and returns the status code and the full body
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if !isSuccess(resp.StatusCode) {
		// Keep only a bounded prefix of error bodies
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, body, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
