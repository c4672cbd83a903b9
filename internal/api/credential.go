package api

import (
	"context"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/askbox/internal/errors"
)

// FetchCredential asks the credential provider for the completion API key.
// Any failure comes back as *errors.CredentialFetchError.
func (c *Client) FetchCredential(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.credentialURL, nil)
	if err != nil {
		return "", apierrors.NewCredentialFetchError(apierrors.KindTransport, c.credentialURL, 0, "create request", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return "", apierrors.NewCredentialFetchError(apierrors.KindTransport, c.credentialURL, status, "", err)
	}

	if !isSuccess(status) {
		msg := gjson.GetBytes(body, "error").String()
		return "", apierrors.NewCredentialFetchError(apierrors.KindStatus, c.credentialURL, status, msg, nil)
	}

	key := gjson.GetBytes(body, PathAPIKey)
	if key.Type != gjson.String || key.String() == "" {
		return "", apierrors.NewCredentialFetchError(apierrors.KindShape, c.credentialURL, status, "no apiKey in response", nil)
	}

	c.logger.Debug().Str("endpoint", c.credentialURL).Msg("credential fetched from provider")
	return key.String(), nil
}
