package api

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/askbox/internal/errors"
	"github.com/diogo/askbox/internal/models"
)

// Complete sends a single-turn completion request for userText and returns
// the assistant reply. Failures come back as *errors.CompletionError tagged
// with the failure kind.
func (c *Client) Complete(ctx context.Context, apiKey, requestID, userText string) (string, error) {
	payload, err := json.Marshal(models.NewCompletionRequest(userText))
	if err != nil {
		return "", apierrors.NewTransportError(c.completionURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.completionURL, bytes.NewReader(payload))
	if err != nil {
		return "", apierrors.NewTransportError(c.completionURL, err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if requestID != "" {
		req.Header.Set(models.HeaderRequestID, requestID)
	}

	start := time.Now()
	status, body, err := c.do(req)
	if err != nil {
		return "", apierrors.NewTransportError(c.completionURL, err)
	}

	logger := c.logger.With().
		Str("request_id", requestID).
		Int("status", status).
		Dur("took", time.Since(start)).
		Logger()

	if !isSuccess(status) {
		msg := gjson.GetBytes(body, PathErrorMessage).String()
		if msg == "" {
			msg = string(body)
		}
		logger.Debug().Msg("completion endpoint returned an error status")
		return "", apierrors.NewStatusError(c.completionURL, status, msg)
	}

	return parseReply(c.completionURL, body)
}

// parseReply extracts the reply text from a completion response body
func parseReply(endpoint string, body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewShapeError(endpoint, "response is not valid JSON")
	}

	reply := gjson.GetBytes(body, PathReply)
	if !reply.Exists() {
		return "", apierrors.NewShapeError(endpoint, "no reply at "+PathReply)
	}
	if reply.Type != gjson.String {
		return "", apierrors.NewShapeError(endpoint, "reply at "+PathReply+" is not a string")
	}

	return reply.String(), nil
}
