// Package api provides the HTTP clients for the credential and completion endpoints.
package api

// GJSON paths for extracting values from endpoint responses.
const (
	// PathReply is the assistant text in a chat-completion response
	PathReply = "choices.0.message.content"

	// PathAPIKey is the secret in a credential provider response
	PathAPIKey = "apiKey"

	// PathErrorMessage is the provider's error text, used only for diagnostics
	PathErrorMessage = "error.message"
)

// maxErrorBody caps how much of a failed response body is kept for logs
const maxErrorBody = 4096
