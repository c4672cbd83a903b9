// Package models contains data types and constants for askbox.
package models

// Endpoints
const (
	EndpointCompletion    = "https://api.openai.com/v1/chat/completions"
	DefaultCredentialURL  = "http://localhost:8888/credential"
	PathCredential        = "/credential"
	PathCredentialNetlify = "/.netlify/functions/get-api-key"
)

// CredentialEnvVar is the one secret the credential provider reads.
const CredentialEnvVar = "OPENAI_API_KEY"

// Completion parameters. These are fixed and not user-configurable.
const (
	CompletionModel       = "gpt-3.5-turbo"
	CompletionMaxTokens   = 500
	CompletionTemperature = 0.7
	SystemPrompt          = "You are a helpful AI assistant that answers general questions. " +
		"Be concise, accurate, and friendly. If asked about the current date, provide today's date. " +
		"If asked about geography, provide accurate information."
)

// Notices shown in the transcript instead of raw errors
const (
	NoticeCredentialUnavailable = "Error: API key not available. Please check your configuration."
	NoticeCompletionFailed      = "Sorry, I encountered an error. Please try again."
)

// HeaderRequestID carries the submission id on completion requests.
const HeaderRequestID = "X-Client-Request-Id"

// DefaultHeaders returns the headers sent on every completion request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "askbox",
	}
}
