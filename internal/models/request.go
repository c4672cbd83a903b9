package models

// Roles used in completion requests
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one entry of the completion request's messages array
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the body POSTed to the completion endpoint
type CompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// NewCompletionRequest builds the fixed-shape request for a single user message.
// Earlier turns are never included.
func NewCompletionRequest(userText string) CompletionRequest {
	return CompletionRequest{
		Model: CompletionModel,
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: SystemPrompt},
			{Role: RoleUser, Content: userText},
		},
		MaxTokens:   CompletionMaxTokens,
		Temperature: CompletionTemperature,
	}
}
