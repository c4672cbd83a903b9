package models

// Sender identifies who produced a transcript entry
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one transcript entry. Messages are appended and never changed.
type Message struct {
	Text   string
	Sender Sender
}

// NewUserMessage creates a user-sender message
func NewUserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser}
}

// NewAssistantMessage creates an assistant-sender message
func NewAssistantMessage(text string) Message {
	return Message{Text: text, Sender: SenderAssistant}
}

// IsUser reports whether the message came from the user
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
