package models

// Message is one chat message as delivered by the live transport.
//
// Timestamp is kept as the raw ISO string the backend emits; the client never
// orders by it — arrival order is authoritative.
type Message struct {
	ID        string `json:"id,omitempty"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Body      string `json:"message"`
	Timestamp string `json:"timestamp"`
	Room      string `json:"room,omitempty"`
	LocalEcho bool   `json:"-"`
}

// ChatExchange is one question/answer pair from the AI assistant.
type ChatExchange struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Language string `json:"language"`
}
