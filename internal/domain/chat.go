package domain

import "time"

type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one entry in a chat session's append-only log.
type ChatMessage struct {
	ID        string
	Role      ChatRole
	Content   string
	Timestamp time.Time
}
