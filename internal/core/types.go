package core

import "time"

const (
	BotName       = "MemoBot"
	BotVersion    = "0.1.0"
	RepositoryURL = "https://github.com/sandevgo/memobot"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Memory is a short note supplied by the user. It is never mutated after creation.
type Memory struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Turn is a single rendered line of a conversation.
type Turn struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
