package domain

import "time"

// Conversation is one persisted question/answer exchange. Rows are written
// exactly once per completed request and never mutated.
type Conversation struct {
	ID        int64
	UserID    int64
	Question  string
	Response  string
	CreatedAt time.Time
}
