package domain

import "time"

// Topic selects the conversation scenario and its system prompt.
type Topic string

const (
	TopicSchool  Topic = "school"
	TopicWork    Topic = "work"
	TopicDaily   Topic = "daily"
	TopicDefault Topic = "default"
)

// ParseTopic maps a raw topic value onto the closed enum.
// Unknown values fall back to TopicDefault; this is a silent default,
// not an error.
func ParseTopic(raw string) Topic {
	switch Topic(raw) {
	case TopicSchool, TopicWork, TopicDaily:
		return Topic(raw)
	default:
		return TopicDefault
	}
}

// Role tags a chat turn as written by the user or the model.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChatTurn is a single utterance in a user's conversation.
type ChatTurn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Topic     Topic     `json:"topic"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
