package core

import (
	"context"
	"time"
)

// Message is a direct or group message. Exactly one of Recipient and GroupID
// is set; Sender is always the verified token subject.
type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	GroupID   string    `json:"group_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Group is a named set of users that can be messaged together.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageStore interface {
	CreateMessage(ctx context.Context, message Message) error

	// MessagesBetween returns direct messages exchanged between two users,
	// oldest first.
	MessagesBetween(ctx context.Context, a, b string) ([]Message, error)

	// MessagesByGroup returns a group's messages, oldest first.
	MessagesByGroup(ctx context.Context, groupID string) ([]Message, error)
}

type GroupStore interface {
	// CreateGroup stores the group and its membership. The creator is always
	// a member.
	CreateGroup(ctx context.Context, group Group) error

	// GroupsByMember returns the groups the user belongs to.
	GroupsByMember(ctx context.Context, username string) ([]Group, error)

	// IsMember reports whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, username string) (bool, error)
}
