package events

import (
	"context"
	"time"
)

// EventType identifies a draft lifecycle event.
type EventType string

const (
	EventPickRecorded   EventType = "pick_recorded"
	EventDraftCompleted EventType = "draft_completed"
)

// DraftEvent is the envelope published when a pick lands or a draft completes.
type DraftEvent struct {
	Type         EventType `json:"type"`
	DraftID      string    `json:"draft_id"`
	AppearanceID string    `json:"appearance_id,omitempty"`
	PlayerName   string    `json:"player_name,omitempty"`
	PickNumber   int       `json:"pick_number,omitempty"`
	PickCount    int       `json:"pick_count,omitempty"`
	TeamCount    int       `json:"team_count,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher is an interface that defines our publisher.
type Publisher interface {
	Publish(ctx context.Context, event DraftEvent) error
}
