package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Pick is one append-only entry in a draft's pick log.
type Pick struct {
	ID           uuid.UUID       `json:"id"`
	DraftID      string          `json:"draft_id"`
	AppearanceID string          `json:"appearance_id"`
	PlayerName   string          `json:"player_name,omitempty"`
	PickNumber   int             `json:"pick_number"`
	DraftEntryID string          `json:"draft_entry_id,omitempty"`
	UserID       string          `json:"user_id,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"` // raw ingest body, kept for debugging
	CreatedAt    time.Time       `json:"created_at"`
}
