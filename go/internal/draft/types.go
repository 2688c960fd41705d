package draft

import (
	"encoding/json"
	"fmt"
)

// Settings controls draft shape. The completion threshold is derived rather
// than hard-coded so non-default rooms (12-entrant) partition correctly.
type Settings struct {
	EntrantCount int `yaml:"entrant_count" json:"entrant_count"`
	Rounds       int `yaml:"rounds" json:"rounds"`
}

// DefaultSettings matches the standard 6-entrant, 6-round best-ball room.
func DefaultSettings() Settings {
	return Settings{EntrantCount: 6, Rounds: 6}
}

// CompletionThreshold is the pick count at which a draft is complete.
func (s Settings) CompletionThreshold() int {
	return s.EntrantCount * s.Rounds
}

// PickPayload is the canonical decoded pick record. Upstream relays deliver
// it either as a JSON object or as a JSON string containing the same object;
// DecodePickPayload handles both so nothing past the ingestion boundary
// cares which form arrived.
type PickPayload struct {
	AppearanceID string `json:"appearance_id"`
	Number       int    `json:"number,omitempty"`
	DraftEntryID string `json:"draft_entry_id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	PlayerName   string `json:"player_name,omitempty"`
}

// DecodePickPayload decodes the string-or-object pick encoding once at the
// boundary.
func DecodePickPayload(raw json.RawMessage) (PickPayload, error) {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = []byte(encoded)
	}

	var payload PickPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return PickPayload{}, fmt.Errorf("decode pick payload: %w", err)
	}
	return payload, nil
}

// RecordPickRequest carries one pick event for a draft.
type RecordPickRequest struct {
	DraftID string          `json:"draftId"`
	Pick    json.RawMessage `json:"pick"`
}

// RecordPickResult reports what a RecordPick call did.
type RecordPickResult struct {
	PickNumber   int  `json:"pick_number"`
	PickCount    int  `json:"pick_count"`
	Completed    bool `json:"completed"`
	TeamsWritten int  `json:"teams_written"`
}
