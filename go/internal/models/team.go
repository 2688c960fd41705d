package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Team is a materialized, completed roster for one entrant in one draft.
// Players holds the sorted, comma-joined appearance ids so two rosters can
// be compared without caring about draft order. Teams are immutable once
// written.
type Team struct {
	ID        uuid.UUID `json:"id"`
	DraftID   string    `json:"draft_id"`
	UserID    string    `json:"user_id,omitempty"`
	EntryID   string    `json:"entry_id"` // true entry id or synthesized pos_N label
	Players   string    `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerIDs splits the stored roster back into individual appearance ids.
func (t Team) PlayerIDs() []string {
	if t.Players == "" {
		return nil
	}
	return strings.Split(t.Players, ",")
}

// JoinPlayerIDs builds the stored roster representation from a sorted id list.
func JoinPlayerIDs(ids []string) string {
	return strings.Join(ids, ",")
}
