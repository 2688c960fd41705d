package models

import (
	"time"

	"github.com/google/uuid"
)

// Draft tracks one externally-identified draft room. Completed flips
// false -> true exactly once, when the pick count reaches the completion
// threshold; TotalEntries is set at that moment.
type Draft struct {
	ID           uuid.UUID `json:"id"`
	DraftID      string    `json:"draft_id"` // externally assigned, unique
	CreatedAt    time.Time `json:"created_at"`
	TotalEntries int       `json:"total_entries"` // 0 until completed
	Completed    bool      `json:"completed"`
}
