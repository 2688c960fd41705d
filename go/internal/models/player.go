package models

import (
	"time"

	"github.com/google/uuid"
)

// Projection defaults: a projection of 0 means "no projection yet" and an
// ADP of 999 puts the player in the undrafted tier.
const (
	NoProjection = 0
	UndraftedADP = 999
)

// ProjectionSource identifies which projection channel an upload targets.
type ProjectionSource string

const (
	SourceETR    ProjectionSource = "etr"
	SourceMarket ProjectionSource = "market"
)

// Player represents a draftable player with both projection channels.
type Player struct {
	ID               uuid.UUID `json:"id"`
	AppearanceID     string    `json:"appearance_id"` // external id, may be empty
	Name             string    `json:"name"`
	Position         string    `json:"position"`
	Team             string    `json:"team"`
	Opponent         string    `json:"opponent"`
	ETRProjection    float64   `json:"etr_projection"`
	MarketProjection float64   `json:"market_projection"`
	ADP              float64   `json:"adp"`
	LastUpdated      time.Time `json:"last_updated"`
}
