package player

// ProjectionRow is one uploaded projection entry. CSV parsing happens
// upstream; by the time a row reaches this package it is already structured.
type ProjectionRow struct {
	ID         string   `json:"id,omitempty"` // appearance id, ETR uploads only
	Name       string   `json:"name"`
	Projection float64  `json:"projection"`
	Position   string   `json:"position,omitempty"`
	Team       string   `json:"team,omitempty"`
	Opponent   string   `json:"opponent,omitempty"`
	ADP        *float64 `json:"adp,omitempty"`
}

// ProjectionView is the shape served back to the draft-board UI, filtered to
// players with a projection in the requested channel.
type ProjectionView struct {
	Name       string  `json:"name"`
	Projection float64 `json:"projection"`
	Position   string  `json:"position"`
	Team       string  `json:"team"`
	ID         string  `json:"id"`
}
