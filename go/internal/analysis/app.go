package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Duplication thresholds: candidates below minCandidateSize carry too little
// signal to compare, and a stored team counts as similar when the overlap
// reaches min(maxSimilarOverlap, candidate size).
const (
	minCandidateSize  = 4
	maxSimilarOverlap = 5
)

// Store defines what the analysis app layer needs from storage.
type Store interface {
	CountCompletedDrafts(ctx context.Context) (int, error)
	DraftPresence(ctx context.Context) (map[string]int, error)
	ListTeamPlayerSets(ctx context.Context) ([]string, error)
	Counts(ctx context.Context) (Counts, error)
}

// Counts is the overall tracker state summary.
type Counts struct {
	TotalDrafts     int `json:"total_drafts"`
	CompletedDrafts int `json:"completed_drafts"`
	TotalPicks      int `json:"total_picks"`
	UniquePlayers   int `json:"unique_players"`
	TotalTeams      int `json:"total_teams"`
}

// App answers the read-only exposure and duplication queries.
type App struct {
	store Store
}

func NewApp(store Store) *App {
	return &App{store: store}
}

// Exposures maps each appearance id to the percentage of completed drafts
// the player appears in, rounded to one decimal. With zero completed drafts
// it returns an empty map rather than dividing by zero.
func (a *App) Exposures(ctx context.Context) (map[string]float64, error) {
	total, err := a.store.CountCompletedDrafts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed drafts: %w", err)
	}
	exposures := make(map[string]float64)
	if total == 0 {
		return exposures, nil
	}

	presence, err := a.store.DraftPresence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft presence: %w", err)
	}
	for id, count := range presence {
		exposures[id] = math.Round(float64(count)/float64(total)*1000) / 10
	}
	return exposures, nil
}

// CheckDuplication counts stored teams that overlap heavily with the
// candidate roster. Candidates with fewer than 4 distinct players skip the
// scan entirely.
func (a *App) CheckDuplication(ctx context.Context, candidateIDs []string) (int, error) {
	candidate := make(map[string]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		if id != "" {
			candidate[id] = struct{}{}
		}
	}
	if len(candidate) < minCandidateSize {
		return 0, nil
	}

	threshold := maxSimilarOverlap
	if len(candidate) < threshold {
		threshold = len(candidate)
	}

	sets, err := a.store.ListTeamPlayerSets(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load stored teams: %w", err)
	}

	similar := 0
	for _, set := range sets {
		overlap := 0
		for _, id := range strings.Split(set, ",") {
			if _, ok := candidate[id]; ok {
				overlap++
			}
		}
		if overlap >= threshold {
			similar++
		}
	}
	return similar, nil
}

// Stats returns the overall tracker counters.
func (a *App) Stats(ctx context.Context) (Counts, error) {
	counts, err := a.store.Counts(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to load stats: %w", err)
	}
	return counts, nil
}
