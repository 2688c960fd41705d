package analysis

import (
	"context"
	"fmt"

	"github.com/bestball/drafttrack/go/internal/sqlutil"
)

// Repository serves the read-only aggregate queries behind exposure,
// duplication and stats.
type Repository struct {
	db sqlutil.DBTX
}

func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CountCompletedDrafts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM drafts WHERE completed = true
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed drafts: %w", err)
	}
	return count, nil
}

// DraftPresence returns, per appearance id, the number of distinct completed
// drafts the player was picked in. Picks with an empty appearance id are
// skipped.
func (r *Repository) DraftPresence(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.appearance_id, COUNT(DISTINCT p.draft_id)
		FROM picks p
		JOIN drafts d ON d.draft_id = p.draft_id
		WHERE d.completed = true AND p.appearance_id <> ''
		GROUP BY p.appearance_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draft presence: %w", err)
	}
	defer rows.Close()

	presence := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan draft presence: %w", err)
		}
		presence[id] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draft presence: %w", err)
	}
	return presence, nil
}

// ListTeamPlayerSets returns every stored team's comma-joined roster.
func (r *Repository) ListTeamPlayerSets(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT players FROM teams`)
	if err != nil {
		return nil, fmt.Errorf("failed to list team player sets: %w", err)
	}
	defer rows.Close()

	var sets []string
	for rows.Next() {
		var players string
		if err := rows.Scan(&players); err != nil {
			return nil, fmt.Errorf("failed to scan team player set: %w", err)
		}
		sets = append(sets, players)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team player sets: %w", err)
	}
	return sets, nil
}

func (r *Repository) Counts(ctx context.Context) (Counts, error) {
	var c Counts

	row := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM drafts),
			(SELECT COUNT(*) FROM drafts WHERE completed = true),
			(SELECT COUNT(*) FROM picks),
			(SELECT COUNT(DISTINCT appearance_id) FROM picks WHERE appearance_id <> ''),
			(SELECT COUNT(*) FROM teams)
	`)
	if err := row.Scan(&c.TotalDrafts, &c.CompletedDrafts, &c.TotalPicks, &c.UniquePlayers, &c.TotalTeams); err != nil {
		return Counts{}, fmt.Errorf("failed to query stats counts: %w", err)
	}
	return c, nil
}
