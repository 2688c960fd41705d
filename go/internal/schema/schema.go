package schema

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the four tables and their lookup indexes if they do
// not exist yet. Safe to run at every startup and from the init endpoint.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS players (
		id UUID PRIMARY KEY,
		appearance_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		position TEXT NOT NULL DEFAULT '',
		team TEXT NOT NULL DEFAULT '',
		opponent TEXT NOT NULL DEFAULT '',
		etr_projection DOUBLE PRECISION NOT NULL DEFAULT 0,
		market_projection DOUBLE PRECISION NOT NULL DEFAULT 0,
		adp DOUBLE PRECISION NOT NULL DEFAULT 999,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS drafts (
		id UUID PRIMARY KEY,
		draft_id TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		total_entries INTEGER,
		completed BOOLEAN NOT NULL DEFAULT false
	);

	CREATE TABLE IF NOT EXISTS picks (
		id UUID PRIMARY KEY,
		draft_id TEXT NOT NULL,
		appearance_id TEXT NOT NULL,
		player_name TEXT NOT NULL DEFAULT '',
		pick_number INTEGER,
		draft_entry_id TEXT NOT NULL DEFAULT '',
		user_id TEXT NOT NULL DEFAULT '',
		payload JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY,
		draft_id TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		entry_id TEXT NOT NULL,
		players TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_player_lookup ON players (name, appearance_id);
	CREATE INDEX IF NOT EXISTS idx_players_appearance_id ON players (appearance_id);
	CREATE INDEX IF NOT EXISTS idx_draft_pick ON picks (draft_id, pick_number);
	CREATE INDEX IF NOT EXISTS idx_team_lookup ON teams (draft_id, entry_id);
	`

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
