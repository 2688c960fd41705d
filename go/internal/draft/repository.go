package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/bestball/drafttrack/go/internal/models"
	"github.com/bestball/drafttrack/go/internal/sqlutil"
)

// Repository persists drafts, their pick logs and the teams derived from
// them. Drafts own picks only through the shared external draft_id; teams
// are an append-only summary written at completion.
type Repository struct {
	db    sqlutil.DBTX
	sqlDB *sql.DB
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		db:    sqlDB,
		sqlDB: sqlDB,
	}
}

// InTx runs fn against a transaction-bound copy of the repository. The pick
// insert, completion flag and derived teams commit or roll back as one unit.
func (r *Repository) InTx(ctx context.Context, fn func(Store) error) error {
	return sqlutil.Run(ctx, r.sqlDB,
		func(tx *sql.Tx) *Repository {
			return &Repository{db: tx, sqlDB: r.sqlDB}
		},
		func(txRepo *Repository) error {
			return fn(txRepo)
		},
	)
}

func (r *Repository) GetDraftByExternalID(ctx context.Context, draftID string) (*models.Draft, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, draft_id, created_at, COALESCE(total_entries, 0), completed
		FROM drafts
		WHERE draft_id = $1
	`, draftID)

	var d models.Draft
	if err := row.Scan(&d.ID, &d.DraftID, &d.CreatedAt, &d.TotalEntries, &d.Completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &d, nil
}

func (r *Repository) CreateDraft(ctx context.Context, draft models.Draft) (*models.Draft, error) {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO drafts (id, draft_id, created_at, completed)
		VALUES ($1, $2, $3, false)
	`, draft.ID, draft.DraftID, draft.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return &draft, nil
}

func (r *Repository) MarkDraftCompleted(ctx context.Context, draftID string, totalEntries int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE drafts
		SET completed = true, total_entries = $2
		WHERE draft_id = $1 AND completed = false
	`, draftID, totalEntries)
	if err != nil {
		return fmt.Errorf("failed to mark draft completed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected count: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("draft %s already completed or not found", draftID)
	}
	return nil
}

func (r *Repository) InsertPick(ctx context.Context, pick models.Pick) (*models.Pick, error) {
	if pick.ID == uuid.Nil {
		pick.ID = uuid.New()
	}

	payload := pqtype.NullRawMessage{RawMessage: pick.Payload, Valid: len(pick.Payload) > 0}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO picks (id, draft_id, appearance_id, player_name, pick_number, draft_entry_id, user_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, pick.ID, pick.DraftID, pick.AppearanceID, pick.PlayerName, pick.PickNumber,
		pick.DraftEntryID, pick.UserID, payload, pick.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pick: %w", err)
	}
	return &pick, nil
}

func (r *Repository) CountPicks(ctx context.Context, draftID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM picks WHERE draft_id = $1
	`, draftID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return count, nil
}

func (r *Repository) ListPicks(ctx context.Context, draftID string) ([]models.Pick, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, draft_id, appearance_id, player_name, pick_number, draft_entry_id, user_id, created_at
		FROM picks
		WHERE draft_id = $1
		ORDER BY pick_number
	`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var p models.Pick
		if err := rows.Scan(&p.ID, &p.DraftID, &p.AppearanceID, &p.PlayerName,
			&p.PickNumber, &p.DraftEntryID, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate picks: %w", err)
	}
	return picks, nil
}

func (r *Repository) CreateTeamsBatch(ctx context.Context, teams []models.Team) error {
	for _, t := range teams {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO teams (id, draft_id, user_id, entry_id, players, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.ID, t.DraftID, t.UserID, t.EntryID, t.Players, t.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create team for entry %s: %w", t.EntryID, err)
		}
	}
	return nil
}
