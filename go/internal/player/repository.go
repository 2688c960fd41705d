package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bestball/drafttrack/go/internal/models"
	"github.com/bestball/drafttrack/go/internal/sqlutil"
)

const playerColumns = `id, appearance_id, name, position, team, opponent, etr_projection, market_projection, adp, last_updated`

// Repository persists players and their projection channels.
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

// InTx runs fn against a transaction-bound copy of the repository so a whole
// projection upload commits or rolls back together.
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

func (r *Repository) GetByAppearanceID(ctx context.Context, appearanceID string) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE appearance_id = $1
		LIMIT 1
	`, appearanceID)
	return scanPlayer(row, "by appearance id")
}

func (r *Repository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE name = $1
		LIMIT 1
	`, name)
	return scanPlayer(row, "by name")
}

func (r *Repository) Create(ctx context.Context, p models.Player) (*models.Player, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (id, appearance_id, name, position, team, opponent, etr_projection, market_projection, adp, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.ID, p.AppearanceID, p.Name, p.Position, p.Team, p.Opponent,
		p.ETRProjection, p.MarketProjection, p.ADP, p.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &p, nil
}

// Update writes the full row; the app layer decides which fields moved.
func (r *Repository) Update(ctx context.Context, p models.Player) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE players
		SET appearance_id = $2, name = $3, position = $4, team = $5, opponent = $6,
		    etr_projection = $7, market_projection = $8, adp = $9, last_updated = $10
		WHERE id = $1
	`, p.ID, p.AppearanceID, p.Name, p.Position, p.Team, p.Opponent,
		p.ETRProjection, p.MarketProjection, p.ADP, p.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

// ListWithProjection returns players whose projection in the given channel
// is above zero.
func (r *Repository) ListWithProjection(ctx context.Context, source models.ProjectionSource) ([]models.Player, error) {
	column := "etr_projection"
	if source == models.SourceMarket {
		column = "market_projection"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE `+column+` > 0
		ORDER BY `+column+` DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players with %s projection: %w", source, err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		p, err := scanPlayerRows(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

func scanPlayer(row *sql.Row, lookup string) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.AppearanceID, &p.Name, &p.Position, &p.Team, &p.Opponent,
		&p.ETRProjection, &p.MarketProjection, &p.ADP, &p.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player %s: %w", lookup, err)
	}
	return &p, nil
}

func scanPlayerRows(rows *sql.Rows) (*models.Player, error) {
	var p models.Player
	err := rows.Scan(&p.ID, &p.AppearanceID, &p.Name, &p.Position, &p.Team, &p.Opponent,
		&p.ETRProjection, &p.MarketProjection, &p.ADP, &p.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}
