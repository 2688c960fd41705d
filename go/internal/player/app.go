package player

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/bestball/drafttrack/go/internal/models"
)

// Store defines what the player app layer needs from the player repository.
type Store interface {
	GetByAppearanceID(ctx context.Context, appearanceID string) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	Create(ctx context.Context, p models.Player) (*models.Player, error)
	Update(ctx context.Context, p models.Player) error
	ListWithProjection(ctx context.Context, source models.ProjectionSource) ([]models.Player, error)
	InTx(ctx context.Context, fn func(Store) error) error
}

// App handles projection uploads and reads. The two projection channels are
// independent: an ETR upload never touches market_projection and vice versa.
type App struct {
	store Store
	clock clockwork.Clock
}

func NewApp(store Store, clock clockwork.Clock) *App {
	return &App{
		store: store,
		clock: clock,
	}
}

// UpsertProjections applies one upload batch for a single source channel and
// returns the number of rows applied. The batch is atomic: a malformed row
// rolls everything back.
//
// ETR rows match an existing player by appearance id first, then by name;
// market rows match by name only. Unmatched rows create the player.
func (a *App) UpsertProjections(ctx context.Context, source models.ProjectionSource, rows []ProjectionRow) (int, error) {
	if source != models.SourceETR && source != models.SourceMarket {
		return 0, fmt.Errorf("%w: unknown projection source %q", ErrInvalidInput, source)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no player data provided", ErrInvalidInput)
	}

	updated := 0
	err := a.store.InTx(ctx, func(s Store) error {
		for _, row := range rows {
			if row.Name == "" {
				return fmt.Errorf("%w: player name is required", ErrInvalidInput)
			}
			var err error
			if source == models.SourceETR {
				err = a.applyETR(ctx, s, row)
			} else {
				err = a.applyMarket(ctx, s, row)
			}
			if err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("source", string(source)).
		Int("count", updated).
		Msg("projections updated")
	return updated, nil
}

func (a *App) applyETR(ctx context.Context, s Store, row ProjectionRow) error {
	var p *models.Player
	var err error

	if row.ID != "" {
		if p, err = s.GetByAppearanceID(ctx, row.ID); err != nil {
			return err
		}
	}
	if p == nil {
		if p, err = s.GetByName(ctx, row.Name); err != nil {
			return err
		}
	}
	if p == nil {
		if p, err = s.Create(ctx, models.Player{
			Name:         row.Name,
			AppearanceID: row.ID,
			ADP:          models.UndraftedADP,
		}); err != nil {
			return err
		}
	}

	p.ETRProjection = row.Projection
	if row.ID != "" {
		p.AppearanceID = row.ID
	}
	if row.Position != "" {
		p.Position = row.Position
	}
	if row.Team != "" {
		p.Team = row.Team
	}
	p.Opponent = row.Opponent
	if row.ADP != nil {
		p.ADP = *row.ADP
	} else {
		p.ADP = models.UndraftedADP
	}
	p.LastUpdated = a.clock.Now().UTC()

	return s.Update(ctx, *p)
}

func (a *App) applyMarket(ctx context.Context, s Store, row ProjectionRow) error {
	p, err := s.GetByName(ctx, row.Name)
	if err != nil {
		return err
	}
	if p == nil {
		if p, err = s.Create(ctx, models.Player{
			Name: row.Name,
			ADP:  models.UndraftedADP,
		}); err != nil {
			return err
		}
	}

	p.MarketProjection = row.Projection
	p.LastUpdated = a.clock.Now().UTC()

	return s.Update(ctx, *p)
}

// Projections returns players carrying a projection in the given channel.
func (a *App) Projections(ctx context.Context, source models.ProjectionSource) ([]ProjectionView, error) {
	if source != models.SourceETR && source != models.SourceMarket {
		return nil, fmt.Errorf("%w: unknown projection source %q", ErrInvalidInput, source)
	}

	players, err := a.store.ListWithProjection(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load projections: %w", err)
	}

	views := make([]ProjectionView, 0, len(players))
	for _, p := range players {
		projection := p.ETRProjection
		if source == models.SourceMarket {
			projection = p.MarketProjection
		}
		views = append(views, ProjectionView{
			Name:       p.Name,
			Projection: projection,
			Position:   p.Position,
			Team:       p.Team,
			ID:         p.AppearanceID,
		})
	}
	return views, nil
}
