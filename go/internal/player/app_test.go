package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/bestball/drafttrack/go/internal/models"
)

type fakeStore struct {
	players []*models.Player
}

func (f *fakeStore) GetByAppearanceID(ctx context.Context, appearanceID string) (*models.Player, error) {
	for _, p := range f.players {
		if p.AppearanceID == appearanceID && appearanceID != "" {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetByName(ctx context.Context, name string) (*models.Player, error) {
	for _, p := range f.players {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, p models.Player) (*models.Player, error) {
	p.ID = uuid.New()
	stored := p
	f.players = append(f.players, &stored)
	copied := p
	return &copied, nil
}

func (f *fakeStore) Update(ctx context.Context, p models.Player) error {
	for i, existing := range f.players {
		if existing.ID == p.ID {
			updated := p
			f.players[i] = &updated
			return nil
		}
	}
	return errors.New("player not found")
}

func (f *fakeStore) ListWithProjection(ctx context.Context, source models.ProjectionSource) ([]models.Player, error) {
	var out []models.Player
	for _, p := range f.players {
		if source == models.SourceETR && p.ETRProjection > 0 {
			out = append(out, *p)
		}
		if source == models.SourceMarket && p.MarketProjection > 0 {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(f)
}

func newTestApp(store *fakeStore) *App {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	return NewApp(store, clock)
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsertETRMatchesByID(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	// Seed a player that already carries a market projection.
	seeded, _ := store.Create(context.Background(), models.Player{
		Name:             "Old Name",
		AppearanceID:     "app-1",
		MarketProjection: 12.5,
		ADP:              models.UndraftedADP,
	})

	count, err := app.UpsertProjections(context.Background(), models.SourceETR, []ProjectionRow{{
		ID:         "app-1",
		Name:       "Old Name",
		Projection: 18.2,
		Position:   "WR",
		Team:       "CIN",
		Opponent:   "BAL",
		ADP:        floatPtr(24.5),
	}})
	if err != nil {
		t.Fatalf("UpsertProjections() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("updated count = %d, want 1", count)
	}
	if len(store.players) != 1 {
		t.Fatalf("player count = %d, want 1 (matched, not created)", len(store.players))
	}

	p := store.players[0]
	if p.ID != seeded.ID {
		t.Error("a new player row replaced the matched one")
	}
	if p.ETRProjection != 18.2 || p.Position != "WR" || p.Team != "CIN" || p.Opponent != "BAL" || p.ADP != 24.5 {
		t.Errorf("ETR fields not applied: %+v", p)
	}
	if p.MarketProjection != 12.5 {
		t.Errorf("market projection changed to %v, want untouched 12.5", p.MarketProjection)
	}
}

func TestUpsertETRFallsBackToName(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	store.Create(context.Background(), models.Player{Name: "Known Player", ADP: models.UndraftedADP})

	_, err := app.UpsertProjections(context.Background(), models.SourceETR, []ProjectionRow{{
		ID:         "new-id",
		Name:       "Known Player",
		Projection: 9.9,
	}})
	if err != nil {
		t.Fatalf("UpsertProjections() failed: %v", err)
	}
	if len(store.players) != 1 {
		t.Fatalf("player count = %d, want 1", len(store.players))
	}
	if store.players[0].AppearanceID != "new-id" {
		t.Errorf("appearance id = %q, want backfilled new-id", store.players[0].AppearanceID)
	}
}

func TestUpsertETRCreatesUnknownPlayer(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	_, err := app.UpsertProjections(context.Background(), models.SourceETR, []ProjectionRow{{
		Name:       "Brand New",
		Projection: 5.5,
	}})
	if err != nil {
		t.Fatalf("UpsertProjections() failed: %v", err)
	}
	if len(store.players) != 1 {
		t.Fatalf("player count = %d, want 1", len(store.players))
	}
	p := store.players[0]
	if p.ADP != models.UndraftedADP {
		t.Errorf("ADP = %v, want default %v", p.ADP, float64(models.UndraftedADP))
	}
	if p.MarketProjection != 0 {
		t.Errorf("market projection = %v, want 0", p.MarketProjection)
	}
}

func TestUpsertMarketTouchesOnlyMarketChannel(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	store.Create(context.Background(), models.Player{
		Name:          "Shared Player",
		AppearanceID:  "app-1",
		ETRProjection: 20.1,
		Position:      "RB",
		Team:          "SF",
		Opponent:      "SEA",
		ADP:           10,
	})

	_, err := app.UpsertProjections(context.Background(), models.SourceMarket, []ProjectionRow{{
		Name:       "Shared Player",
		Projection: 17.3,
		// Position/team intentionally different; market uploads must not apply them.
		Position: "QB",
		Team:     "NYJ",
	}})
	if err != nil {
		t.Fatalf("UpsertProjections() failed: %v", err)
	}

	p := store.players[0]
	if p.MarketProjection != 17.3 {
		t.Errorf("market projection = %v, want 17.3", p.MarketProjection)
	}
	if p.ETRProjection != 20.1 || p.Position != "RB" || p.Team != "SF" || p.Opponent != "SEA" || p.ADP != 10 {
		t.Errorf("ETR channel fields changed: %+v", p)
	}
}

func TestUpsertETRIdempotent(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	rows := []ProjectionRow{{
		ID:         "app-1",
		Name:       "Repeat Player",
		Projection: 11.1,
		Position:   "TE",
		ADP:        floatPtr(88),
	}}

	for i := 0; i < 2; i++ {
		if _, err := app.UpsertProjections(context.Background(), models.SourceETR, rows); err != nil {
			t.Fatalf("upload %d failed: %v", i+1, err)
		}
	}

	if len(store.players) != 1 {
		t.Fatalf("player count = %d after duplicate upload, want 1", len(store.players))
	}
	p := store.players[0]
	if p.ETRProjection != 11.1 || p.Position != "TE" || p.ADP != 88 {
		t.Errorf("final state drifted: %+v", p)
	}
}

func TestUpsertRejectsMissingName(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	_, err := app.UpsertProjections(context.Background(), models.SourceETR, []ProjectionRow{{
		ID:         "app-1",
		Projection: 4.2,
	}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpsertRejectsEmptyBatchAndBadSource(t *testing.T) {
	app := newTestApp(&fakeStore{})

	if _, err := app.UpsertProjections(context.Background(), models.SourceETR, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty batch: err = %v, want ErrInvalidInput", err)
	}
	if _, err := app.UpsertProjections(context.Background(), "vegas", []ProjectionRow{{Name: "x"}}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad source: err = %v, want ErrInvalidInput", err)
	}
}

func TestProjectionsFiltersByChannel(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store)

	store.Create(context.Background(), models.Player{Name: "ETR Only", AppearanceID: "e1", ETRProjection: 10})
	store.Create(context.Background(), models.Player{Name: "Market Only", AppearanceID: "m1", MarketProjection: 8})
	store.Create(context.Background(), models.Player{Name: "No Projection", AppearanceID: "n1"})

	etr, err := app.Projections(context.Background(), models.SourceETR)
	if err != nil {
		t.Fatalf("Projections(etr) failed: %v", err)
	}
	if len(etr) != 1 || etr[0].Name != "ETR Only" || etr[0].Projection != 10 {
		t.Errorf("Projections(etr) = %+v, want only ETR Only", etr)
	}

	market, err := app.Projections(context.Background(), models.SourceMarket)
	if err != nil {
		t.Fatalf("Projections(market) failed: %v", err)
	}
	if len(market) != 1 || market[0].Name != "Market Only" || market[0].ID != "m1" {
		t.Errorf("Projections(market) = %+v, want only Market Only", market)
	}
}
