package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bestball/drafttrack/go/internal/dbconfig"
)

// seedPlayer matches the exported ETR projections JSON layout.
type seedPlayer struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Team       string  `json:"team"`
	Opponent   string  `json:"opponent"`
	Projection float64 `json:"projection"`
	ADP        float64 `json:"adp"`
}

func main() {
	ctx := context.Background()

	path := "projections.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	var players []seedPlayer
	if err := json.Unmarshal(data, &players); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal players: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, dbconfig.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	total, inserted, skipped, errs := len(players), 0, 0, 0
	for _, p := range players {
		if p.Name == "" {
			skipped++
			continue
		}
		adp := p.ADP
		if adp == 0 {
			adp = 999
		}
		tag, err := pool.Exec(ctx, `
            INSERT INTO players (
              id, appearance_id, name, position, team, opponent,
              etr_projection, adp, last_updated
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
            ON CONFLICT DO NOTHING
        `, uuid.New(), p.ID, p.Name, p.Position, p.Team, p.Opponent,
			p.Projection, adp, time.Now().UTC())
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Projections seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}
