package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/bestball/drafttrack/go/internal/analysis"
	"github.com/bestball/drafttrack/go/internal/api"
	"github.com/bestball/drafttrack/go/internal/draft"
	"github.com/bestball/drafttrack/go/internal/events"
	"github.com/bestball/drafttrack/go/internal/gateway"
	"github.com/bestball/drafttrack/go/internal/player"
)

type Services struct {
	Handler     *api.Handler
	Broadcaster *gateway.Broadcaster
	Publisher   events.Publisher
}

func setupServices(database *sql.DB, cfg *Config) *Services {
	// Wire up dependency injection chain
	// Database layer -> Repository layer -> App layer -> HTTP handlers
	clock := clockwork.NewRealClock()

	broadcaster := gateway.NewBroadcaster(gateway.DefaultConfig())

	publishers := events.Fanout{broadcaster}
	if url := getEnv("NATS_URL", ""); url != "" {
		jsCfg := events.DefaultJetStreamConfig()
		jsCfg.URL = url
		js, err := events.NewJetStreamPublisher(jsCfg)
		if err != nil {
			log.Error().Err(err).Msg("JetStream unavailable, continuing without it")
		} else {
			publishers = append(publishers, js)
		}
	}

	draftRepo := draft.NewRepository(database)
	draftApp := draft.NewApp(draftRepo, publishers, clock, cfg.Draft)

	playerRepo := player.NewRepository(database)
	playerApp := player.NewApp(playerRepo, clock)

	analysisRepo := analysis.NewRepository(database)
	analysisApp := analysis.NewApp(analysisRepo)

	handler := api.NewHandler(draftApp, playerApp, analysisApp, database)

	return &Services{
		Handler:     handler,
		Broadcaster: broadcaster,
		Publisher:   publishers,
	}
}
