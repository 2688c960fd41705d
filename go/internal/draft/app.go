package draft

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/bestball/drafttrack/go/internal/events"
	"github.com/bestball/drafttrack/go/internal/models"
)

// Store defines what the draft app layer needs from the draft repository.
// InTx hands fn a transaction-bound Store so one RecordPick call commits
// atomically.
type Store interface {
	GetDraftByExternalID(ctx context.Context, draftID string) (*models.Draft, error)
	CreateDraft(ctx context.Context, draft models.Draft) (*models.Draft, error)
	MarkDraftCompleted(ctx context.Context, draftID string, totalEntries int) error
	InsertPick(ctx context.Context, pick models.Pick) (*models.Pick, error)
	CountPicks(ctx context.Context, draftID string) (int, error)
	ListPicks(ctx context.Context, draftID string) ([]models.Pick, error)
	CreateTeamsBatch(ctx context.Context, teams []models.Team) error
	InTx(ctx context.Context, fn func(Store) error) error
}

// App handles draft ingestion: recording picks, detecting completion and
// materializing teams.
type App struct {
	store     Store
	publisher events.Publisher
	clock     clockwork.Clock
	settings  Settings
}

func NewApp(store Store, publisher events.Publisher, clock clockwork.Clock, settings Settings) *App {
	return &App{
		store:     store,
		publisher: publisher,
		clock:     clock,
		settings:  settings,
	}
}

// RecordPick appends one pick to a draft's log, creating the draft record on
// first sight. When the pick count reaches the completion threshold the
// draft is flagged completed, total_entries is set and the per-entrant teams
// are written — all inside the same transaction as the pick insert.
//
// Pick numbers default to current-count+1 when the payload omits one. The
// count is read before the insert, so concurrent submissions for the same
// draft can race and land duplicate numbers; pick_number is best-effort, not
// a strict sequence.
func (a *App) RecordPick(ctx context.Context, req RecordPickRequest) (*RecordPickResult, error) {
	if req.DraftID == "" {
		return nil, fmt.Errorf("%w: draftId is required", ErrInvalidInput)
	}
	payload, err := DecodePickPayload(req.Pick)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if payload.AppearanceID == "" {
		return nil, fmt.Errorf("%w: pick is missing appearance_id", ErrInvalidInput)
	}

	now := a.clock.Now().UTC()
	var result RecordPickResult

	err = a.store.InTx(ctx, func(s Store) error {
		d, err := s.GetDraftByExternalID(ctx, req.DraftID)
		if err != nil {
			return err
		}
		if d == nil {
			if d, err = s.CreateDraft(ctx, models.Draft{DraftID: req.DraftID, CreatedAt: now}); err != nil {
				return err
			}
		}

		number := payload.Number
		if number == 0 {
			count, err := s.CountPicks(ctx, req.DraftID)
			if err != nil {
				return err
			}
			number = count + 1
		}

		if _, err := s.InsertPick(ctx, models.Pick{
			DraftID:      req.DraftID,
			AppearanceID: payload.AppearanceID,
			PlayerName:   payload.PlayerName,
			PickNumber:   number,
			DraftEntryID: payload.DraftEntryID,
			UserID:       payload.UserID,
			Payload:      req.Pick,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		count, err := s.CountPicks(ctx, req.DraftID)
		if err != nil {
			return err
		}

		result = RecordPickResult{PickNumber: number, PickCount: count}

		if d.Completed || count < a.settings.CompletionThreshold() {
			return nil
		}

		if err := s.MarkDraftCompleted(ctx, req.DraftID, a.settings.EntrantCount); err != nil {
			return err
		}

		picks, err := s.ListPicks(ctx, req.DraftID)
		if err != nil {
			return err
		}
		teams := BuildTeams(picks, a.settings)
		for i := range teams {
			teams[i].CreatedAt = now
		}
		if err := s.CreateTeamsBatch(ctx, teams); err != nil {
			return err
		}

		result.Completed = true
		result.TeamsWritten = len(teams)
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.publishPickEvents(ctx, req.DraftID, payload, result)

	if result.Completed {
		log.Info().
			Str("draft_id", req.DraftID).
			Int("teams", result.TeamsWritten).
			Msg("draft completed")
	}
	return &result, nil
}

// publishPickEvents is best-effort; a broker outage never fails the pick.
func (a *App) publishPickEvents(ctx context.Context, draftID string, payload PickPayload, result RecordPickResult) {
	now := a.clock.Now().UTC()

	ev := events.DraftEvent{
		Type:         events.EventPickRecorded,
		DraftID:      draftID,
		AppearanceID: payload.AppearanceID,
		PlayerName:   payload.PlayerName,
		PickNumber:   result.PickNumber,
		PickCount:    result.PickCount,
		OccurredAt:   now,
	}
	if err := a.publisher.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("draft_id", draftID).Msg("failed to publish pick event")
	}

	if !result.Completed {
		return
	}
	done := events.DraftEvent{
		Type:       events.EventDraftCompleted,
		DraftID:    draftID,
		PickCount:  result.PickCount,
		TeamCount:  result.TeamsWritten,
		OccurredAt: now,
	}
	if err := a.publisher.Publish(ctx, done); err != nil {
		log.Error().Err(err).Str("draft_id", draftID).Msg("failed to publish completion event")
	}
}
