package draft

import (
	"fmt"
	"sort"

	"github.com/bestball/drafttrack/go/internal/models"
)

// snakeSlot returns the owning entrant slot for the i-th overall pick
// (0-based) in a snake draft: forward rounds walk the slots left to right,
// odd rounds walk them back.
func snakeSlot(i, entrantCount int) int {
	round := i / entrantCount
	pos := i % entrantCount
	if round%2 == 0 {
		return pos
	}
	return entrantCount - pos - 1
}

// BuildTeams partitions a completed draft's ordered pick log into one roster
// per entrant. When any pick carries an entry id, grouping by entry id is
// authoritative for the whole draft and unlabeled picks are dropped;
// otherwise ownership is inferred from snake position arithmetic and the
// entry id is synthesized as pos_<slot>.
//
// Only groups holding exactly settings.Rounds distinct player ids become
// teams; player ids are sorted so stored rosters compare order-independently.
func BuildTeams(picks []models.Pick, settings Settings) []models.Team {
	if len(picks) == 0 {
		return nil
	}

	type group struct {
		playerIDs []string
		userID    string
	}
	groups := make(map[string]*group)
	var order []string

	add := func(entryID string, p models.Pick) {
		g, ok := groups[entryID]
		if !ok {
			g = &group{}
			groups[entryID] = g
			order = append(order, entryID)
		}
		g.playerIDs = append(g.playerIDs, p.AppearanceID)
		if g.userID == "" {
			g.userID = p.UserID
		}
	}

	hasEntryIDs := false
	for _, p := range picks {
		if p.DraftEntryID != "" {
			hasEntryIDs = true
			break
		}
	}

	if hasEntryIDs {
		for _, p := range picks {
			if p.DraftEntryID == "" {
				continue
			}
			add(p.DraftEntryID, p)
		}
	} else {
		for i, p := range picks {
			add(fmt.Sprintf("pos_%d", snakeSlot(i, settings.EntrantCount)), p)
		}
	}

	var teams []models.Team
	for _, entryID := range order {
		g := groups[entryID]
		if len(g.playerIDs) != settings.Rounds {
			continue
		}
		sort.Strings(g.playerIDs)
		if hasDuplicateID(g.playerIDs) {
			continue
		}
		teams = append(teams, models.Team{
			DraftID: picks[0].DraftID,
			UserID:  g.userID,
			EntryID: entryID,
			Players: models.JoinPlayerIDs(g.playerIDs),
		})
	}
	return teams
}

// hasDuplicateID expects a sorted slice.
func hasDuplicateID(ids []string) bool {
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			return true
		}
	}
	return false
}
