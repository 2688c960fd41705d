package analysis

import (
	"context"
	"strings"
	"testing"
)

type fakeStore struct {
	completedDrafts int
	presence        map[string]int
	teamSets        []string
	counts          Counts
}

func (f *fakeStore) CountCompletedDrafts(ctx context.Context) (int, error) {
	return f.completedDrafts, nil
}

func (f *fakeStore) DraftPresence(ctx context.Context) (map[string]int, error) {
	return f.presence, nil
}

func (f *fakeStore) ListTeamPlayerSets(ctx context.Context) ([]string, error) {
	return f.teamSets, nil
}

func (f *fakeStore) Counts(ctx context.Context) (Counts, error) {
	return f.counts, nil
}

func TestExposuresNoCompletedDrafts(t *testing.T) {
	app := NewApp(&fakeStore{completedDrafts: 0})

	exposures, err := app.Exposures(context.Background())
	if err != nil {
		t.Fatalf("Exposures() failed: %v", err)
	}
	if len(exposures) != 0 {
		t.Errorf("Exposures() = %v, want empty map", exposures)
	}
}

func TestExposuresPercentages(t *testing.T) {
	app := NewApp(&fakeStore{
		completedDrafts: 3,
		presence: map[string]int{
			"p1": 3, // every draft
			"p2": 1, // one of three -> 33.3
			"p3": 2, // two of three -> 66.7
		},
	})

	exposures, err := app.Exposures(context.Background())
	if err != nil {
		t.Fatalf("Exposures() failed: %v", err)
	}

	want := map[string]float64{"p1": 100, "p2": 33.3, "p3": 66.7}
	for id, pct := range want {
		if exposures[id] != pct {
			t.Errorf("exposure[%s] = %v, want %v", id, exposures[id], pct)
		}
	}
}

func team(ids ...string) string {
	return strings.Join(ids, ",")
}

func TestCheckDuplicationSmallCandidate(t *testing.T) {
	app := NewApp(&fakeStore{
		teamSets: []string{team("a", "b", "c", "d", "e", "f")},
	})

	count, err := app.CheckDuplication(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("CheckDuplication() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("similar count = %d for 3-player candidate, want 0", count)
	}

	// Duplicated ids collapse; 4 entries with 3 distinct still skip the scan.
	count, err = app.CheckDuplication(context.Background(), []string{"a", "b", "c", "a"})
	if err != nil {
		t.Fatalf("CheckDuplication() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("similar count = %d for 3-distinct candidate, want 0", count)
	}
}

func TestCheckDuplicationOverlapThreshold(t *testing.T) {
	app := NewApp(&fakeStore{
		teamSets: []string{
			team("a", "b", "c", "d", "e", "x"), // overlap 5 -> similar
			team("a", "b", "c", "d", "x", "y"), // overlap 4 -> not similar
			team("a", "b", "c", "d", "e", "f"), // overlap 6 -> similar
		},
	})

	count, err := app.CheckDuplication(context.Background(), []string{"a", "b", "c", "d", "e", "f"})
	if err != nil {
		t.Fatalf("CheckDuplication() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("similar count = %d, want 2", count)
	}
}

func TestCheckDuplicationThresholdScalesDown(t *testing.T) {
	// A 4-player candidate needs all 4 to match, not 5.
	app := NewApp(&fakeStore{
		teamSets: []string{
			team("a", "b", "c", "d", "x", "y"), // overlap 4 -> similar
			team("a", "b", "c", "x", "y", "z"), // overlap 3 -> not
		},
	})

	count, err := app.CheckDuplication(context.Background(), []string{"a", "b", "c", "d"})
	if err != nil {
		t.Fatalf("CheckDuplication() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("similar count = %d, want 1", count)
	}
}

func TestCheckDuplicationLargeCandidateCapsAtFive(t *testing.T) {
	// An 8-player partial roster still only needs 5 overlapping players.
	app := NewApp(&fakeStore{
		teamSets: []string{
			team("a", "b", "c", "d", "e", "x"), // overlap 5 -> similar
		},
	})

	candidate := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	count, err := app.CheckDuplication(context.Background(), candidate)
	if err != nil {
		t.Fatalf("CheckDuplication() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("similar count = %d, want 1", count)
	}
}

func TestStatsPassthrough(t *testing.T) {
	want := Counts{TotalDrafts: 10, CompletedDrafts: 4, TotalPicks: 150, UniquePlayers: 80, TotalTeams: 24}
	app := NewApp(&fakeStore{counts: want})

	got, err := app.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}
