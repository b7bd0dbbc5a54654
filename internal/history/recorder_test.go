package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/history"
	"github.com/myrjola/fitplan/internal/localstore"
	"github.com/myrjola/fitplan/internal/testhelpers"
	"github.com/myrjola/fitplan/internal/workout"
)

var errStorageFull = errors.NewSentinel("storage full")

// failingStore rejects writes to the keys in failSet.
type failingStore struct {
	localstore.Store
	failSet map[string]bool
}

func (s failingStore) Set(ctx context.Context, key, value string) error {
	if s.failSet[key] {
		return errStorageFull
	}
	return s.Store.Set(ctx, key, value) //nolint:wrapcheck // test double.
}

func testDay(label, focus string) workout.Day {
	return workout.Day{
		Label:     label,
		Focus:     focus,
		Warmup:    "Jog",
		Exercises: []workout.Exercise{{Name: "Squat", Sets: "3", Reps: "10", Rest: "60s", Notes: ""}},
		Cooldown:  "Stretch",
	}
}

func TestRecorder_Record(t *testing.T) {
	ctx := contexthelpers.WithProfileID(t.Context(), "profile")
	store := localstore.NewMemoryStore()
	recorder := history.NewRecorder(store, testhelpers.NewTestLogger(t))

	if got := recorder.LoadFeedback(ctx, "Forge"); len(got) != 0 {
		t.Fatalf("LoadFeedback() on empty store = %v, want empty", got)
	}

	completed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := workout.NewHistoryEntry("Forge", testDay("Day A", "Legs"), "Great", completed)
	recorder.Record(ctx, first, map[string]string{"Day A": "Great"})
	second := workout.NewHistoryEntry("Forge", testDay("Day B", "Push"), "Challenging", completed.Add(time.Hour))
	recorder.Record(ctx, second, map[string]string{"Day A": "Great", "Day B": "Challenging"})

	wantFeedback := map[string]string{"Day A": "Great", "Day B": "Challenging"}
	if diff := cmp.Diff(wantFeedback, recorder.LoadFeedback(ctx, "Forge")); diff != "" {
		t.Errorf("LoadFeedback() mismatch (-want +got):\n%s", diff)
	}
	entries, err := recorder.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if diff := cmp.Diff([]workout.HistoryEntry{first, second}, entries); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
	if got := recorder.LoadFeedback(ctx, "Other plan"); len(got) != 0 {
		t.Errorf("feedback leaked between plans: %v", got)
	}
}

func TestRecorder_Record_bestEffort(t *testing.T) {
	ctx := contexthelpers.WithProfileID(t.Context(), "profile")
	logger := testhelpers.NewTestLogger(t)
	entry := workout.NewHistoryEntry("Forge", testDay("Day A", "Legs"), "Great", time.Now())

	t.Run("feedback write fails", func(t *testing.T) {
		store := failingStore{Store: localstore.NewMemoryStore(), failSet: map[string]bool{"feedback-Forge": true}}
		recorder := history.NewRecorder(store, logger)
		recorder.Record(ctx, entry, map[string]string{"Day A": "Great"})

		entries, err := recorder.Entries(ctx)
		if err != nil || len(entries) != 1 {
			t.Errorf("history should still be appended: entries %d, err %v", len(entries), err)
		}
	})

	t.Run("history write fails", func(t *testing.T) {
		store := failingStore{Store: localstore.NewMemoryStore(), failSet: map[string]bool{history.Key: true}}
		recorder := history.NewRecorder(store, logger)
		recorder.Record(ctx, entry, map[string]string{"Day A": "Great"})

		if got := recorder.LoadFeedback(ctx, "Forge"); got["Day A"] != "Great" {
			t.Errorf("feedback should still be saved, got %v", got)
		}
	})

	t.Run("corrupted history is left alone", func(t *testing.T) {
		store := localstore.NewMemoryStore()
		if err := store.Set(ctx, history.Key, "not json"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		recorder := history.NewRecorder(store, logger)
		recorder.Record(ctx, entry, map[string]string{"Day A": "Great"})

		raw, _, _ := store.Get(ctx, history.Key)
		if raw != "not json" {
			t.Errorf("corrupted history overwritten with %q", raw)
		}
		if _, err := recorder.Entries(ctx); err == nil {
			t.Error("Entries() should report the corrupted log")
		}
	})

	t.Run("corrupted feedback loads empty", func(t *testing.T) {
		store := localstore.NewMemoryStore()
		if err := store.Set(ctx, history.FeedbackKey("Forge"), "[]"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		recorder := history.NewRecorder(store, logger)
		if got := recorder.LoadFeedback(ctx, "Forge"); len(got) != 0 {
			t.Errorf("LoadFeedback() = %v, want empty", got)
		}
	})
}
