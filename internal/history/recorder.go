// Package history keeps the append-only log of completed training days and the per-plan feedback maps.
package history

import (
	"context"
	"log/slog"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/localstore"
	"github.com/myrjola/fitplan/internal/workout"
)

// Key is the local storage key of the history log.
const Key = "workoutHistory"

// FeedbackKey is the local storage key of the feedback map of the named plan.
func FeedbackKey(planName string) string {
	return "feedback-" + planName
}

// Recorder persists day completions. Writes are best effort: failures are logged and never returned.
type Recorder struct {
	store  localstore.Store
	logger *slog.Logger
}

func NewRecorder(store localstore.Store, logger *slog.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger,
	}
}

// LoadFeedback returns the stored feedback map of the plan keyed by day label.
// A missing or unreadable map yields an empty one.
func (r *Recorder) LoadFeedback(ctx context.Context, planName string) map[string]string {
	feedback, ok, err := localstore.GetJSON[map[string]string](ctx, r.store, FeedbackKey(planName))
	if err != nil {
		r.logger.LogAttrs(ctx, slog.LevelWarn, "could not load plan feedback",
			slog.String("plan", planName), errors.SlogError(err))
		return map[string]string{}
	}
	if !ok || feedback == nil {
		return map[string]string{}
	}
	return feedback
}

// Record overwrites the feedback map of the plan and appends entry to the history log.
// The two writes are independent so that a corrupted log does not lose the feedback map.
func (r *Recorder) Record(ctx context.Context, entry workout.HistoryEntry, feedback map[string]string) {
	if err := localstore.SetJSON(ctx, r.store, FeedbackKey(entry.PlanName), feedback); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not save plan feedback",
			slog.String("plan", entry.PlanName), errors.SlogError(err))
	}
	if err := r.appendEntry(ctx, entry); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "could not append history entry",
			slog.String("entry_id", entry.ID), errors.SlogError(err))
		return
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "recorded completed day",
		slog.String("plan", entry.PlanName), slog.String("day", entry.Day.Label))
}

func (r *Recorder) appendEntry(ctx context.Context, entry workout.HistoryEntry) error {
	entries, err := r.Entries(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if err = localstore.SetJSON(ctx, r.store, Key, entries); err != nil {
		return errors.Wrap(err, "save history")
	}
	return nil
}

// Entries returns the whole history log in insertion order.
func (r *Recorder) Entries(ctx context.Context) ([]workout.HistoryEntry, error) {
	entries, _, err := localstore.GetJSON[[]workout.HistoryEntry](ctx, r.store, Key)
	if err != nil {
		return nil, errors.Wrap(err, "load history")
	}
	return entries, nil
}
