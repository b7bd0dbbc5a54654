package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/history"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/localstore"
	"github.com/myrjola/fitplan/internal/workout"
)

// stateKey is the local storage key holding the serialised State.
const stateKey = "wizardState"

// Generator produces a plan for the preferences. Any failure is reported as a single opaque error.
type Generator interface {
	Generate(ctx context.Context, prefs workout.Preferences) (workout.Plan, error)
}

// Service persists the wizard state of each profile and runs plan generation in the background.
type Service struct {
	store     localstore.Store
	generator Generator
	recorder  *history.Recorder
	logger    *slog.Logger

	// mu serialises the read-modify-write cycles of the wizard state.
	mu sync.Mutex
	// inFlight holds the generation IDs running in this process.
	inFlight map[string]struct{}
	wg       sync.WaitGroup
}

func NewService(store localstore.Store, generator Generator, recorder *history.Recorder, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		recorder:  recorder,
		logger:    logger,
		mu:        sync.Mutex{},
		inFlight:  make(map[string]struct{}),
		wg:        sync.WaitGroup{},
	}
}

// read returns the stored state. A missing or unreadable state starts over from Initial.
func (s *Service) read(ctx context.Context) (State, error) {
	st, ok, err := localstore.GetJSON[State](ctx, s.store, stateKey)
	if errors.Is(err, localstore.ErrNoProfile) {
		return State{}, err
	}
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "discarding unreadable wizard state", errors.SlogError(err))
		return Initial(), nil
	}
	if !ok {
		return Initial(), nil
	}
	return st, nil
}

func (s *Service) write(ctx context.Context, st State) error {
	if err := localstore.SetJSON(ctx, s.store, stateKey, st); err != nil {
		return errors.Wrap(err, "save wizard state", slog.String("step", string(st.Step)))
	}
	return nil
}

// recoverInterrupted fails a loading state whose generation is not running in this process, e.g. after a restart.
// Must be called with mu held.
func (s *Service) recoverInterrupted(ctx context.Context, st State) (State, bool) {
	if st.Step != StepLoading {
		return st, false
	}
	if _, running := s.inFlight[st.GenerationID]; running {
		return st, false
	}
	failed, err := st.FailGeneration(st.GenerationID)
	if err != nil {
		return st, false
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, "generation was interrupted",
		slog.String("generation_id", st.GenerationID))
	return failed, true
}

// update applies transition to the current state and saves the result. Nothing is saved when transition fails.
func (s *Service) update(ctx context.Context, transition func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read(ctx)
	if err != nil {
		return State{}, errors.Wrap(err, "read wizard state")
	}
	st, _ = s.recoverInterrupted(ctx, st)
	var next State
	if next, err = transition(st); err != nil {
		return st, err
	}
	if err = s.write(ctx, next); err != nil {
		return st, err
	}
	return next, nil
}

// State returns the current wizard state of the profile in ctx.
func (s *Service) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.read(ctx)
	if err != nil {
		return State{}, errors.Wrap(err, "read wizard state")
	}
	var recovered bool
	if st, recovered = s.recoverInterrupted(ctx, st); recovered {
		if err = s.write(ctx, st); err != nil {
			return State{}, err
		}
	}
	return st, nil
}

// CompleteAnalysis moves from the analysis step to the seeded preference form.
func (s *Service) CompleteAnalysis(ctx context.Context, a workout.Analysis) (State, error) {
	return s.update(ctx, func(st State) (State, error) {
		return st.CompleteAnalysis(a)
	})
}

// UpdateDraft applies edit to the preference form.
func (s *Service) UpdateDraft(ctx context.Context, edit func(workout.Draft) workout.Draft) (State, error) {
	return s.update(ctx, func(st State) (State, error) {
		return st.UpdateDraft(edit)
	})
}

// Back discards the form and returns to the analysis step.
func (s *Service) Back(ctx context.Context) (State, error) {
	return s.update(ctx, State.Back)
}

// Reset returns to the analysis step.
func (s *Service) Reset(ctx context.Context) (State, error) {
	return s.update(ctx, State.Reset)
}

func (s *Service) ShowHistory(ctx context.Context) (State, error) {
	return s.update(ctx, func(st State) (State, error) { return st.ShowHistory(), nil })
}

func (s *Service) ShowMain(ctx context.Context) (State, error) {
	return s.update(ctx, func(st State) (State, error) { return st.ShowMain(), nil })
}

// Submit applies edit to the form and starts generating a plan in the background.
// With no goals selected the edit is kept and workout.ErrNoGoals is returned.
func (s *Service) Submit(ctx context.Context, edit func(workout.Draft) workout.Draft) (State, error) {
	var (
		prefs     workout.Preferences
		submitErr error
	)
	generationID := uuid.NewString()
	st, err := s.update(ctx, func(st State) (State, error) {
		edited, err := st.UpdateDraft(edit)
		if err != nil {
			return st, err
		}
		var next State
		if next, prefs, submitErr = edited.StartGeneration(generationID, time.Now()); submitErr != nil {
			return edited, nil
		}
		s.inFlight[generationID] = struct{}{}
		return next, nil
	})
	if submitErr != nil {
		return st, submitErr
	}
	if err != nil {
		s.mu.Lock()
		delete(s.inFlight, generationID)
		s.mu.Unlock()
		return st, err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "starting plan generation",
		slog.String("generation_id", generationID), slog.Int("days", int(prefs.DaysPerWeek)))
	s.wg.Add(1)
	// The generation outlives the request but keeps its profile and language.
	go s.generate(context.WithoutCancel(ctx), generationID, prefs)
	return st, nil
}

func (s *Service) generate(ctx context.Context, generationID string, prefs workout.Preferences) {
	defer s.wg.Done()
	defer func() {
		if excp := recover(); excp != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "plan generation panicked",
				errors.SlogError(errors.DecoratePanic(excp)))
			s.apply(ctx, generationID, func(st State) (State, error) { return st.FailGeneration(generationID) })
		}
	}()

	start := time.Now()
	plan, err := s.generator.Generate(ctx, prefs)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "plan generation failed",
			slog.String("generation_id", generationID), slog.Duration("duration", time.Since(start)))
		s.apply(ctx, generationID, func(st State) (State, error) { return st.FailGeneration(generationID) })
		return
	}
	feedback := s.recorder.LoadFeedback(ctx, plan.Name)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "plan generated",
		slog.String("generation_id", generationID), slog.String("plan", plan.Name),
		slog.Duration("duration", time.Since(start)))
	s.apply(ctx, generationID, func(st State) (State, error) {
		return st.FinishGeneration(generationID, plan, feedback)
	})
}

// apply stores the outcome of a generation unless the wizard moved on in the meantime.
func (s *Service) apply(ctx context.Context, generationID string, transition func(State) (State, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer delete(s.inFlight, generationID)

	st, err := s.read(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "could not read wizard state", errors.SlogError(err))
		return
	}
	if st, err = transition(st); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "discarding stale generation result",
			slog.String("generation_id", generationID))
		return
	}
	if err = s.write(ctx, st); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "could not save generation result", errors.SlogError(err))
	}
}

// Wait blocks until all background generations have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// CompleteDay marks the plan day at index as done with feedback.
// The feedback is stored as its label in the language of ctx. Saving the history is best effort.
func (s *Service) CompleteDay(ctx context.Context, index int, feedback workout.Feedback) (State, error) {
	if !feedback.Valid() {
		return State{}, errors.Wrap(ErrInvalidTransition, "unknown feedback", slog.String("feedback", string(feedback)))
	}
	label := i18n.Translate(contexthelpers.Language(ctx), "feedback."+string(feedback))
	var day workout.Day
	st, err := s.update(ctx, func(st State) (State, error) {
		var next State
		var err error
		next, day, err = st.CompleteDay(index, label)
		return next, err
	})
	if err != nil {
		return st, err
	}
	entry := workout.NewHistoryEntry(st.Plan.Name, day, label, time.Now())
	s.recorder.Record(ctx, entry, st.Feedback)
	return st, nil
}

// History returns the profile's completed days matching q.
func (s *Service) History(ctx context.Context, q history.Query) ([]workout.HistoryEntry, error) {
	entries, err := s.recorder.Entries(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read history")
	}
	return history.Browse(entries, q), nil
}
