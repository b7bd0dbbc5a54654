// Package wizard drives the plan builder: analysis, preference form, generation, and the resulting plan.
package wizard

import (
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/workout"
)

type Step string

const (
	StepAnalysis Step = "analysis"
	StepForm     Step = "form"
	StepLoading  Step = "loading"
	StepResult   Step = "result"
	StepError    Step = "error"
)

// View is orthogonal to Step. Switching views never changes the wizard progress.
type View string

const (
	ViewMain    View = "main"
	ViewHistory View = "history"
)

// GenerationErrorKey is the translation key of the one message shown for every generation failure.
const GenerationErrorKey = "error.generation"

var (
	ErrInvalidTransition   = errors.NewSentinel("invalid wizard transition")
	ErrDayAlreadyCompleted = errors.NewSentinel("day already completed")
)

// State is the complete wizard state of one browser profile. Which fields are meaningful depends on Step.
type State struct {
	Step Step `json:"step"`
	View View `json:"view"`
	// SuggestedGoals and Gender are handed over by the analysis step.
	SuggestedGoals []workout.Goal  `json:"suggestedGoals,omitempty"`
	Gender         workout.Gender  `json:"gender,omitempty"`
	Draft          workout.Draft   `json:"draft"`
	Plan           *workout.Plan   `json:"plan,omitempty"`
	// Feedback maps completed day labels to the feedback given.
	Feedback     map[string]string `json:"feedback,omitempty"`
	Error        string            `json:"error,omitempty"`
	GenerationID string            `json:"generationId,omitempty"`
	LoadingSince time.Time         `json:"loadingSince,omitzero"`
}

// Initial is the state of a fresh profile and the target of every reset.
func Initial() State {
	return State{
		Step:           StepAnalysis,
		View:           ViewMain,
		SuggestedGoals: nil,
		Gender:         "",
		Draft:          workout.Draft{}, //nolint:exhaustruct // no form yet.
		Plan:           nil,
		Feedback:       nil,
		Error:          "",
		GenerationID:   "",
		LoadingSince:   time.Time{},
	}
}

func invalid(s State, transition string) error {
	return errors.Wrap(ErrInvalidTransition, transition, slog.String("step", string(s.Step)))
}

// FormReady reports whether the form can be shown. A form without a known gender renders nothing.
func (s State) FormReady() bool {
	return s.Step == StepForm && s.Gender.Valid()
}

// CompleteAnalysis hands the suggested goals and gender to the form, which starts seeded with the suggestion.
func (s State) CompleteAnalysis(a workout.Analysis) (State, error) {
	if s.Step != StepAnalysis || !a.Valid {
		return s, invalid(s, "complete analysis")
	}
	s.Step = StepForm
	s.SuggestedGoals = slices.Clone(a.SuggestedGoals)
	s.Gender = a.Gender
	s.Draft = workout.NewDraft(a.Gender).Seed(a.SuggestedGoals)
	return s, nil
}

// UpdateDraft applies edit to the form.
func (s State) UpdateDraft(edit func(workout.Draft) workout.Draft) (State, error) {
	if s.Step != StepForm {
		return s, invalid(s, "update draft")
	}
	s.Draft = edit(s.Draft)
	s.Draft.Gender = s.Gender
	return s, nil
}

// Back leaves the form and discards everything entered so far.
func (s State) Back() (State, error) {
	if s.Step != StepForm {
		return s, invalid(s, "back")
	}
	return Initial(), nil
}

// StartGeneration submits the form. The returned preferences are what the generator must be called with.
func (s State) StartGeneration(generationID string, now time.Time) (State, workout.Preferences, error) {
	if s.Step != StepForm {
		return s, workout.Preferences{}, invalid(s, "start generation")
	}
	prefs, err := s.Draft.Submit()
	if err != nil {
		return s, workout.Preferences{}, errors.Wrap(err, "submit draft")
	}
	s.Step = StepLoading
	s.GenerationID = generationID
	s.LoadingSince = now
	s.Plan = nil
	s.Error = ""
	s.Feedback = nil
	return s, prefs, nil
}

func (s State) awaiting(generationID string) bool {
	return s.Step == StepLoading && s.GenerationID == generationID
}

// FinishGeneration shows plan. feedback is the previously stored feedback of a plan with the same name.
func (s State) FinishGeneration(generationID string, plan workout.Plan, feedback map[string]string) (State, error) {
	if !s.awaiting(generationID) {
		return s, invalid(s, "finish generation")
	}
	s.Step = StepResult
	s.Plan = &plan
	s.Feedback = maps.Clone(feedback)
	if s.Feedback == nil {
		s.Feedback = map[string]string{}
	}
	s.GenerationID = ""
	s.LoadingSince = time.Time{}
	return s, nil
}

// FailGeneration moves to the error step with the generic generation failure message.
func (s State) FailGeneration(generationID string) (State, error) {
	if !s.awaiting(generationID) {
		return s, invalid(s, "fail generation")
	}
	s.Step = StepError
	s.Error = GenerationErrorKey
	s.GenerationID = ""
	s.LoadingSince = time.Time{}
	return s, nil
}

// Reset returns to the analysis step from anywhere but loading. Plan, error, suggestion, gender and form are cleared.
func (s State) Reset() (State, error) {
	if s.Step == StepLoading {
		return s, invalid(s, "reset")
	}
	return Initial(), nil
}

func (s State) ShowHistory() State {
	s.View = ViewHistory
	return s
}

func (s State) ShowMain() State {
	s.View = ViewMain
	return s
}

// Completed reports whether the day with label has feedback.
func (s State) Completed(label string) bool {
	_, ok := s.Feedback[label]
	return ok
}

// CompleteDay records feedback for the plan day at index. Completion is one-way.
func (s State) CompleteDay(index int, feedback string) (State, workout.Day, error) {
	if s.Step != StepResult || s.Plan == nil {
		return s, workout.Day{}, invalid(s, "complete day")
	}
	if index < 0 || index >= len(s.Plan.Days) {
		return s, workout.Day{}, errors.Wrap(ErrInvalidTransition, "day out of range", slog.Int("index", index))
	}
	day := s.Plan.Days[index]
	if s.Completed(day.Label) {
		return s, workout.Day{}, errors.Wrap(ErrDayAlreadyCompleted, "complete day", slog.String("day", day.Label))
	}
	s.Feedback = maps.Clone(s.Feedback)
	if s.Feedback == nil {
		s.Feedback = map[string]string{}
	}
	s.Feedback[day.Label] = feedback
	return s, day, nil
}
