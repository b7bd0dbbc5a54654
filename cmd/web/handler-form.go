package main

import (
	"net/http"
	"strconv"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/wizard"
	"github.com/myrjola/fitplan/internal/workout"
)

type goalOption struct {
	Value    workout.Goal
	Selected bool
	// Disabled is set on unselected goals once the goal limit is reached.
	Disabled bool
}

type choice[T any] struct {
	Value   T
	Checked bool
}

func choices[T comparable](options []T, current T) []choice[T] {
	cs := make([]choice[T], 0, len(options))
	for _, o := range options {
		cs = append(cs, choice[T]{Value: o, Checked: o == current})
	}
	return cs
}

type formTemplateData struct {
	BaseTemplateData
	// Ready is false when the analysis handed over no gender. The form is not rendered then.
	Ready     bool
	Goals     []goalOption
	Levels    []choice[workout.ExperienceLevel]
	Equipment []choice[workout.Equipment]
	Durations []choice[workout.SessionDuration]
	Days      []choice[workout.DaysPerWeek]
	CanSubmit bool
	MaxGoals  int
}

func newFormTemplateData(r *http.Request, st wizard.State) formTemplateData {
	d := st.Draft
	goals := make([]goalOption, 0, len(workout.Goals()))
	for _, g := range workout.Goals() {
		goals = append(goals, goalOption{Value: g, Selected: d.HasGoal(g), Disabled: d.GoalDisabled(g)})
	}
	return formTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Ready:            st.FormReady(),
		Goals:            goals,
		Levels:           choices(workout.Levels(), d.Level),
		Equipment:        choices(workout.EquipmentOptions(), d.Equipment),
		Durations:        choices(workout.Durations(), d.Duration),
		Days:             choices(workout.DaysPerWeekOptions(), d.DaysPerWeek),
		CanSubmit:        d.CanSubmit(),
		MaxGoals:         workout.MaxGoals,
	}
}

// parseDraftEdit reads the single-choice fields of the form. Values outside the options leave the field unchanged.
func parseDraftEdit(r *http.Request) func(workout.Draft) workout.Draft {
	level := workout.ExperienceLevel(r.PostFormValue("level"))
	equipment := workout.Equipment(r.PostFormValue("equipment"))
	duration, _ := strconv.Atoi(r.PostFormValue("duration"))
	days, _ := strconv.Atoi(r.PostFormValue("days"))
	return func(d workout.Draft) workout.Draft {
		return d.SetLevel(level).
			SetEquipment(equipment).
			SetDuration(workout.SessionDuration(duration)).
			SetDaysPerWeek(workout.DaysPerWeek(days))
	}
}

// formToggleGoalPOST saves the form and toggles one goal.
func (app *application) formToggleGoalPOST(w http.ResponseWriter, r *http.Request) {
	goal := workout.Goal(r.PathValue("goal"))
	if !goal.Valid() {
		app.notFound(w, r)
		return
	}
	edit := parseDraftEdit(r)
	_, err := app.wizard.UpdateDraft(r.Context(), func(d workout.Draft) workout.Draft {
		return edit(d).ToggleGoal(goal)
	})
	if err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		app.serverError(w, r, errors.Wrap(err, "toggle goal"))
		return
	}
	redirect(w, r, "/")
}

// formSubmitPOST saves the form and starts the plan generation.
func (app *application) formSubmitPOST(w http.ResponseWriter, r *http.Request) {
	st, err := app.wizard.Submit(r.Context(), parseDraftEdit(r))
	switch {
	case errors.Is(err, workout.ErrNoGoals):
		app.renderStep(w, r, http.StatusUnprocessableEntity, st)
		return
	case err != nil && !errors.Is(err, wizard.ErrInvalidTransition):
		app.serverError(w, r, errors.Wrap(err, "submit form"))
		return
	}
	redirect(w, r, "/")
}

// formBackPOST discards the form and returns to the body analysis.
func (app *application) formBackPOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.wizard.Back(r.Context()); err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		app.serverError(w, r, errors.Wrap(err, "back to analysis"))
		return
	}
	redirect(w, r, "/")
}
