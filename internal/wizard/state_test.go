package wizard_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/wizard"
	"github.com/myrjola/fitplan/internal/workout"
)

func samplePlan() workout.Plan {
	day := func(label, focus string) workout.Day {
		return workout.Day{
			Label:     label,
			Focus:     focus,
			Warmup:    "Jog",
			Exercises: []workout.Exercise{{Name: "Squat", Sets: "3", Reps: "10", Rest: "60s", Notes: ""}},
			Cooldown:  "Stretch",
		}
	}
	return workout.Plan{Name: "Forge", Days: []workout.Day{day("Day A", "Legs"), day("Day B", "Push")}}
}

// formState walks from the initial state to the form of an obese female profile.
func formState(t *testing.T) wizard.State {
	t.Helper()
	st, err := wizard.Initial().CompleteAnalysis(workout.Analyze(160, 90, workout.GenderFemale))
	if err != nil {
		t.Fatalf("CompleteAnalysis() error = %v", err)
	}
	return st
}

func resultState(t *testing.T) wizard.State {
	t.Helper()
	st, _, err := formState(t).StartGeneration("gen-1", time.Now())
	if err != nil {
		t.Fatalf("StartGeneration() error = %v", err)
	}
	if st, err = st.FinishGeneration("gen-1", samplePlan(), nil); err != nil {
		t.Fatalf("FinishGeneration() error = %v", err)
	}
	return st
}

func TestState_CompleteAnalysis(t *testing.T) {
	st := formState(t)
	if st.Step != wizard.StepForm || !st.FormReady() {
		t.Fatalf("step = %s, FormReady = %v", st.Step, st.FormReady())
	}
	want := []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance}
	if diff := cmp.Diff(want, st.SuggestedGoals); diff != "" {
		t.Errorf("SuggestedGoals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, st.Draft.Goals); diff != "" {
		t.Errorf("draft not seeded with suggestion (-want +got):\n%s", diff)
	}
	if st.Draft.Gender != workout.GenderFemale {
		t.Errorf("draft gender = %q", st.Draft.Gender)
	}

	if _, err := wizard.Initial().CompleteAnalysis(workout.Analyze(0, 70, workout.GenderMale)); !errors.Is(err,
		wizard.ErrInvalidTransition) {
		t.Errorf("invalid analysis error = %v, want ErrInvalidTransition", err)
	}
	if _, err := st.CompleteAnalysis(workout.Analyze(180, 80, workout.GenderMale)); !errors.Is(err,
		wizard.ErrInvalidTransition) {
		t.Errorf("analysis from form error = %v, want ErrInvalidTransition", err)
	}
}

func TestState_StartGeneration(t *testing.T) {
	t.Run("no goals", func(t *testing.T) {
		st, err := formState(t).UpdateDraft(func(d workout.Draft) workout.Draft {
			return d.ToggleGoal(workout.GoalFatLoss).ToggleGoal(workout.GoalEndurance)
		})
		if err != nil {
			t.Fatalf("UpdateDraft() error = %v", err)
		}
		if _, _, err = st.StartGeneration("gen-1", time.Now()); !errors.Is(err, workout.ErrNoGoals) {
			t.Errorf("StartGeneration() error = %v, want ErrNoGoals", err)
		}
	})

	t.Run("submits preferences", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		st, prefs, err := formState(t).StartGeneration("gen-1", now)
		if err != nil {
			t.Fatalf("StartGeneration() error = %v", err)
		}
		if st.Step != wizard.StepLoading || st.GenerationID != "gen-1" || !st.LoadingSince.Equal(now) {
			t.Errorf("unexpected loading state %+v", st)
		}
		want := workout.Preferences{
			Goals:       []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance},
			Level:       workout.LevelBeginner,
			Equipment:   workout.EquipmentBodyweight,
			Duration:    workout.Duration45,
			DaysPerWeek: workout.FourDays,
			Gender:      workout.GenderFemale,
		}
		if diff := cmp.Diff(want, prefs); diff != "" {
			t.Errorf("preferences mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestState_generationOutcome(t *testing.T) {
	loading, _, err := formState(t).StartGeneration("gen-1", time.Now())
	if err != nil {
		t.Fatalf("StartGeneration() error = %v", err)
	}

	t.Run("stale generation is rejected", func(t *testing.T) {
		if _, err = loading.FinishGeneration("other", samplePlan(), nil); !errors.Is(err, wizard.ErrInvalidTransition) {
			t.Errorf("FinishGeneration() error = %v, want ErrInvalidTransition", err)
		}
		if _, err = loading.FailGeneration("other"); !errors.Is(err, wizard.ErrInvalidTransition) {
			t.Errorf("FailGeneration() error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("failure shows generic error", func(t *testing.T) {
		st, err := loading.FailGeneration("gen-1")
		if err != nil {
			t.Fatalf("FailGeneration() error = %v", err)
		}
		if st.Step != wizard.StepError || st.Error != wizard.GenerationErrorKey || st.Plan != nil {
			t.Errorf("unexpected error state %+v", st)
		}
	})

	t.Run("success restores stored feedback", func(t *testing.T) {
		st, err := loading.FinishGeneration("gen-1", samplePlan(), map[string]string{"Day A": "Great"})
		if err != nil {
			t.Fatalf("FinishGeneration() error = %v", err)
		}
		if st.Step != wizard.StepResult || st.Plan == nil || !st.Completed("Day A") || st.Completed("Day B") {
			t.Errorf("unexpected result state %+v", st)
		}
	})

	t.Run("reset is not possible while loading", func(t *testing.T) {
		if _, err = loading.Reset(); !errors.Is(err, wizard.ErrInvalidTransition) {
			t.Errorf("Reset() error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestState_Reset(t *testing.T) {
	failed, _, err := formState(t).StartGeneration("gen-1", time.Now())
	if err != nil {
		t.Fatalf("StartGeneration() error = %v", err)
	}
	if failed, err = failed.FailGeneration("gen-1"); err != nil {
		t.Fatalf("FailGeneration() error = %v", err)
	}

	for name, st := range map[string]wizard.State{
		"result":  resultState(t),
		"error":   failed,
		"history": resultState(t).ShowHistory(),
	} {
		t.Run(name, func(t *testing.T) {
			got, err := st.Reset()
			if err != nil {
				t.Fatalf("Reset() error = %v", err)
			}
			if diff := cmp.Diff(wizard.Initial(), got); diff != "" {
				t.Errorf("Reset() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("back from form", func(t *testing.T) {
		got, err := formState(t).Back()
		if err != nil {
			t.Fatalf("Back() error = %v", err)
		}
		if diff := cmp.Diff(wizard.Initial(), got); diff != "" {
			t.Errorf("Back() mismatch (-want +got):\n%s", diff)
		}
		if _, err = resultState(t).Back(); !errors.Is(err, wizard.ErrInvalidTransition) {
			t.Errorf("Back() from result error = %v, want ErrInvalidTransition", err)
		}
	})
}

func TestState_viewToggle(t *testing.T) {
	st := formState(t)
	inHistory := st.ShowHistory()
	if inHistory.View != wizard.ViewHistory {
		t.Fatalf("View = %s", inHistory.View)
	}
	back := inHistory.ShowMain()
	if diff := cmp.Diff(st, back); diff != "" {
		t.Errorf("view round trip changed the wizard (-want +got):\n%s", diff)
	}
}

func TestState_CompleteDay(t *testing.T) {
	st := resultState(t)

	next, day, err := st.CompleteDay(1, "Great")
	if err != nil {
		t.Fatalf("CompleteDay() error = %v", err)
	}
	if day.Label != "Day B" {
		t.Errorf("completed day = %q, want Day B", day.Label)
	}
	if diff := cmp.Diff(map[string]string{"Day B": "Great"}, next.Feedback); diff != "" {
		t.Errorf("Feedback mismatch (-want +got):\n%s", diff)
	}
	if st.Completed("Day B") {
		t.Error("CompleteDay() mutated the previous state")
	}

	if _, _, err = next.CompleteDay(1, "Challenging"); !errors.Is(err, wizard.ErrDayAlreadyCompleted) {
		t.Errorf("second CompleteDay() error = %v, want ErrDayAlreadyCompleted", err)
	}
	for _, index := range []int{-1, 2} {
		if _, _, err = st.CompleteDay(index, "Great"); !errors.Is(err, wizard.ErrInvalidTransition) {
			t.Errorf("CompleteDay(%d) error = %v, want ErrInvalidTransition", index, err)
		}
	}
	if _, _, err = formState(t).CompleteDay(0, "Great"); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Errorf("CompleteDay() on form error = %v, want ErrInvalidTransition", err)
	}
}

func TestState_FormReady(t *testing.T) {
	st := formState(t)
	st.Gender = ""
	if st.FormReady() {
		t.Error("form without gender must not be ready")
	}
}
