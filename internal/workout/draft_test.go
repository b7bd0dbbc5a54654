package workout_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/workout"
)

func TestNewDraft_defaults(t *testing.T) {
	got := workout.NewDraft(workout.GenderFemale)
	want := workout.Draft{
		Goals:       []workout.Goal{},
		Level:       workout.LevelBeginner,
		Equipment:   workout.EquipmentBodyweight,
		Duration:    workout.Duration45,
		DaysPerWeek: workout.FourDays,
		Gender:      workout.GenderFemale,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewDraft() mismatch (-want +got):\n%s", diff)
	}
	if got.CanSubmit() {
		t.Error("CanSubmit() = true with no goals")
	}
	if _, err := got.Submit(); !errors.Is(err, workout.ErrNoGoals) {
		t.Errorf("Submit() error = %v, want ErrNoGoals", err)
	}
}

func TestDraft_ToggleGoal(t *testing.T) {
	tests := []struct {
		name    string
		initial []workout.Goal
		toggle  []workout.Goal
		want    []workout.Goal
	}{
		{
			name:    "select one",
			initial: nil,
			toggle:  []workout.Goal{workout.GoalEndurance},
			want:    []workout.Goal{workout.GoalEndurance},
		},
		{
			name:    "deselect",
			initial: []workout.Goal{workout.GoalFatLoss},
			toggle:  []workout.Goal{workout.GoalFatLoss},
			want:    []workout.Goal{},
		},
		{
			name:    "third goal is ignored",
			initial: []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance},
			toggle:  []workout.Goal{workout.GoalMuscleGain},
			want:    []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance},
		},
		{
			name:    "freeing a slot allows another goal",
			initial: []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance},
			toggle:  []workout.Goal{workout.GoalFatLoss, workout.GoalMuscleGain},
			want:    []workout.Goal{workout.GoalEndurance, workout.GoalMuscleGain},
		},
		{
			name:    "unknown goal is ignored",
			initial: nil,
			toggle:  []workout.Goal{"yoga"},
			want:    []workout.Goal{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := workout.NewDraft(workout.GenderMale).Seed(tt.initial)
			for _, g := range tt.toggle {
				d = d.ToggleGoal(g)
				if len(d.Goals) > workout.MaxGoals {
					t.Fatalf("goal count %d exceeds max", len(d.Goals))
				}
			}
			if diff := cmp.Diff(tt.want, d.Goals); diff != "" {
				t.Errorf("Goals mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDraft_ToggleGoal_doesNotAlias(t *testing.T) {
	original := workout.NewDraft(workout.GenderMale).Seed([]workout.Goal{workout.GoalFatLoss})
	_ = original.ToggleGoal(workout.GoalEndurance)
	_ = original.ToggleGoal(workout.GoalFatLoss)
	if diff := cmp.Diff([]workout.Goal{workout.GoalFatLoss}, original.Goals); diff != "" {
		t.Errorf("original draft was mutated (-want +got):\n%s", diff)
	}
}

func TestDraft_setters(t *testing.T) {
	d := workout.NewDraft(workout.GenderMale).
		SetLevel(workout.LevelAdvanced).
		SetEquipment(workout.EquipmentFullGym).
		SetDuration(workout.Duration60).
		SetDaysPerWeek(workout.SixDays).
		// Out of range values keep the previous selection.
		SetLevel("expert").
		SetDuration(90).
		SetDaysPerWeek(7)

	d = d.ToggleGoal(workout.GoalMuscleGain)
	got, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	want := workout.Preferences{
		Goals:       []workout.Goal{workout.GoalMuscleGain},
		Level:       workout.LevelAdvanced,
		Equipment:   workout.EquipmentFullGym,
		Duration:    workout.Duration60,
		DaysPerWeek: workout.SixDays,
		Gender:      workout.GenderMale,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Submit() mismatch (-want +got):\n%s", diff)
	}
}

func TestPreferences_Validate(t *testing.T) {
	valid := workout.Preferences{
		Goals:       []workout.Goal{workout.GoalFatLoss},
		Level:       workout.LevelBeginner,
		Equipment:   workout.EquipmentDumbbells,
		Duration:    workout.Duration30,
		DaysPerWeek: workout.ThreeDays,
		Gender:      workout.GenderFemale,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *workout.Preferences)
	}{
		{name: "no goals", mutate: func(p *workout.Preferences) { p.Goals = nil }},
		{name: "three goals", mutate: func(p *workout.Preferences) {
			p.Goals = []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance, workout.GoalMuscleGain}
		}},
		{name: "duplicate goals", mutate: func(p *workout.Preferences) {
			p.Goals = []workout.Goal{workout.GoalFatLoss, workout.GoalFatLoss}
		}},
		{name: "unknown level", mutate: func(p *workout.Preferences) { p.Level = "pro" }},
		{name: "unknown equipment", mutate: func(p *workout.Preferences) { p.Equipment = "kettlebell" }},
		{name: "unknown duration", mutate: func(p *workout.Preferences) { p.Duration = 50 }},
		{name: "unknown days", mutate: func(p *workout.Preferences) { p.DaysPerWeek = 2 }},
		{name: "missing gender", mutate: func(p *workout.Preferences) { p.Gender = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Goals = append([]workout.Goal(nil), valid.Goals...)
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, workout.ErrInvalidPreferences) {
				t.Errorf("Validate() error = %v, want ErrInvalidPreferences", err)
			}
		})
	}
}
