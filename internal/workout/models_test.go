package workout_test

import (
	"testing"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/workout"
)

func validPlan() workout.Plan {
	return workout.Plan{
		Name: "Forge",
		Days: []workout.Day{{
			Label:    "Day A",
			Focus:    "Full Body",
			Warmup:   "Jumping jacks",
			Cooldown: "Stretching",
			Exercises: []workout.Exercise{
				{Name: "Squat", Sets: "3", Reps: "8-12", Rest: "60 seconds"},
			},
		}},
	}
}

func TestPlan_Validate(t *testing.T) {
	if err := validPlan().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *workout.Plan)
	}{
		{name: "missing name", mutate: func(p *workout.Plan) { p.Name = "" }},
		{name: "no days", mutate: func(p *workout.Plan) { p.Days = nil }},
		{name: "missing focus", mutate: func(p *workout.Plan) { p.Days[0].Focus = "" }},
		{name: "missing warmup", mutate: func(p *workout.Plan) { p.Days[0].Warmup = "" }},
		{name: "missing exercises", mutate: func(p *workout.Plan) { p.Days[0].Exercises = nil }},
		{name: "missing cooldown", mutate: func(p *workout.Plan) { p.Days[0].Cooldown = "" }},
		{name: "missing rest", mutate: func(p *workout.Plan) { p.Days[0].Exercises[0].Rest = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, workout.ErrInvalidPlan) {
				t.Errorf("Validate() error = %v, want ErrInvalidPlan", err)
			}
		})
	}

	t.Run("notes are optional", func(t *testing.T) {
		p := validPlan()
		p.Days[0].Exercises[0].Notes = ""
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestNewHistoryEntry(t *testing.T) {
	completedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.FixedZone("BRT", -3*60*60))
	day := validPlan().Days[0]
	entry := workout.NewHistoryEntry("Forge", day, "Great", completedAt)

	if got, want := entry.ID, "Forge-Day A-2025-03-14T12:30:00Z"; got != want {
		t.Errorf("ID = %q, want %q", got, want)
	}
	if !entry.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt = %v, want %v", entry.CompletedAt, completedAt)
	}
	if got, want := entry.Day.Focus, "Full Body"; got != want {
		t.Errorf("Day.Focus = %q, want %q", got, want)
	}
}
