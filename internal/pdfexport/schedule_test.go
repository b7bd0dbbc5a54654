package pdfexport_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/pdfexport"
	"github.com/myrjola/fitplan/internal/workout"
)

func days(n int) []workout.Day {
	result := make([]workout.Day, n)
	for i := range result {
		result[i] = workout.Day{
			Label:    fmt.Sprintf("Day %d", i+1),
			Focus:    fmt.Sprintf("F%d", i+1),
			Warmup:   "Jog",
			Cooldown: "Stretch",
			Exercises: []workout.Exercise{
				{Name: "Squat", Sets: "3", Reps: "10", Rest: "60s", Notes: ""},
			},
		}
	}
	return result
}

func TestWeeklySchedule(t *testing.T) {
	rest := pdfexport.Slot{Rest: true, Focus: ""}
	train := func(focus string) pdfexport.Slot { return pdfexport.Slot{Rest: false, Focus: focus} }

	tests := []struct {
		days int
		want [7]pdfexport.Slot
	}{
		{days: 3, want: [7]pdfexport.Slot{train("F1"), rest, train("F2"), rest, train("F3"), rest, rest}},
		{days: 4, want: [7]pdfexport.Slot{train("F1"), train("F2"), rest, train("F3"), train("F4"), rest, rest}},
		{days: 5, want: [7]pdfexport.Slot{train("F1"), train("F2"), train("F3"), train("F4"), train("F5"), rest, rest}},
		{days: 6, want: [7]pdfexport.Slot{
			train("F1"), train("F2"), train("F3"), train("F4"), train("F5"), train("F6"), rest,
		}},
		{days: 0, want: [7]pdfexport.Slot{rest, rest, rest, rest, rest, rest, rest}},
		{days: 2, want: [7]pdfexport.Slot{train("F1"), train("F2"), rest, rest, rest, rest, rest}},
		{days: 9, want: [7]pdfexport.Slot{
			train("F1"), train("F2"), train("F3"), train("F4"), train("F5"), train("F6"), train("F7"),
		}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			got := pdfexport.WeeklySchedule(days(tt.days))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("WeeklySchedule() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Iron Forge Program", want: "Iron_Forge_Program.pdf"},
		{name: "Plano  de\tTreino", want: "Plano_de_Treino.pdf"},
		{name: " Leading", want: "_Leading.pdf"},
		{name: "Força Total", want: "Força_Total.pdf"},
		{name: "", want: ".pdf"},
	}
	for _, tt := range tests {
		if got := pdfexport.Filename(tt.name); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
