package planner_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/planner"
	"github.com/myrjola/fitplan/internal/planner/plannertest"
	"github.com/myrjola/fitplan/internal/testhelpers"
	"github.com/myrjola/fitplan/internal/workout"
)

func preferences() workout.Preferences {
	return workout.Preferences{
		Goals:       []workout.Goal{workout.GoalFatLoss, workout.GoalEndurance},
		Level:       workout.LevelIntermediate,
		Equipment:   workout.EquipmentDumbbells,
		Duration:    workout.Duration60,
		DaysPerWeek: workout.FiveDays,
		Gender:      workout.GenderFemale,
	}
}

func newClient(t *testing.T, fake *plannertest.Server) *planner.Client {
	t.Helper()
	return planner.NewClient(planner.Config{
		APIKey:        "test-key",
		BaseURL:       fake.BaseURL(),
		Model:         "",
		MaxConcurrent: 2,
	}, testhelpers.NewTestLogger(t))
}

func TestClient_Generate(t *testing.T) {
	fake := plannertest.NewServer(t)
	client := newClient(t, fake)

	plan, err := client.Generate(t.Context(), preferences())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if diff := cmp.Diff(plannertest.SamplePlan(5), plan); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	requests := fake.Requests()
	if len(requests) != 1 {
		t.Fatalf("got %d requests, want exactly 1", len(requests))
	}
	req := requests[0]
	if got, want := req.Model, "gpt-4o-2024-08-06"; got != want {
		t.Errorf("model = %q, want %q", got, want)
	}
	for _, want := range []string{
		"Gender: Female",
		"Main goals: Fat loss and definition and Improved cardiovascular and muscular endurance",
		"Experience level: Intermediate",
		"Available equipment: Dumbbells",
		"Training days per week: 5",
		"Desired session duration: 60 minutes",
		"exactly 5 training days",
		"ABCDE (Chest, Back, Legs, Shoulders, Arms)",
		"Write every text field in English.",
	} {
		if !strings.Contains(req.Prompt, want) {
			t.Errorf("prompt does not contain %q:\n%s", want, req.Prompt)
		}
	}
	format := string(req.ResponseFormat)
	for _, want := range []string{`"json_schema"`, `"workout_plan"`, `"planName"`, `"restTime"`} {
		if !strings.Contains(format, want) {
			t.Errorf("response_format does not contain %s: %s", want, format)
		}
	}
}

func TestClient_Generate_language(t *testing.T) {
	fake := plannertest.NewServer(t)
	client := newClient(t, fake)

	ctx := contexthelpers.WithLanguage(t.Context(), i18n.Portuguese)
	if _, err := client.Generate(ctx, preferences()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if prompt := fake.Requests()[0].Prompt; !strings.Contains(prompt, "Brazilian Portuguese") {
		t.Errorf("prompt does not request Brazilian Portuguese:\n%s", prompt)
	}
}

func TestClient_Generate_failures(t *testing.T) {
	missingCooldown := plannertest.SamplePlan(3)
	missingCooldown.Days[1].Cooldown = ""

	tests := []struct {
		name     string
		response plannertest.Response
	}{
		{name: "server error", response: plannertest.FailureResponse(http.StatusInternalServerError)},
		{name: "rate limited", response: plannertest.FailureResponse(http.StatusTooManyRequests)},
		{name: "malformed json", response: plannertest.Response{Status: http.StatusOK, Content: `{"planName": "x", `}},
		{name: "empty content", response: plannertest.Response{Status: http.StatusOK, Content: "  "}},
		{name: "missing required field", response: plannertest.PlanResponse(missingCooldown)},
		{name: "no days", response: plannertest.PlanResponse(workout.Plan{Name: "Empty", Days: nil})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := plannertest.NewServer(t)
			fake.SetResponder(func(plannertest.Request) plannertest.Response { return tt.response })
			client := newClient(t, fake)

			_, err := client.Generate(t.Context(), preferences())
			if !errors.Is(err, planner.ErrGenerationFailed) {
				t.Fatalf("Generate() error = %v, want ErrGenerationFailed", err)
			}
			if err.Error() != planner.ErrGenerationFailed.Error() {
				t.Errorf("error leaks details: %q", err.Error())
			}
			if got := len(fake.Requests()); got != 1 {
				t.Errorf("got %d requests, want 1 since failures are not retried", got)
			}
		})
	}
}

func TestClient_Generate_invalidPreferences(t *testing.T) {
	fake := plannertest.NewServer(t)
	client := newClient(t, fake)

	prefs := preferences()
	prefs.Goals = nil
	if _, err := client.Generate(t.Context(), prefs); !errors.Is(err, planner.ErrGenerationFailed) {
		t.Errorf("Generate() error = %v, want ErrGenerationFailed", err)
	}
	if got := len(fake.Requests()); got != 0 {
		t.Errorf("got %d requests, want none for invalid preferences", got)
	}
}
