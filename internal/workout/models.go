// Package workout holds the fitness domain types shared by the wizard and the exports.
package workout

import (
	"log/slog"
	"slices"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
)

// Goal is a training objective. A user picks at most MaxGoals of them.
type Goal string

const (
	GoalMuscleGain Goal = "muscle_gain"
	GoalFatLoss    Goal = "fat_loss"
	GoalEndurance  Goal = "endurance"
)

// MaxGoals is the maximum number of goals combined into one plan.
const MaxGoals = 2

// ExperienceLevel describes how long the user has been training.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// Equipment is the equipment the user has access to.
type Equipment string

const (
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentDumbbells  Equipment = "dumbbells"
	EquipmentFullGym    Equipment = "full_gym"
)

// SessionDuration is the desired length of one training session in minutes.
type SessionDuration int

const (
	Duration30 SessionDuration = 30
	Duration45 SessionDuration = 45
	Duration60 SessionDuration = 60
)

// DaysPerWeek is the number of training days in the weekly plan.
type DaysPerWeek int

const (
	ThreeDays DaysPerWeek = 3
	FourDays  DaysPerWeek = 4
	FiveDays  DaysPerWeek = 5
	SixDays   DaysPerWeek = 6
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

//nolint:gochecknoglobals // fixed enumerations.
var (
	goals       = []Goal{GoalMuscleGain, GoalFatLoss, GoalEndurance}
	levels      = []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}
	equipment   = []Equipment{EquipmentBodyweight, EquipmentDumbbells, EquipmentFullGym}
	durations   = []SessionDuration{Duration30, Duration45, Duration60}
	daysPerWeek = []DaysPerWeek{ThreeDays, FourDays, FiveDays, SixDays}
	genders     = []Gender{GenderMale, GenderFemale}
)

// Goals returns the selectable goals in display order.
func Goals() []Goal { return slices.Clone(goals) }

// Levels returns the selectable experience levels in display order.
func Levels() []ExperienceLevel { return slices.Clone(levels) }

// EquipmentOptions returns the selectable equipment in display order.
func EquipmentOptions() []Equipment { return slices.Clone(equipment) }

// Durations returns the selectable session durations in display order.
func Durations() []SessionDuration { return slices.Clone(durations) }

// DaysPerWeekOptions returns the selectable training frequencies in display order.
func DaysPerWeekOptions() []DaysPerWeek { return slices.Clone(daysPerWeek) }

// Genders returns the selectable genders in display order.
func Genders() []Gender { return slices.Clone(genders) }

func (g Goal) Valid() bool            { return slices.Contains(goals, g) }
func (l ExperienceLevel) Valid() bool { return slices.Contains(levels, l) }
func (e Equipment) Valid() bool       { return slices.Contains(equipment, e) }
func (d SessionDuration) Valid() bool { return slices.Contains(durations, d) }
func (d DaysPerWeek) Valid() bool     { return slices.Contains(daysPerWeek, d) }
func (g Gender) Valid() bool          { return slices.Contains(genders, g) }

var (
	ErrInvalidPreferences = errors.NewSentinel("invalid preferences")
	ErrInvalidPlan        = errors.NewSentinel("invalid plan")
)

// Preferences is the finalized, immutable input for plan generation.
type Preferences struct {
	Goals       []Goal          `json:"goals"`
	Level       ExperienceLevel `json:"level"`
	Equipment   Equipment       `json:"equipment"`
	Duration    SessionDuration `json:"duration"`
	DaysPerWeek DaysPerWeek     `json:"daysPerWeek"`
	Gender      Gender          `json:"gender"`
}

// Validate checks the goal cardinality and that every field is within its enumeration.
func (p Preferences) Validate() error {
	if len(p.Goals) == 0 || len(p.Goals) > MaxGoals {
		return errors.Wrap(ErrInvalidPreferences, "goal count", slog.Int("goals", len(p.Goals)))
	}
	for i, g := range p.Goals {
		if !g.Valid() || slices.Contains(p.Goals[:i], g) {
			return errors.Wrap(ErrInvalidPreferences, "goal", slog.String("goal", string(g)))
		}
	}
	switch {
	case !p.Level.Valid():
		return errors.Wrap(ErrInvalidPreferences, "level", slog.String("level", string(p.Level)))
	case !p.Equipment.Valid():
		return errors.Wrap(ErrInvalidPreferences, "equipment", slog.String("equipment", string(p.Equipment)))
	case !p.Duration.Valid():
		return errors.Wrap(ErrInvalidPreferences, "duration", slog.Int("duration", int(p.Duration)))
	case !p.DaysPerWeek.Valid():
		return errors.Wrap(ErrInvalidPreferences, "days per week", slog.Int("days", int(p.DaysPerWeek)))
	case !p.Gender.Valid():
		return errors.Wrap(ErrInvalidPreferences, "gender", slog.String("gender", string(p.Gender)))
	}
	return nil
}

// Exercise is one entry of a training day. All fields are free text as returned by the model.
type Exercise struct {
	Name  string `json:"name" jsonschema_description:"The name of the exercise."`
	Sets  string `json:"sets" jsonschema_description:"Number of sets to perform, e.g. \"3\" or \"4\"."`
	Reps  string `json:"reps" jsonschema_description:"Repetition range per set, e.g. \"8-12\" or \"15-20\"."`
	Rest  string `json:"restTime" jsonschema_description:"Rest between sets, e.g. \"60 seconds\"."`
	Notes string `json:"notes,omitempty" jsonschema_description:"Optional execution tips or alternatives."`
}

// Day is one training day of a plan.
type Day struct {
	Label     string     `json:"day" jsonschema_description:"Number or name of the training day, e.g. \"Day A\" or \"Monday\"."`
	Focus     string     `json:"focus" jsonschema_description:"Main focus of the day, e.g. \"Full Body\", \"Chest\", \"Legs\"."`
	Warmup    string     `json:"warmup" jsonschema_description:"Short warm-up routine (5-10 min) such as jumping jacks and joint rotations."`
	Exercises []Exercise `json:"exercises" jsonschema_description:"Exercises of the main workout."`
	Cooldown  string     `json:"cooldown" jsonschema_description:"Short cool-down routine (5 min) of light stretches for the trained muscles."`
}

// Plan is the full generated weekly plan. It is never mutated after generation.
type Plan struct {
	Name string `json:"planName" jsonschema_description:"A creative and motivating name for the workout plan."`
	Days []Day  `json:"days" jsonschema_description:"The training days, as many as the user requested."`
}

// Validate reports whether all required fields are present.
func (p Plan) Validate() error {
	if p.Name == "" {
		return errors.Wrap(ErrInvalidPlan, "missing plan name")
	}
	if len(p.Days) == 0 {
		return errors.Wrap(ErrInvalidPlan, "no days")
	}
	for i, d := range p.Days {
		if d.Label == "" || d.Focus == "" || d.Warmup == "" || d.Cooldown == "" || d.Exercises == nil {
			return errors.Wrap(ErrInvalidPlan, "incomplete day", slog.Int("day", i))
		}
		for j, e := range d.Exercises {
			if e.Name == "" || e.Sets == "" || e.Reps == "" || e.Rest == "" {
				return errors.Wrap(ErrInvalidPlan, "incomplete exercise", slog.Int("day", i), slog.Int("exercise", j))
			}
		}
	}
	return nil
}

// HistoryEntry is an append-only record of one completed training day.
type HistoryEntry struct {
	ID          string    `json:"id"`
	PlanName    string    `json:"planName"`
	Day         Day       `json:"workoutDay"`
	Feedback    string    `json:"feedback"`
	CompletedAt time.Time `json:"completedAt"`
}

// NewHistoryEntry snapshots day and derives the entry ID from the plan name, day label and completion time.
func NewHistoryEntry(planName string, day Day, feedback string, completedAt time.Time) HistoryEntry {
	completedAt = completedAt.UTC()
	return HistoryEntry{
		ID:          planName + "-" + day.Label + "-" + completedAt.Format(time.RFC3339Nano),
		PlanName:    planName,
		Day:         day,
		Feedback:    feedback,
		CompletedAt: completedAt,
	}
}

// Feedback is one of the fixed qualitative ratings of a completed day.
type Feedback string

const (
	FeedbackChallenging     Feedback = "challenging"
	FeedbackGreat           Feedback = "great"
	FeedbackNeedsAdjustment Feedback = "needs_adjustment"
)

// FeedbackOptions returns the selectable feedback ratings in display order.
func FeedbackOptions() []Feedback {
	return []Feedback{FeedbackChallenging, FeedbackGreat, FeedbackNeedsAdjustment}
}

func (f Feedback) Valid() bool { return slices.Contains(FeedbackOptions(), f) }
