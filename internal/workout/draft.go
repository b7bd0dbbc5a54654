package workout

import (
	"slices"

	"github.com/myrjola/fitplan/internal/errors"
)

var ErrNoGoals = errors.NewSentinel("no goals selected")

// Draft holds the in-progress preference form. It becomes immutable Preferences on Submit.
type Draft struct {
	Goals       []Goal          `json:"goals"`
	Level       ExperienceLevel `json:"level"`
	Equipment   Equipment       `json:"equipment"`
	Duration    SessionDuration `json:"duration"`
	DaysPerWeek DaysPerWeek     `json:"daysPerWeek"`
	Gender      Gender          `json:"gender"`
}

// NewDraft returns a form with the default choices and no goals.
func NewDraft(gender Gender) Draft {
	return Draft{
		Goals:       []Goal{},
		Level:       LevelBeginner,
		Equipment:   EquipmentBodyweight,
		Duration:    Duration45,
		DaysPerWeek: FourDays,
		Gender:      gender,
	}
}

// Seed replaces the goal selection with the suggested goals, capped at MaxGoals.
func (d Draft) Seed(suggested []Goal) Draft {
	d.Goals = []Goal{}
	for _, g := range suggested {
		d = d.ToggleGoal(g)
	}
	return d
}

// ToggleGoal deselects g if selected. Otherwise g is selected unless MaxGoals are already selected.
func (d Draft) ToggleGoal(g Goal) Draft {
	if !g.Valid() {
		return d
	}
	if i := slices.Index(d.Goals, g); i >= 0 {
		d.Goals = slices.Delete(slices.Clone(d.Goals), i, i+1)
		return d
	}
	if len(d.Goals) >= MaxGoals {
		return d
	}
	d.Goals = append(slices.Clone(d.Goals), g)
	return d
}

func (d Draft) HasGoal(g Goal) bool {
	return slices.Contains(d.Goals, g)
}

// GoalDisabled reports whether g can't be selected because the cap is reached.
func (d Draft) GoalDisabled(g Goal) bool {
	return !d.HasGoal(g) && len(d.Goals) >= MaxGoals
}

func (d Draft) SetLevel(l ExperienceLevel) Draft {
	if l.Valid() {
		d.Level = l
	}
	return d
}

func (d Draft) SetEquipment(e Equipment) Draft {
	if e.Valid() {
		d.Equipment = e
	}
	return d
}

func (d Draft) SetDuration(s SessionDuration) Draft {
	if s.Valid() {
		d.Duration = s
	}
	return d
}

func (d Draft) SetDaysPerWeek(n DaysPerWeek) Draft {
	if n.Valid() {
		d.DaysPerWeek = n
	}
	return d
}

// CanSubmit is false while no goal is selected.
func (d Draft) CanSubmit() bool {
	return len(d.Goals) > 0
}

// Submit finalizes the draft.
func (d Draft) Submit() (Preferences, error) {
	if !d.CanSubmit() {
		return Preferences{}, ErrNoGoals
	}
	prefs := Preferences{
		Goals:       slices.Clone(d.Goals),
		Level:       d.Level,
		Equipment:   d.Equipment,
		Duration:    d.Duration,
		DaysPerWeek: d.DaysPerWeek,
		Gender:      d.Gender,
	}
	if err := prefs.Validate(); err != nil {
		return Preferences{}, errors.Wrap(err, "validate preferences")
	}
	return prefs, nil
}
