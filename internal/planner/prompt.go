package planner

import (
	"fmt"
	"strings"

	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/workout"
)

//nolint:gochecknoglobals // fixed phrase tables.
var (
	goalPhrases = map[workout.Goal]string{
		workout.GoalMuscleGain: "Muscle gain (hypertrophy)",
		workout.GoalFatLoss:    "Fat loss and definition",
		workout.GoalEndurance:  "Improved cardiovascular and muscular endurance",
	}
	levelPhrases = map[workout.ExperienceLevel]string{
		workout.LevelBeginner:     "Beginner (less than 6 months of training)",
		workout.LevelIntermediate: "Intermediate (6 months to 2 years of training)",
		workout.LevelAdvanced:     "Advanced (more than 2 years of consistent training)",
	}
	equipmentPhrases = map[workout.Equipment]string{
		workout.EquipmentBodyweight: "Bodyweight only",
		workout.EquipmentDumbbells:  "Dumbbells and some basic equipment",
		workout.EquipmentFullGym:    "Access to a full gym with machines and free weights",
	}
	genderPhrases = map[workout.Gender]string{
		workout.GenderMale:   "Male",
		workout.GenderFemale: "Female",
	}
	splitPhrases = map[workout.DaysPerWeek]string{
		workout.ThreeDays: "Full Body",
		workout.FourDays:  "Upper/Lower",
		workout.FiveDays:  "ABCDE (Chest, Back, Legs, Shoulders, Arms)",
		workout.SixDays:   "Push/Pull/Legs x2",
	}
	languagePhrases = map[i18n.Language]string{
		i18n.English:    "English",
		i18n.Portuguese: "Brazilian Portuguese",
	}
)

// Split returns the conventional training split for the weekly frequency.
func Split(days workout.DaysPerWeek) string {
	return splitPhrases[days]
}

// buildPrompt turns the preferences into the natural-language instruction sent to the model.
func buildPrompt(prefs workout.Preferences, lang i18n.Language) string {
	goals := make([]string, 0, len(prefs.Goals))
	for _, g := range prefs.Goals {
		goals = append(goals, goalPhrases[g])
	}
	language, ok := languagePhrases[lang]
	if !ok {
		language = languagePhrases[i18n.DefaultLanguage]
	}

	var b strings.Builder
	b.WriteString(`You are an elite personal trainer and fitness expert with deep knowledge of exercise physiology.
Your task is to create a detailed, safe and effective weekly training plan that combines the user's goals.

User preferences:
`)
	fmt.Fprintf(&b, "- Gender: %s\n", genderPhrases[prefs.Gender])
	fmt.Fprintf(&b, "- Main goals: %s\n", strings.Join(goals, " and "))
	fmt.Fprintf(&b, "- Experience level: %s\n", levelPhrases[prefs.Level])
	fmt.Fprintf(&b, "- Available equipment: %s\n", equipmentPhrases[prefs.Equipment])
	fmt.Fprintf(&b, "- Training days per week: %d\n", prefs.DaysPerWeek)
	fmt.Fprintf(&b, "- Desired session duration: %d minutes\n", prefs.Duration)
	b.WriteString("\nInstructions:\n")
	instructions := []string{
		"Create a structured plan that intelligently integrates ALL of the listed goals. " +
			"Adapt it to the user's gender, considering general physiological differences when relevant.",
		fmt.Sprintf("The plan must have exactly %d training days.", prefs.DaysPerWeek),
		fmt.Sprintf("Use the most appropriate split for the weekly frequency: %s. "+
			"For reference: 3 days = Full Body; 4 days = Upper/Lower; "+
			"5 days = ABCDE (Chest, Back, Legs, Shoulders, Arms); 6 days = Push/Pull/Legs x2.",
			Split(prefs.DaysPerWeek)),
		"For each training day, include a warm-up routine, a list of exercises for the main workout " +
			"and a cool-down routine.",
		"The exercises must suit the available equipment.",
		"Volume (sets x reps) and intensity must be consistent with the combination of goals and the user's level.",
		"The total session duration (warm-up + workout + cool-down) should approximate the desired duration.",
		"Return the result strictly as JSON following the provided schema.",
		fmt.Sprintf("Write every text field in %s.", language),
	}
	for i, instruction := range instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
	}
	return b.String()
}
