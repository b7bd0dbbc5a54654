package workout

import (
	"math"
	"strconv"
	"strings"
)

// BMICategory is the World Health Organization classification of a body mass index.
type BMICategory string

const (
	CategoryUnknown     BMICategory = ""
	CategoryUnderweight BMICategory = "underweight"
	CategoryNormal      BMICategory = "normal"
	CategoryOverweight  BMICategory = "overweight"
	CategoryObese       BMICategory = "obese"
)

const (
	underweightBelow = 18.5
	normalBelow      = 25
	overweightBelow  = 30
)

// BMI computes weight / (height in meters)². ok is false unless both inputs are strictly positive.
func BMI(heightCm, weightKg float64) (float64, bool) {
	if !(heightCm > 0) || !(weightKg > 0) || math.IsInf(heightCm, 0) || math.IsInf(weightKg, 0) {
		return 0, false
	}
	heightM := heightCm / 100 //nolint:mnd // centimeters to meters.
	return weightKg / (heightM * heightM), true
}

// Classify maps a BMI to its category. Lower bounds are inclusive so that 25.0 is overweight.
func Classify(bmi float64) BMICategory {
	switch {
	case bmi < underweightBelow:
		return CategoryUnderweight
	case bmi < normalBelow:
		return CategoryNormal
	case bmi < overweightBelow:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// SuggestedGoals returns the goals that are preselected in the preference form for the category.
func SuggestedGoals(category BMICategory) []Goal {
	switch category {
	case CategoryUnderweight, CategoryNormal:
		return []Goal{GoalMuscleGain}
	case CategoryOverweight:
		return []Goal{GoalFatLoss}
	case CategoryObese:
		return []Goal{GoalFatLoss, GoalEndurance}
	case CategoryUnknown:
		return nil
	}
	return nil
}

// Analysis is the outcome of the body analysis step.
type Analysis struct {
	Valid          bool
	BMI            float64
	Category       BMICategory
	SuggestedGoals []Goal
	Gender         Gender
}

// Analyze computes the BMI and its classification. An invalid analysis must not let the user continue.
func Analyze(heightCm, weightKg float64, gender Gender) Analysis {
	bmi, ok := BMI(heightCm, weightKg)
	if !ok {
		return Analysis{Valid: false, BMI: 0, Category: CategoryUnknown, SuggestedGoals: nil, Gender: gender}
	}
	category := Classify(bmi)
	return Analysis{
		Valid:          gender.Valid(),
		BMI:            bmi,
		Category:       category,
		SuggestedGoals: SuggestedGoals(category),
		Gender:         gender,
	}
}

// ParseMeasurement parses a decimal form value accepting both "70.5" and "70,5". Unparseable input yields 0.
func ParseMeasurement(value string) float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}
