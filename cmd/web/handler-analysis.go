package main

import (
	"net/http"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/wizard"
	"github.com/myrjola/fitplan/internal/workout"
)

// analysisInput is the raw body analysis form. The values are echoed back so that the user can correct them.
type analysisInput struct {
	Height string
	Weight string
	Gender workout.Gender
}

// defaultGender is preselected so that valid measurements are enough to continue.
const defaultGender = workout.GenderFemale

func newAnalysisInput() analysisInput {
	return analysisInput{Height: "", Weight: "", Gender: defaultGender}
}

func parseAnalysisInput(r *http.Request) analysisInput {
	in := newAnalysisInput()
	in.Height = r.PostFormValue("height")
	in.Weight = r.PostFormValue("weight")
	if g := workout.Gender(r.PostFormValue("gender")); g.Valid() {
		in.Gender = g
	}
	return in
}

func (in analysisInput) analyze() workout.Analysis {
	return workout.Analyze(workout.ParseMeasurement(in.Height), workout.ParseMeasurement(in.Weight), in.Gender)
}

type genderOption struct {
	Value   workout.Gender
	Checked bool
}

type analysisTemplateData struct {
	BaseTemplateData
	Height   string
	Weight   string
	Genders  []genderOption
	Analysis workout.Analysis
	// Measured is true once both measurements parse to a BMI.
	Measured bool
}

func newAnalysisTemplateData(r *http.Request, in analysisInput) analysisTemplateData {
	a := in.analyze()
	genders := make([]genderOption, 0, len(workout.Genders()))
	for _, g := range workout.Genders() {
		genders = append(genders, genderOption{Value: g, Checked: g == in.Gender})
	}
	return analysisTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Height:           in.Height,
		Weight:           in.Weight,
		Genders:          genders,
		Analysis:         a,
		Measured:         a.Category != workout.CategoryUnknown,
	}
}

// analysisPreviewPOST recomputes the BMI for the entered measurements without leaving the step.
func (app *application) analysisPreviewPOST(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "analysis", newAnalysisTemplateData(r, parseAnalysisInput(r)))
}

// analysisPOST hands the analysis over to the preference form. Invalid measurements re-render the step.
func (app *application) analysisPOST(w http.ResponseWriter, r *http.Request) {
	in := parseAnalysisInput(r)
	a := in.analyze()
	if !a.Valid {
		app.render(w, r, http.StatusUnprocessableEntity, "analysis", newAnalysisTemplateData(r, in))
		return
	}
	if _, err := app.wizard.CompleteAnalysis(r.Context(), a); err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		app.serverError(w, r, errors.Wrap(err, "complete analysis"))
		return
	}
	redirect(w, r, "/")
}
