package main

import (
	"math"
	"net/http"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/wizard"
)

// home renders the page of the current view and wizard step.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	st, err := app.wizard.State(r.Context())
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "wizard state"))
		return
	}
	if st.View == wizard.ViewHistory {
		app.renderHistory(w, r)
		return
	}
	app.renderStep(w, r, http.StatusOK, st)
}

func (app *application) renderStep(w http.ResponseWriter, r *http.Request, status int, st wizard.State) {
	switch st.Step {
	case wizard.StepAnalysis:
		app.render(w, r, status, "analysis", newAnalysisTemplateData(r, newAnalysisInput()))
	case wizard.StepForm:
		app.render(w, r, status, "form", newFormTemplateData(r, st))
	case wizard.StepLoading:
		app.render(w, r, status, "loading", app.newLoadingTemplateData(r, st))
	case wizard.StepResult:
		app.render(w, r, status, "result", newResultTemplateData(r, st))
	case wizard.StepError:
		app.render(w, r, status, "generation-error", generationErrorTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			MessageKey:       st.Error,
		})
	default:
		app.serverError(w, r, errors.New("unknown wizard step"))
	}
}

type loadingTemplateData struct {
	BaseTemplateData
	MessageKey string
	// RefreshSeconds is the meta refresh delay that polls for the generation outcome.
	RefreshSeconds int
}

func (app *application) newLoadingTemplateData(r *http.Request, st wizard.State) loadingTemplateData {
	return loadingTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		MessageKey:       wizard.LoadingMessageKey(time.Since(st.LoadingSince), app.loadingInterval),
		RefreshSeconds:   max(1, int(math.Ceil(app.loadingInterval.Seconds()))),
	}
}

type generationErrorTemplateData struct {
	BaseTemplateData
	MessageKey string
}

// resetPOST starts over from the body analysis. It is rejected while a plan is being generated.
func (app *application) resetPOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.wizard.Reset(r.Context()); err != nil && !errors.Is(err, wizard.ErrInvalidTransition) {
		app.serverError(w, r, errors.Wrap(err, "reset wizard"))
		return
	}
	redirect(w, r, "/")
}
