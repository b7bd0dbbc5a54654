package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/pdfexport"
	"github.com/myrjola/fitplan/internal/wizard"
	"github.com/myrjola/fitplan/internal/workout"
)

type planDay struct {
	Index     int
	Day       workout.Day
	Completed bool
	// Feedback is the label the day was completed with.
	Feedback string
}

type resultTemplateData struct {
	BaseTemplateData
	PlanName        string
	Days            []planDay
	FeedbackOptions []workout.Feedback
}

func newResultTemplateData(r *http.Request, st wizard.State) resultTemplateData {
	data := resultTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		PlanName:         "",
		Days:             nil,
		FeedbackOptions:  workout.FeedbackOptions(),
	}
	if st.Plan == nil {
		return data
	}
	data.PlanName = st.Plan.Name
	data.Days = make([]planDay, 0, len(st.Plan.Days))
	for i, d := range st.Plan.Days {
		feedback, completed := st.Feedback[d.Label]
		data.Days = append(data.Days, planDay{Index: i, Day: d, Completed: completed, Feedback: feedback})
	}
	return data
}

// planDayCompletePOST records the day at index as done with the chosen feedback.
// Completing a day twice is ignored.
func (app *application) planDayCompletePOST(w http.ResponseWriter, r *http.Request) {
	index, ok := app.parseDayIndexParam(w, r)
	if !ok {
		return
	}
	feedback := workout.Feedback(r.PostFormValue("feedback"))
	_, err := app.wizard.CompleteDay(r.Context(), index, feedback)
	switch {
	case errors.Is(err, wizard.ErrDayAlreadyCompleted), errors.Is(err, wizard.ErrInvalidTransition):
		app.logger.LogAttrs(r.Context(), slog.LevelInfo, "ignoring day completion", errors.SlogError(err))
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "complete day"))
		return
	}
	redirect(w, r, "/")
}

// planPDFGET downloads the current plan as a PDF.
func (app *application) planPDFGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := app.wizard.State(ctx)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "wizard state"))
		return
	}
	if st.Step != wizard.StepResult || st.Plan == nil {
		app.notFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err = pdfexport.Render(&buf, *st.Plan, pdfexport.Options{
		Language:    contexthelpers.Language(ctx),
		GeneratedAt: time.Now(),
	}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render plan pdf"))
		return
	}
	sendAttachment(w, "application/pdf", pdfexport.Filename(st.Plan.Name), &buf)
}
