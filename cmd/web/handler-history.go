package main

import (
	"bytes"
	"net/http"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/history"
	"github.com/myrjola/fitplan/internal/workout"
)

type historyTemplateData struct {
	BaseTemplateData
	Filter  string
	Order   history.Order
	Orders  []choice[history.Order]
	Entries []workout.HistoryEntry
	// Recorded is false when nothing was ever completed, to tell it apart from a filter without matches.
	Recorded bool
}

func historyQuery(r *http.Request) history.Query {
	return history.Query{
		Filter: r.URL.Query().Get("q"),
		Order:  history.ParseOrder(r.URL.Query().Get("sort")),
	}
}

// renderHistory shows the completed days filtered and sorted by the query parameters "q" and "sort".
func (app *application) renderHistory(w http.ResponseWriter, r *http.Request) {
	q := historyQuery(r)
	all, err := app.wizard.History(r.Context(), history.Query{Filter: "", Order: history.OrderRecent})
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "history"))
		return
	}
	base := newBaseTemplateData(r)
	base.HistoryOpen = true
	app.render(w, r, http.StatusOK, "history", historyTemplateData{
		BaseTemplateData: base,
		Filter:           q.Filter,
		Order:            q.Order,
		Orders:           choices([]history.Order{history.OrderRecent, history.OrderOldest}, q.Order),
		Entries:          history.Browse(all, q),
		Recorded:         len(all) > 0,
	})
}

func (app *application) historyOpenPOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.wizard.ShowHistory(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "show history"))
		return
	}
	redirect(w, r, "/")
}

func (app *application) historyClosePOST(w http.ResponseWriter, r *http.Request) {
	if _, err := app.wizard.ShowMain(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "show main view"))
		return
	}
	redirect(w, r, "/")
}

// historyExportGET downloads the history filtered and sorted like the history view as a spreadsheet.
func (app *application) historyExportGET(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entries, err := app.wizard.History(ctx, historyQuery(r))
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "history"))
		return
	}
	var buf bytes.Buffer
	if err = history.WriteWorkbook(&buf, entries, contexthelpers.Language(ctx)); err != nil {
		app.serverError(w, r, errors.Wrap(err, "write workbook"))
		return
	}
	sendAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", history.WorkbookFilename, &buf)
}
