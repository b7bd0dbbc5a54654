package main

import (
	"fmt"
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared middleware = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession middleware = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session middleware = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.identifyProfile(shared(next)))))
		}
	)

	mux.Handle("POST /analysis/preview", session(http.HandlerFunc(app.analysisPreviewPOST)))
	mux.Handle("POST /analysis", session(http.HandlerFunc(app.analysisPOST)))

	mux.Handle("POST /form/goals/{goal}/toggle", session(http.HandlerFunc(app.formToggleGoalPOST)))
	mux.Handle("POST /form/submit", session(http.HandlerFunc(app.formSubmitPOST)))
	mux.Handle("POST /form/back", session(http.HandlerFunc(app.formBackPOST)))

	mux.Handle("POST /reset", session(http.HandlerFunc(app.resetPOST)))

	mux.Handle("POST /plan/days/{index}/complete", session(http.HandlerFunc(app.planDayCompletePOST)))
	mux.Handle("GET /plan/pdf", session(http.HandlerFunc(app.planPDFGET)))

	mux.Handle("POST /history/open", session(http.HandlerFunc(app.historyOpenPOST)))
	mux.Handle("POST /history/close", session(http.HandlerFunc(app.historyClosePOST)))
	mux.Handle("GET /history/export", session(http.HandlerFunc(app.historyExportGET)))

	mux.Handle("POST /language", noSession(http.HandlerFunc(app.setLanguagePOST)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))

	// Home route (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.home)))

	// File server with custom 404 handling
	fileServerHandler, err := app.fileServerHandler(session, noSession)
	if err != nil {
		return nil, fmt.Errorf("fileServerHandler: %w", err)
	}
	mux.Handle("/", fileServerHandler)

	return mux, nil
}
