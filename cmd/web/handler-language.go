package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/myrjola/fitplan/internal/i18n"
)

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
	hoursPerDay      = 24
	daysPerYear      = 365
)

const languageCookieName = "language"

// isRelativePath checks if a path is a relative path without scheme or host and doesn't allow ambiguous slashes.
func isRelativePath(path string) bool {
	// Reject paths that contain a scheme (e.g., http://, https://, //).
	if strings.Contains(path, "://") || strings.HasPrefix(path, "//") {
		return false
	}
	// Accept paths that start with /, but not if the second character is / or \.
	if strings.HasPrefix(path, "/") {
		if len(path) == 1 || (path[1] != '/' && path[1] != '\\') {
			return true
		}
	}
	return false
}

// sameOriginReturnPath extracts the path of a same-origin Referer. Anything else returns "/".
func sameOriginReturnPath(r *http.Request) string {
	referer, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || referer.Host != r.Host {
		return "/"
	}
	path := referer.EscapedPath()
	if referer.RawQuery != "" {
		path += "?" + referer.RawQuery
	}
	if !isRelativePath(path) {
		return "/"
	}
	return path
}

// setLanguagePOST handles the POST request to set the user's language preference.
func (app *application) setLanguagePOST(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("language")

	if !i18n.IsSupported(i18n.Language(lang)) {
		http.Error(w, "Invalid language", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{ //nolint:exhaustruct // defaults.
		Name:     languageCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   daysPerYear * hoursPerDay * minutesPerHour * secondsPerMinute, // 1 year.
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	// Only redirect back to our own pages to prevent open redirects.
	http.Redirect(w, r, sameOriginReturnPath(r), http.StatusSeeOther)
}
