package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/myrjola/fitplan/internal/errors"
)

type middleware func(http.Handler) http.Handler

// fileServerHandler serves ui/static and falls back to the not found page rendered within a session.
func (app *application) fileServerHandler(session, noSession middleware) (http.Handler, error) {
	fileRoot, err := resolveUIPath("", "static")
	if err != nil {
		return nil, errors.Wrap(err, "resolve static path")
	}
	fileServer := http.FileServer(http.Dir(fileRoot))
	notFound := session(http.HandlerFunc(app.notFound))

	return noSession(cacheForever(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cleanPath := filepath.Clean(r.URL.Path)
			if strings.Contains(cleanPath, "..") || cleanPath == "/" {
				notFound.ServeHTTP(w, r)
				return
			}
			if stat, statErr := os.Stat(filepath.Join(fileRoot, cleanPath)); statErr != nil || stat.IsDir() {
				notFound.ServeHTTP(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		}))), nil
}
