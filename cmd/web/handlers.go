package main

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/i18n"
)

// formatBMI rounds the body mass index to one decimal.
func formatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', 1, 64)
}

// baseTemplateFuncs declares the template functions for parsing.
// The request dependent ones (nonce, mdToHTML, t, tf) are replaced by contextTemplateFuncs before execution.
func baseTemplateFuncs() template.FuncMap {
	notBound := func() string { panic("template function used without a request context") }
	return template.FuncMap{
		"nonce":     notBound,
		"mdToHTML":  notBound,
		"t":         notBound,
		"tf":        notBound,
		"formatBMI": formatBMI,
	}
}

func (app *application) contextTemplateFuncs(ctx context.Context) template.FuncMap {
	nonce := `nonce="` + contexthelpers.CSPNonce(ctx) + `"`
	lang := contexthelpers.Language(ctx)
	return template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"mdToHTML": func(markdown string) template.HTML {
			return app.renderMarkdownToHTML(ctx, markdown)
		},
		"t": func(key string) string {
			return i18n.Translate(lang, key)
		},
		"tf": func(key string, args ...any) string {
			return i18n.Translatef(lang, key, args...)
		},
	}
}

// parsePages parses every directory in pages/ of fsys together with base.gohtml.
// Each page directory has to define a template named "page".
func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	dirs, err := fs.ReadDir(fsys, "pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages")
	}
	pages := make(map[string]*template.Template, len(dirs))
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		name := dir.Name()
		t, parseErr := template.New(name).Funcs(baseTemplateFuncs()).
			ParseFS(fsys, "base.gohtml", path.Join("pages", name, "*.gohtml"))
		if parseErr != nil {
			return nil, errors.Wrap(parseErr, "parse page", slog.String("page", name))
		}
		pages[name] = t
	}
	return pages, nil
}

func (app *application) renderToBuf(ctx context.Context, pageName string, data any) (*bytes.Buffer, error) {
	page, ok := app.pages[pageName]
	if !ok {
		return nil, errors.New("page not found", slog.String("page", pageName))
	}
	t, err := page.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone page", slog.String("page", pageName))
	}
	buf := new(bytes.Buffer)
	if err = t.Funcs(app.contextTemplateFuncs(ctx)).ExecuteTemplate(buf, "base", data); err != nil {
		return nil, errors.Wrap(err, "execute page", slog.String("page", pageName))
	}
	return buf, nil
}

// render executes the page from ui/templates/pages/{pageName} and writes it with status.
// The page is rendered completely before anything is written so that a failing template still yields the error page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName string, data any) {
	buf, err := app.renderToBuf(r.Context(), pageName, data)
	if err != nil {
		if pageName == errorPage {
			app.logger.LogAttrs(r.Context(), slog.LevelError, "error page failed", errors.SlogError(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		app.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
