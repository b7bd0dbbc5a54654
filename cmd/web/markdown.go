package main

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/yuin/goldmark"
)

//nolint:gochecknoglobals // goldmark converters are safe for concurrent use.
var markdown = goldmark.New()

// renderMarkdownToHTML converts the model's markdown to HTML. Raw HTML in the input is omitted by goldmark.
func (app *application) renderMarkdownToHTML(ctx context.Context, md string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelError, "render markdown", errors.SlogError(err))
		return template.HTML(template.HTMLEscapeString(md)) //nolint:gosec // escaped.
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark escapes raw HTML by default.
}
