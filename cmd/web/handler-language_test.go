package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/myrjola/fitplan/internal/e2etest"
	"github.com/myrjola/fitplan/internal/i18n"
	"github.com/myrjola/fitplan/internal/testhelpers"
)

func Test_isRelativePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/", want: true},
		{path: "/?q=legs", want: true},
		{path: "/history", want: true},
		{path: "//evil.example", want: false},
		{path: "/\\evil.example", want: false},
		{path: "https://evil.example/", want: false},
		{path: "history", want: false},
		{path: "", want: false},
	}
	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func Test_sameOriginReturnPath(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{name: "no referer", referer: "", want: "/"},
		{name: "same origin", referer: "http://fitplan.test/?q=legs&sort=oldest", want: "/?q=legs&sort=oldest"},
		{name: "foreign origin", referer: "https://evil.example/phish", want: "/"},
		{name: "relative", referer: "/history", want: "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://fitplan.test/language", nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			if got := sameOriginReturnPath(r); got != tt.want {
				t.Errorf("sameOriginReturnPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_requestLanguage(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		acceptLanguage string
		want           i18n.Language
	}{
		{name: "default", cookie: "", acceptLanguage: "", want: i18n.English},
		{name: "cookie", cookie: "pt", acceptLanguage: "en-US", want: i18n.Portuguese},
		{name: "unsupported cookie", cookie: "xx", acceptLanguage: "", want: i18n.English},
		{name: "accept language", cookie: "", acceptLanguage: "de-DE,pt-BR;q=0.8,en;q=0.5", want: i18n.Portuguese},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: languageCookieName, Value: tt.cookie}) //nolint:exhaustruct // test.
			}
			if tt.acceptLanguage != "" {
				r.Header.Set("Accept-Language", tt.acceptLanguage)
			}
			if got := requestLanguage(r); got != tt.want {
				t.Errorf("requestLanguage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_application_setLanguage(t *testing.T) {
	ctx := t.Context()
	server, err := e2etest.StartServer(t, testhelpers.NewWriter(t), testLookupEnv, run)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	client := server.Client()

	doc, err := client.PostForm(ctx, "/language", url.Values{"language": {"pt"}})
	if err != nil {
		t.Fatalf("Failed to set language: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Vamos começar pelo seu corpo" {
		t.Errorf("Expected Portuguese heading, got %q", got)
	}
	if got, _ := doc.Find("html").Attr("lang"); got != "pt" {
		t.Errorf("Expected html lang pt, got %q", got)
	}

	_, err = client.PostForm(ctx, "/language", url.Values{"language": {"xx"}})
	if !containsStatusError(err, http.StatusBadRequest) {
		t.Errorf("Expected status 400 for unsupported language, got: %v", err)
	}
}
