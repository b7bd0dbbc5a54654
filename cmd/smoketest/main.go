package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/myrjola/fitplan/internal/e2etest"
	"github.com/myrjola/fitplan/internal/logging"
	"github.com/myrjola/fitplan/internal/testhelpers"
)

// TestAnalysis checks that a fresh profile lands on the analysis step and gets a BMI back.
func TestAnalysis(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	if doc.Find("form[action='/analysis']").Length() == 0 {
		return errors.New("analysis form not found")
	}
	if doc, err = client.PostForm(ctx, "/analysis/preview", url.Values{
		"height": {"180"},
		"weight": {"75"},
		"gender": {"male"},
	}); err != nil {
		return fmt.Errorf("preview analysis: %w", err)
	}
	if bmi := strings.TrimSpace(doc.Find(".bmi").Text()); bmi == "" {
		return errors.New("bmi not rendered")
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		client   *e2etest.Client
		err      error
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	serverURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		serverURL = "http://" + hostname
	}

	if client, err = e2etest.NewClient(serverURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}
	if err = TestAnalysis(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing analysis", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.Duration("duration", time.Since(start)))
	os.Exit(0)
}
