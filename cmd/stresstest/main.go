package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/myrjola/fitplan/internal/e2etest"
	"github.com/myrjola/fitplan/internal/logging"
	"github.com/myrjola/fitplan/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	scenarioTimeout         = 30 * time.Second
	maxConcurrentOperations = 20
	numProfiles             = 50
	baseHeight              = 150
	heightRange             = 50
	baseWeight              = 50
	weightRange             = 60
	successRateThreshold    = 95.0
	expectedArgsCount       = 2
	percentageMultiplier    = 100
)

// WizardScenario walks one fresh profile through the analysis and the preferences form.
// It stops before generating a plan so that the load test does not spend model tokens.
func WizardScenario(ctx context.Context, serverURL string, profileIndex int) error {
	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	measurements := url.Values{
		"height": {strconv.Itoa(baseHeight + profileIndex%heightRange)},
		"weight": {strconv.Itoa(baseWeight + profileIndex%weightRange)},
		"gender": {[]string{"male", "female"}[profileIndex%2]},
	}

	if _, err = client.GetDoc(ctx, "/"); err != nil {
		return fmt.Errorf("get home: %w", err)
	}
	doc, err := client.PostForm(ctx, "/analysis/preview", measurements)
	if err != nil {
		return fmt.Errorf("preview analysis: %w", err)
	}
	if doc.Find(".bmi").Length() == 0 {
		return errors.New("bmi not rendered")
	}
	if doc, err = client.PostForm(ctx, "/analysis", measurements); err != nil {
		return fmt.Errorf("complete analysis: %w", err)
	}
	if doc.Find("form[action='/form/submit']").Length() == 0 {
		return errors.New("preferences form not rendered")
	}
	if _, err = client.PostForm(ctx, "/form/goals/endurance/toggle", url.Values{"days": {"4"}}); err != nil {
		return fmt.Errorf("toggle goal: %w", err)
	}
	if _, err = client.PostForm(ctx, "/history/open", nil); err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if _, err = client.PostForm(ctx, "/history/close", nil); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if doc, err = client.PostForm(ctx, "/form/back", nil); err != nil {
		return fmt.Errorf("back to analysis: %w", err)
	}
	if doc.Find("form[action='/analysis']").Length() == 0 {
		return errors.New("analysis form not rendered after going back")
	}
	return nil
}

// RunLoadTest runs the wizard scenario for many profiles concurrently.
func RunLoadTest(ctx context.Context, serverURL string, logger *slog.Logger) error {
	logger.LogAttrs(ctx, slog.LevelInfo, "Starting load test", slog.Int("num_profiles", numProfiles))

	var successCount, failureCount int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentOperations)

	for i := range numProfiles {
		g.Go(func() error {
			scenarioCtx, cancel := context.WithTimeout(ctx, scenarioTimeout)
			defer cancel()

			if err := WizardScenario(scenarioCtx, serverURL, i); err != nil {
				atomic.AddInt64(&failureCount, 1)
				// Log individual failures but don't stop the entire test
				logger.LogAttrs(scenarioCtx, slog.LevelWarn, "Scenario failed",
					slog.Int("profile_index", i),
					slog.Any("error", err))
				return nil
			}

			atomic.AddInt64(&successCount, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("load test failed: %w", err)
	}

	successRate := float64(successCount) / float64(numProfiles) * percentageMultiplier

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed",
		slog.Int64("successful", successCount),
		slog.Int64("failed", failureCount),
		slog.Float64("success_rate", successRate))

	if successRate < successRateThreshold {
		return fmt.Errorf("load test failed: success rate %.1f%% below threshold", successRate)
	}

	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != expectedArgsCount {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)

	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	serverURL := "https://" + hostname
	if strings.Contains(hostname, "localhost") {
		serverURL = "http://" + hostname
	}
	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", slog.Any("error", err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready in time", slog.Any("error", err))
		os.Exit(1)
	}

	if err = RunLoadTest(ctx, serverURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "load test failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Load test completed successfully 🙌",
		slog.Duration("total_duration", time.Since(start)))
}
