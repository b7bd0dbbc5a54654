// Package planner generates workout plans with an OpenAI chat completion using structured outputs.
package planner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/fitplan/internal/contexthelpers"
	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/workout"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// ErrGenerationFailed is the only error Generate returns. The cause is logged, not surfaced.
var ErrGenerationFailed = errors.NewSentinel("generation failed")

type Config struct {
	APIKey string
	// BaseURL overrides the OpenAI API endpoint. Leave empty for the default.
	BaseURL string
	Model   string
	// MaxConcurrent bounds the number of in-flight completions.
	MaxConcurrent int64
}

// Client generates plans with a single chat completion request. It never retries.
type Client struct {
	client openai.Client
	model  openai.ChatModel
	schema any
	sem    *semaphore.Weighted
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	model := openai.ChatModelGPT4o2024_08_06
	if cfg.Model != "" {
		model = openai.ChatModel(cfg.Model)
	}
	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
		schema: planSchema(),
		sem:    semaphore.NewWeighted(maxConcurrent),
		logger: logger,
	}
}

// Generate asks the model for a plan matching prefs. The plan text is written in the language of ctx.
//
// Transport errors, empty responses, malformed JSON, and missing required fields all return ErrGenerationFailed.
func (c *Client) Generate(ctx context.Context, prefs workout.Preferences) (workout.Plan, error) {
	plan, err := c.generate(ctx, prefs)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "plan generation failed", errors.SlogError(err))
		return workout.Plan{}, ErrGenerationFailed
	}
	return plan, nil
}

func (c *Client) generate(ctx context.Context, prefs workout.Preferences) (workout.Plan, error) {
	if err := prefs.Validate(); err != nil {
		return workout.Plan{}, errors.Wrap(err, "validate preferences")
	}
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return workout.Plan{}, errors.Wrap(err, "acquire generation slot")
	}
	defer c.sem.Release(1)

	prompt := buildPrompt(prefs, contexthelpers.Language(ctx))
	start := time.Now()
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{ //nolint:exhaustruct // defaults.
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{ //nolint:exhaustruct // union.
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{ //nolint:exhaustruct // defaults.
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "workout_plan",
					Description: openai.String("A weekly workout plan with warm-up, exercises and cool-down per day"),
					Schema:      c.schema,
					// Strict mode requires every property to be required but exercise notes are optional.
					Strict: openai.Bool(false),
				},
			},
		},
		Model: c.model,
	})
	if err != nil {
		return workout.Plan{}, errors.Wrap(err, "chat completion", slog.String("model", string(c.model)))
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "received plan completion",
		slog.Duration("duration", time.Since(start)),
		slog.Int64("prompt_tokens", chat.Usage.PromptTokens),
		slog.Int64("completion_tokens", chat.Usage.CompletionTokens))

	if len(chat.Choices) == 0 {
		return workout.Plan{}, errors.New("no choices in completion")
	}
	return parsePlan(chat.Choices[0].Message.Content)
}

// parsePlan decodes the completion content and verifies the required fields.
func parsePlan(content string) (workout.Plan, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return workout.Plan{}, errors.New("empty completion content")
	}
	var plan workout.Plan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return workout.Plan{}, errors.Wrap(err, "parse plan", slog.Int("content_length", len(content)))
	}
	if err := plan.Validate(); err != nil {
		return workout.Plan{}, errors.Wrap(err, "validate plan")
	}
	return plan, nil
}
