// Package plannertest provides a fake OpenAI chat completions endpoint for tests.
package plannertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/myrjola/fitplan/internal/workout"
)

// Request is the part of a chat completion request the tests care about.
type Request struct {
	Model          string
	Prompt         string
	ResponseFormat json.RawMessage
}

// Response is what the fake endpoint answers with. Content is used only when Status is 200.
type Response struct {
	Status  int
	Content string
}

type Responder func(req Request) Response

// Server is a fake OpenAI API. The default responder answers with SamplePlan for the requested day count.
type Server struct {
	srv       *httptest.Server
	mu        sync.Mutex
	responder Responder
	requests  []Request
}

func NewServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{ //nolint:exhaustruct // initialised below.
		responder: DefaultResponder,
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the value for the OpenAI client's base URL option.
func (s *Server) BaseURL() string {
	return s.srv.URL + "/v1/"
}

func (s *Server) SetResponder(responder Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responder = responder
}

// Requests returns the chat completion requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}
	var body struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string          `json:"role"`
			Content json.RawMessage `json:"content"`
		} `json:"messages"`
		ResponseFormat json.RawMessage `json:"response_format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := Request{Model: body.Model, Prompt: "", ResponseFormat: body.ResponseFormat}
	for _, m := range body.Messages {
		var text string
		if err := json.Unmarshal(m.Content, &text); err == nil {
			req.Prompt += text
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	responder := s.responder
	s.mu.Unlock()

	resp := responder(req)
	w.Header().Set("Content-Type", "application/json")
	if resp.Status != http.StatusOK {
		w.WriteHeader(resp.Status)
		_, _ = fmt.Fprintf(w, `{"error":{"message":"fake failure","type":"server_error","code":null,"param":null}}`)
		return
	}
	completion := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000, //nolint:mnd // arbitrary timestamp.
		"model":   body.Model,
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"logprobs":      nil,
			"message": map[string]any{
				"role":    "assistant",
				"content": resp.Content,
				"refusal": nil,
			},
		}},
		"usage": map[string]any{"prompt_tokens": 100, "completion_tokens": 200, "total_tokens": 300},
	}
	_ = json.NewEncoder(w).Encode(completion)
}

var daysPattern = regexp.MustCompile(`Training days per week: (\d+)`)

// DefaultResponder answers with SamplePlan sized to the day count found in the prompt.
func DefaultResponder(req Request) Response {
	days := 3 //nolint:mnd // fallback when the prompt has no day count.
	if m := daysPattern.FindStringSubmatch(req.Prompt); m != nil {
		days, _ = strconv.Atoi(m[1])
	}
	return PlanResponse(SamplePlan(days))
}

// PlanResponse answers with plan encoded as the completion content.
func PlanResponse(plan workout.Plan) Response {
	content, err := json.Marshal(plan)
	if err != nil {
		panic(err)
	}
	return Response{Status: http.StatusOK, Content: string(content)}
}

// FailureResponse answers with an HTTP error.
func FailureResponse(status int) Response {
	return Response{Status: status, Content: ""}
}

// SamplePlan returns a valid plan with the given number of days.
func SamplePlan(days int) workout.Plan {
	focuses := []string{"Full Body", "Upper Body", "Lower Body", "Push", "Pull", "Legs"}
	plan := workout.Plan{Name: "Iron Forge Program", Days: make([]workout.Day, 0, days)}
	for i := range days {
		plan.Days = append(plan.Days, workout.Day{
			Label:    fmt.Sprintf("Day %c", 'A'+rune(i)),
			Focus:    focuses[i%len(focuses)],
			Warmup:   "5 minutes of jumping jacks and joint rotations",
			Cooldown: "5 minutes of light stretching",
			Exercises: []workout.Exercise{
				{Name: "Push-up", Sets: "3", Reps: "8-12", Rest: "60 seconds", Notes: "Keep the core tight"},
				{Name: "Bodyweight Squat", Sets: "4", Reps: "15-20", Rest: "45 seconds", Notes: ""},
			},
		})
	}
	return plan
}
