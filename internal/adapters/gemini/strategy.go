// Package gemini implements a router.Strategy that asks Google's Gemini API
// to map a natural-language request onto catalog action IDs.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"winmate/pkg/domain"
)

const defaultModel = "gemini-1.5-flash"

const systemPrompt = `You are an assistant that maps a Windows maintenance request to a list of internal action IDs.

You will be given:
- A natural language request from the user.
- A dictionary of known actions with their IDs, names, descriptions, and groups.

Your job:
- Choose the MOST relevant 1-3 action IDs that should be executed to satisfy the request.
- Only use action IDs that exist in the given dictionary.
- If nothing matches well, return an empty list.

Return ONLY a JSON array of strings, e.g.:
["cleanup_recommended", "health_full"]`

// Strategy proposes actions by prompting a Gemini model. It reads its API
// key from GEMINI_API_KEY or GOOGLE_API_KEY and the model name from
// GEMINI_MODEL.
type Strategy struct {
	apiKey string
	model  string
	logger *slog.Logger

	// newClient is swapped in tests.
	newClient func(ctx context.Context) (*genai.Client, error)

	mu     sync.Mutex
	client *genai.Client
}

// Option configures a Strategy.
type Option func(*Strategy)

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(s *Strategy) {
		if model != "" {
			s.model = model
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Strategy) { s.logger = logger }
}

// NewFromEnv builds a Strategy from environment variables. The returned
// strategy reports itself unconfigured when no API key is set, so callers
// can always wire it in and let the router skip it.
func NewFromEnv(opts ...Option) *Strategy {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	s := &Strategy{
		apiKey: apiKey,
		model:  defaultModel,
		logger: slog.Default(),
	}
	s.newClient = func(ctx context.Context) (*genai.Client, error) {
		return genai.NewClient(ctx, &genai.ClientConfig{APIKey: s.apiKey})
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		s.model = model
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured implements router.Strategy.
func (s *Strategy) Configured() bool {
	return s.apiKey != ""
}

// Propose implements router.Strategy. The router validates the returned IDs
// against the catalog, so unknown entries here are harmless.
func (s *Strategy) Propose(ctx context.Context, request string, actions []domain.ActionSummary) ([]string, error) {
	if !s.Configured() {
		return nil, nil
	}

	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := buildPrompt(request, actions)
	if err != nil {
		return nil, err
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	ids, err := parseActionIDs(resp.Text())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini proposed actions", "request", request, "ids", ids)
	return ids, nil
}

// ensureClient creates the API client on first use. The router is shared by
// concurrent HTTP and MCP requests, so the init is mutex-guarded.
func (s *Strategy) ensureClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		client, err := s.newClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		s.client = client
	}
	return s.client, nil
}

// buildPrompt assembles the instruction, the known-action dictionary and the
// user request into one prompt.
func buildPrompt(request string, actions []domain.ActionSummary) (string, error) {
	known := make(map[string]map[string]string, len(actions))
	for _, a := range actions {
		known[a.ID] = map[string]string{
			"name":        a.Name,
			"description": a.Description,
			"group":       a.Group,
		}
	}
	encoded, err := json.MarshalIndent(known, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode known actions: %w", err)
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nKNOWN_ACTIONS_JSON:\n")
	b.Write(encoded)
	b.WriteString("\n\nUSER_REQUEST:\n")
	b.WriteString(request)
	b.WriteString("\n\nRemember: respond ONLY with a JSON array of action IDs.")
	return b.String(), nil
}

// parseActionIDs extracts a JSON string array from a model response,
// tolerating markdown code fences around the payload.
func parseActionIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.Trim(raw, "`")
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(strings.ToLower(raw), "json") {
			raw = strings.TrimSpace(raw[4:])
		}
	}

	var values []any
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("parse model response as JSON array: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
