package gemini

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"winmate/pkg/domain"
)

func TestParseActionIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain array", `["cleanup_recommended", "health_full"]`, []string{"cleanup_recommended", "health_full"}},
		{"empty array", `[]`, []string{}},
		{"code fence", "```\n[\"network_reset\"]\n```", []string{"network_reset"}},
		{"json code fence", "```json\n[\"cleanup_temp\"]\n```", []string{"cleanup_temp"}},
		{"surrounding whitespace", "  [\"health_sfc\"]  \n", []string{"health_sfc"}},
		{"non-string entries dropped", `["cleanup_temp", 42, null]`, []string{"cleanup_temp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseActionIDs(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestParseActionIDs_Malformed(t *testing.T) {
	_, err := parseActionIDs("sure, here are the actions you need")
	assert.Error(t, err)

	_, err = parseActionIDs(`{"id": "cleanup_temp"}`)
	assert.Error(t, err, "a JSON object is not an action ID array")
}

func TestBuildPrompt_CarriesActionsAndRequest(t *testing.T) {
	actions := []domain.ActionSummary{
		{ID: "cleanup_temp", Name: "Clean Temp Files", Description: "Deletes temp files.", Group: "cleanup"},
	}

	prompt, err := buildPrompt("my pc is slow", actions)
	require.NoError(t, err)

	assert.Contains(t, prompt, "KNOWN_ACTIONS_JSON")
	assert.Contains(t, prompt, `"cleanup_temp"`)
	assert.Contains(t, prompt, "Clean Temp Files")
	assert.Contains(t, prompt, "USER_REQUEST:\nmy pc is slow")
	assert.Contains(t, prompt, "respond ONLY with a JSON array")
}

func TestConfigured(t *testing.T) {
	assert.False(t, (&Strategy{}).Configured())
	assert.True(t, (&Strategy{apiKey: "key"}).Configured())
}

func TestEnsureClient_ConcurrentInitCreatesOneClient(t *testing.T) {
	var creates atomic.Int32
	want := &genai.Client{}

	s := &Strategy{
		apiKey: "key",
		newClient: func(ctx context.Context) (*genai.Client, error) {
			creates.Add(1)
			return want, nil
		},
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client, err := s.ensureClient(context.Background())
			assert.NoError(t, err)
			assert.Same(t, want, client)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), creates.Load())
}

func TestNewFromEnv_ModelDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_MODEL", "")

	s := NewFromEnv()
	assert.Equal(t, defaultModel, s.model)
	assert.True(t, s.Configured())

	s = NewFromEnv(WithModel("gemini-2.0-flash"))
	assert.Equal(t, "gemini-2.0-flash", s.model)
}
