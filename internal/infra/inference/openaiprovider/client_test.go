package openaiprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

func newTestServer(t *testing.T, status string, text string) (*httptest.Server, *map[string]any) {
	t.Helper()
	got := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/responses", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":         "resp_1",
			"object":     "response",
			"created_at": 0,
			"status":     status,
			"model":      "gpt-test",
			"output": []any{
				map[string]any{
					"type":   "message",
					"id":     "msg_1",
					"status": "completed",
					"role":   "assistant",
					"content": []any{
						map[string]any{"type": "output_text", "text": text, "annotations": []any{}},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestGenerateMapsLengthWindow(t *testing.T) {
	srv, got := newTestServer(t, "completed", "  Person1 books a checkup for next week. ")
	client, err := NewClient("sk-test", srv.URL, "gpt-test")
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), summarizer.GenerationRequest{
		Text:      "#Person1#: Hi. #Person2#: Hello.",
		MaxLength: 60,
		MinLength: 10,
	})
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"summary_text": "Person1 books a checkup for next week."}}, out)

	require.Equal(t, "gpt-test", (*got)["model"])
	require.EqualValues(t, 60, (*got)["max_output_tokens"])
	require.Equal(t, "#Person1#: Hi. #Person2#: Hello.", (*got)["input"])
	require.Contains(t, (*got)["instructions"], "Between 10 and 60 tokens.")
}

func TestGenerateEmptyOutput(t *testing.T) {
	srv, _ := newTestServer(t, "completed", "   ")
	client, err := NewClient("sk-test", srv.URL, "gpt-test")
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), summarizer.GenerationRequest{Text: "x", MaxLength: 5})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient("", "", "gpt-test")
	require.EqualError(t, err, "openai api key is required")

	_, err = NewClient("sk-test", "", " ")
	require.EqualError(t, err, "openai model is required")
}
