package hfinference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/dialogsum/internal/domain/summarizer"
)

func TestGenerateSendsPipelineParameters(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody SummarizationRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"summary_text":"Person2 plans a trip to Japan."}]`))
	}))
	defer srv.Close()

	client, err := NewClient("hf_secret", srv.URL+"/models/", 0)
	require.NoError(t, err)

	out, err := client.Generate(context.Background(), summarizer.GenerationRequest{
		ModelID:           "facebook/bart-large-cnn",
		Text:              "dialogue text",
		MaxLength:         150,
		MinLength:         40,
		LengthPenalty:     2.0,
		NumBeams:          4,
		EarlyStopping:     true,
		NoRepeatNgramSize: 3,
	})
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"summary_text": "Person2 plans a trip to Japan."}}, out)

	require.Equal(t, "/models/facebook/bart-large-cnn", gotPath)
	require.Equal(t, "Bearer hf_secret", gotAuth)
	require.Equal(t, SummarizationRequest{
		Inputs: "dialogue text",
		Parameters: Parameters{
			MaxLength:         150,
			MinLength:         40,
			LengthPenalty:     2.0,
			NumBeams:          4,
			EarlyStopping:     true,
			NoRepeatNgramSize: 3,
		},
		Options: Options{WaitForModel: true},
	}, gotBody)
}

func TestSummarizeResponseShapes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    []any
		wantErr string
	}{
		{name: "error object", status: http.StatusOK, body: `{"error":"Model is loading"}`, wantErr: "inference error: Model is loading"},
		{name: "unexpected object", status: http.StatusOK, body: `{"foo":"bar"}`, want: nil},
		{name: "empty list", status: http.StatusOK, body: `[]`, want: []any{}},
		{name: "server error", status: http.StatusServiceUnavailable, body: `overloaded`, wantErr: "inference request failed: status=503 body=overloaded"},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantErr: "decode summarization response"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewClient("", srv.URL, 0)
			require.NoError(t, err)

			out, err := client.Summarize(context.Background(), "m", SummarizationRequest{Inputs: "x"})
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"loaded":true}`))
	}))
	defer srv.Close()

	client, err := NewClient("", srv.URL, 0)
	require.NoError(t, err)
	require.NoError(t, client.Probe(context.Background(), "bart-dialogsum"))
	require.Error(t, client.Probe(context.Background(), "missing"))
	require.EqualError(t, client.Probe(context.Background(), " "), "model id cannot be empty")
}

func TestNewClientValidatesEndpoint(t *testing.T) {
	_, err := NewClient("", "ftp://example.com", 0)
	require.Error(t, err)

	client, err := NewClient("", "", 0)
	require.NoError(t, err)
	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Zero(t, client.httpClient.Timeout)
}
