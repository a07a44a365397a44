package summarizer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperrors "github.com/yanqian/dialogsum/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses runs", in: "Hi,\n\n  I am\tfine.", want: "Hi, I am fine."},
		{name: "trims ends", in: "  \t hello \n", want: "hello"},
		{name: "unicode spaces", in: "a  b", want: "a b"},
		{name: "empty", in: "", want: ""},
		{name: "only whitespace", in: " \n\t ", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "text")
		once := Normalize(in)
		require.Equal(t, once, Normalize(once))
		require.NotContains(t, once, "  ")
		require.Equal(t, strings.TrimSpace(once), once)
	})
}

func TestParseParams(t *testing.T) {
	defaults := Params{MaxLength: 150, MinLength: 40}
	tests := []struct {
		name   string
		maxRaw any
		minRaw any
		want   Params
	}{
		{name: "absent fields", want: defaults},
		{name: "form strings", maxRaw: "120", minRaw: " 30 ", want: Params{MaxLength: 120, MinLength: 30}},
		{name: "json numbers", maxRaw: float64(90), minRaw: float64(10), want: Params{MaxLength: 90, MinLength: 10}},
		{name: "json.Number", maxRaw: json.Number("60"), minRaw: json.Number("5"), want: Params{MaxLength: 60, MinLength: 5}},
		{name: "only max given", maxRaw: "80", want: Params{MaxLength: 80, MinLength: 40}},
		{name: "garbage resets both", maxRaw: "lots", minRaw: "10", want: defaults},
		{name: "fractional resets both", maxRaw: 99.5, minRaw: float64(10), want: defaults},
		{name: "empty string resets", maxRaw: "", minRaw: "10", want: defaults},
		{name: "zero max resets", maxRaw: "0", minRaw: "0", want: defaults},
		{name: "negative min resets", maxRaw: "100", minRaw: "-1", want: defaults},
		{name: "bool rejected", maxRaw: true, minRaw: "1", want: defaults},
		{name: "inverted range kept for validation", maxRaw: "20", minRaw: "50", want: Params{MaxLength: 20, MinLength: 50}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ParseParams(tt.maxRaw, tt.minRaw, defaults))
		})
	}
}

func TestValidateOrder(t *testing.T) {
	v := NewValidator(DefaultConfig())
	ok := Params{MaxLength: 150, MinLength: 40}
	tests := []struct {
		name     string
		text     string
		params   Params
		wantCode string
		wantMsg  string
	}{
		{name: "empty", text: "   ", params: ok, wantCode: CodeEmptyText, wantMsg: MsgEmptyText},
		{name: "too short", text: "  short  ", params: ok, wantCode: CodeTextTooShort, wantMsg: "Text too short. Please enter at least 10 characters."},
		{name: "too long", text: strings.Repeat("a", 10001), params: ok, wantCode: CodeTextTooLong, wantMsg: "Text too long. Maximum 10,000 characters allowed."},
		{name: "length check before range", text: "tiny", params: Params{MaxLength: 1, MinLength: 9}, wantCode: CodeTextTooShort},
		{name: "inverted range", text: "long enough text", params: Params{MaxLength: 10, MinLength: 20}, wantCode: CodeInvalidLengthRange, wantMsg: MsgInvalidLengthRange},
		{name: "exactly ten", text: "0123456789", params: ok},
		{name: "exactly max", text: strings.Repeat("é", 10000), params: ok},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(tt.text, tt.params)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			require.True(t, apperrors.IsCode(err, tt.wantCode), "got %v", err)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, apperrors.MessageOf(err))
			}
		})
	}
}

func TestValidateShortTextProperty(t *testing.T) {
	v := NewValidator(DefaultConfig())
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOfN(rapid.RuneFrom([]rune("abcxyzé,.!?")), 1, 9, -1).Draw(t, "text")
		pad := rapid.StringOfN(rapid.RuneFrom([]rune(" \t\n")), 0, 5, -1).Draw(t, "pad")
		err := v.Validate(pad+text+pad, Params{MaxLength: 150, MinLength: 40})
		require.True(t, apperrors.IsCode(err, CodeTextTooShort))
	})
}

func TestValidateLongTextProperty(t *testing.T) {
	v := NewValidator(DefaultConfig())
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(10001, 12000).Draw(t, "n")
		r := rapid.RuneFrom([]rune("aZ9ж")).Draw(t, "rune")
		text := strings.Repeat(string(r), n)
		err := v.Validate(text, Params{MaxLength: 150, MinLength: 40})
		require.True(t, apperrors.IsCode(err, CodeTextTooLong))

		echo := v.Echo(text, err)
		require.True(t, strings.HasSuffix(echo, "... [truncated]"))
		require.Equal(t, strings.Repeat(string(r), 1000), strings.TrimSuffix(echo, "... [truncated]"))
	})
}

func TestEcho(t *testing.T) {
	v := NewValidator(DefaultConfig())
	require.Equal(t, "", v.Echo("  ", apperrors.Wrap(CodeEmptyText, MsgEmptyText, nil)))
	require.Equal(t, "short", v.Echo(" short ", apperrors.Wrap(CodeTextTooShort, "x", nil)))
	require.Equal(t, "fine text", v.Echo("fine text", nil))
}

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name   string
		output []any
		want   string
		wantOK bool
	}{
		{name: "summary_text", output: []any{map[string]any{"summary_text": "They talk."}}, want: "They talk.", wantOK: true},
		{name: "non string summary_text", output: []any{map[string]any{"summary_text": 42}}, want: "42", wantOK: true},
		{name: "unexpected element", output: []any{"plain"}, want: "plain", wantOK: true},
		{name: "empty", output: nil, wantOK: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extractSummary(tt.output)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLegacyText(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{name: "success", result: Result{Summary: "Error handling was discussed.", Success: true}, want: "Error handling was discussed."},
		{name: "model unavailable", result: failure(CodeModelUnavailable, MsgModelUnavailable, nil), want: "Error: " + MsgModelUnavailable},
		{name: "provider failure", result: failure(CodeProviderFailure, "model provider failed", errors.New("boom")), want: "Error: boom"},
		{name: "malformed", result: failure(CodeMalformedResult, MsgMalformedResult, nil), want: MsgMalformedResult},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.result.LegacyText())
		})
	}
}

func TestGroupThousands(t *testing.T) {
	require.Equal(t, "999", groupThousands(999))
	require.Equal(t, "10,000", groupThousands(10000))
	require.Equal(t, "1,234,567", groupThousands(1234567))
}

func TestTruncateRunes(t *testing.T) {
	require.Equal(t, "héll", truncateRunes("héllo", 4))
	require.Equal(t, "héllo", truncateRunes("héllo", 10))
	require.Equal(t, "héllo", truncateRunes("héllo", 0))
}
