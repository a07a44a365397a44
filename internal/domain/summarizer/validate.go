package summarizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lightningnetwork/lnd/fn/v2"

	apperrors "github.com/yanqian/dialogsum/pkg/errors"
)

const truncationMarker = "... [truncated]"

// User facing validation messages.
const (
	MsgModelUnavailable   = "Model not loaded. Please check if the model files are available."
	MsgEmptyText          = "Please enter some text to summarize."
	MsgTextTooShort       = "Text too short. Please enter at least %d characters."
	MsgTextTooLong        = "Text too long. Maximum %s characters allowed."
	MsgInvalidLengthRange = "Minimum length cannot be greater than maximum length."
	MsgMalformedResult    = "Could not generate summary. Please try again."
)

// ParseParams extracts generation lengths from loosely typed transport
// values. A nil value means the field was absent and takes its default. Any
// value that does not parse as an integer, or an out of range result, resets
// both fields to the defaults.
func ParseParams(maxRaw, minRaw any, defaults Params) Params {
	maxLen := parseLength(maxRaw, defaults.MaxLength)
	minLen := parseLength(minRaw, defaults.MinLength)
	if maxLen.IsNone() || minLen.IsNone() {
		return defaults
	}
	params := Params{
		MaxLength: maxLen.UnwrapOr(defaults.MaxLength),
		MinLength: minLen.UnwrapOr(defaults.MinLength),
	}
	if params.MaxLength < 1 || params.MinLength < 0 {
		return defaults
	}
	return params
}

func parseLength(raw any, def int) fn.Option[int] {
	switch v := raw.(type) {
	case nil:
		return fn.Some(def)
	case int:
		return fn.Some(v)
	case int64:
		return fn.Some(int(v))
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
			return fn.None[int]()
		}
		return fn.Some(int(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return fn.None[int]()
		}
		return fn.Some(int(n))
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fn.None[int]()
		}
		return fn.Some(n)
	default:
		return fn.None[int]()
	}
}

// Validator enforces the input bounds of the pipeline.
type Validator struct {
	cfg Config
}

// NewValidator builds a validator from the pipeline limits.
func NewValidator(cfg Config) Validator {
	return Validator{cfg: cfg}
}

// Validate checks text and params. The first failure wins in the order
// empty, too short, too long, inverted length range.
func (v Validator) Validate(text string, params Params) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.Wrap(CodeEmptyText, MsgEmptyText, nil)
	}
	length := utf8.RuneCountInString(text)
	if length < v.cfg.MinInputChars {
		return v.tooShort()
	}
	if length > v.cfg.MaxInputChars {
		return apperrors.Wrap(CodeTextTooLong, formatTooLong(v.cfg.MaxInputChars), nil)
	}
	if params.MinLength > params.MaxLength {
		return apperrors.Wrap(CodeInvalidLengthRange, MsgInvalidLengthRange, nil)
	}
	return nil
}

// Echo returns the input as it should be shown back next to err. Over-long
// input is cut to the echo limit; nothing is echoed for empty input.
func (v Validator) Echo(text string, err error) string {
	text = strings.TrimSpace(text)
	switch apperrors.CodeOf(err) {
	case CodeEmptyText, CodeModelUnavailable:
		return ""
	case CodeTextTooLong:
		return truncateRunes(text, v.cfg.EchoChars) + truncationMarker
	default:
		return text
	}
}

func (v Validator) tooShort() error {
	return apperrors.Wrap(CodeTextTooShort, formatTooShort(v.cfg.MinInputChars), nil)
}

func formatTooShort(limit int) string {
	return fmt.Sprintf(MsgTextTooShort, limit)
}

func formatTooLong(limit int) string {
	return fmt.Sprintf(MsgTextTooLong, groupThousands(limit))
}

func groupThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func truncateRunes(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}
