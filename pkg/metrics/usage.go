package metrics

// TokenUsage captures the estimated model input size of a request.
type TokenUsage struct {
	PromptTokens int `json:"promptTokens"`
	ContextLimit int `json:"contextLimit,omitempty"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0
}

// ExceedsContext reports whether the prompt will be truncated by the model.
func (u TokenUsage) ExceedsContext() bool {
	return u.ContextLimit > 0 && u.PromptTokens > u.ContextLimit
}
