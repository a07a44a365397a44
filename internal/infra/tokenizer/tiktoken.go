package tokenizer

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// BARTEncoding is the byte-level BPE vocabulary shared by GPT-2 and BART.
const BARTEncoding = "r50k_base"

// Counter estimates token counts with a tiktoken encoding.
type Counter struct {
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// NewCounter loads the named encoding. Loading may fetch the vocabulary on
// first use, so callers should treat an error as "estimation unavailable".
func NewCounter(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = BARTEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.enc.Encode(text, nil, nil)), nil
}
