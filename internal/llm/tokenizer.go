// ABOUTME: Token counting for the embedding model's context-length check
// ABOUTME: Wraps the cl100k_base tokenizer used by text-embedding-3-small
package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens with the cl100k_base encoding.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTokenizer loads the cl100k_base encoding.
func NewTokenizer() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("loading cl100k_base tokenizer: %w", err)
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
