package contextwindow

import (
	"context"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenTokenizer adapts pkoukk/tiktoken-go's BPE encoder to the
// Tokenizer interface, resolving a model name to its encoding the same way
// the teacher's analysis engine does: try the model's own encoding, fall
// back to cl100k_base for anything tiktoken-go doesn't recognize (local
// models, unreleased model names, etc).
type TiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenTokenizer resolves model to a tiktoken encoding.
func NewTiktokenTokenizer(model string) (*TiktokenTokenizer, error) {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, err
		}
	}
	return &TiktokenTokenizer{enc: enc}, nil
}

// EncodeWithSpecialTokens implements Tokenizer.
func (t *TiktokenTokenizer) EncodeWithSpecialTokens(_ context.Context, text string) (int, error) {
	return len(t.enc.Encode(text, nil, nil)), nil
}
