package contextwindow

import (
	"context"
	"testing"
)

func TestTiktokenTokenizer_EncodesKnownAndUnknownModels(t *testing.T) {
	for _, model := range []string{"gpt-4o", "totally-unknown-model"} {
		tok, err := NewTiktokenTokenizer(model)
		if err != nil {
			t.Fatalf("NewTiktokenTokenizer(%q): %v", model, err)
		}
		n, err := tok.EncodeWithSpecialTokens(context.Background(), "hello world")
		if err != nil {
			t.Fatalf("EncodeWithSpecialTokens: %v", err)
		}
		if n <= 0 {
			t.Fatalf("expected a positive token count for model %q, got %d", model, n)
		}
	}
}
