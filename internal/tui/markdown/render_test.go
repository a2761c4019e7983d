package markdown

import (
	"strings"
	"testing"

	"coreflow/internal/tui/render"
)

func countTexts(n render.Node) []render.Text {
	switch v := n.(type) {
	case render.Text:
		return []render.Text{v}
	case render.Box:
		var out []render.Text
		for _, c := range v.Children {
			out = append(out, countTexts(c)...)
		}
		return out
	case render.Root:
		return countTexts(v.Child)
	default:
		return nil
	}
}

func TestRenderForTier_Tier0IsSummaryOnly(t *testing.T) {
	doc := NewDocument("# Title\n\nSome **bold** text with `code` and a list:\n\n- one\n- two\n")
	root, err := doc.RenderForTier(Tier0Fallback)
	if err != nil {
		t.Fatalf("RenderForTier: %v", err)
	}
	texts := countTexts(root)
	var joined strings.Builder
	for _, tx := range texts {
		joined.WriteString(tx.Content + " ")
	}
	got := joined.String()
	if !strings.Contains(got, "Markdown") {
		t.Errorf("expected tier0 summary to name the component, got %q", got)
	}
	if strings.Contains(got, "bold") {
		t.Errorf("expected tier0 to contain only summary stats, not content, got %q", got)
	}
	if !strings.Contains(got, "headings=yes") || !strings.Contains(got, "lists=yes") || !strings.Contains(got, "code=yes") {
		t.Errorf("expected feature flags in tier0 summary, got %q", got)
	}
}

func TestRenderForTier_Tier1PreservesStructureNoColor(t *testing.T) {
	doc := NewDocument("# Heading\n\nSome *italic* text.\n")
	root, err := doc.RenderForTier(Tier1ASCII)
	if err != nil {
		t.Fatalf("RenderForTier: %v", err)
	}
	texts := countTexts(root)
	for _, tx := range texts {
		if tx.Bold || tx.Italic || tx.Color != "" {
			t.Fatalf("expected tier1 output to carry no styling, got %+v", tx)
		}
	}
	var sawHeadingMarker bool
	for _, tx := range texts {
		if strings.HasPrefix(tx.Content, "# Heading") {
			sawHeadingMarker = true
		}
	}
	if !sawHeadingMarker {
		t.Errorf("expected the heading marker preserved as plain text, got %+v", texts)
	}
}

func TestRenderForTier_Tier2And3ApplyStyling(t *testing.T) {
	doc := NewDocument("**bold text**")
	root2, err := doc.RenderForTier(Tier2Retained)
	if err != nil {
		t.Fatalf("RenderForTier(Tier2): %v", err)
	}
	root3, err := doc.RenderForTier(Tier3GPU)
	if err != nil {
		t.Fatalf("RenderForTier(Tier3): %v", err)
	}

	foundBold := false
	for _, tx := range countTexts(root2) {
		if tx.Bold {
			foundBold = true
		}
	}
	if !foundBold {
		t.Errorf("expected a bold Text leaf in tier2 output")
	}

	if len(countTexts(root3)) == 0 {
		t.Errorf("expected tier3 output to render content")
	}
}

func TestRenderForTier_NeverPanics(t *testing.T) {
	pathological := []string{
		"",
		"```unterminated code fence\nstill going",
		"**unterminated bold",
		"[text](unterminated",
		strings.Repeat("*", 5000),
	}
	for _, content := range pathological {
		doc := NewDocument(content)
		for tier := Tier0Fallback; tier <= Tier3GPU; tier++ {
			if _, err := doc.RenderForTier(tier); err != nil {
				t.Logf("tier %d recovered from panic on %q: %v", tier, content, err)
			}
		}
	}
}

func TestTokenize_DoesNotMaterializeFullEventList(t *testing.T) {
	content := "# H\n\npara one\n\npara two\n"
	count := 0
	stoppedEarly := false
	Tokenize(content, func(e Event) bool {
		count++
		if count == 2 {
			stoppedEarly = true
			return false
		}
		return true
	})
	if !stoppedEarly {
		t.Fatalf("expected Tokenize to honor an early stop from yield")
	}
	if count != 2 {
		t.Fatalf("expected exactly 2 events emitted before stopping, got %d", count)
	}
}
