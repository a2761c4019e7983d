package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"coreflow/internal/tui/render"
)

// Tier is the render fidelity a terminal can support, lowest to highest.
type Tier int

const (
	Tier0Fallback Tier = iota
	Tier1ASCII
	Tier2Retained
	Tier3GPU
)

// CodeTheme selects the color used for code block text when no external
// syntax highlighter is wired in.
type CodeTheme int

const (
	ThemeDark CodeTheme = iota
	ThemeLight
)

// SyntaxHighlighter optionally colors a code block's lines given its
// fenced language tag. Returning ok=false falls back to the plain
// CodeTheme color.
type SyntaxHighlighter func(lang, code string) (highlighted string, ok bool)

// Document renders markdown content across all four tiers.
type Document struct {
	Content   string
	Theme     CodeTheme
	Highlight SyntaxHighlighter // optional, e.g. a glamour-backed adapter
}

// NewDocument builds a Document with default styling.
func NewDocument(content string) *Document {
	return &Document{Content: content, Theme: ThemeDark}
}

// RenderForTier dispatches to the tier-appropriate renderer. It never
// panics: a malformed or pathological input degrades to plain text rather
// than crashing the caller's render loop.
func (d *Document) RenderForTier(tier Tier) (node render.Root, err error) {
	defer func() {
		if r := recover(); r != nil {
			node = render.NewRoot(render.NewText(d.Content))
			err = fmt.Errorf("markdown: render panic recovered: %v", r)
		}
	}()

	switch tier {
	case Tier0Fallback:
		return render.NewRoot(d.renderTier0()), nil
	case Tier1ASCII:
		return render.NewRoot(d.renderTier1()), nil
	default:
		return render.NewRoot(d.renderStyled()), nil
	}
}

// renderTier0 produces a single summary node: word/line counts and
// feature flags, never the rendered content itself.
func (d *Document) renderTier0() render.Node {
	words := len(strings.Fields(d.Content))
	lines := strings.Count(d.Content, "\n") + 1
	hasCode := strings.Contains(d.Content, "```") || strings.Contains(d.Content, "`")
	hasHeadings := false
	hasLists := false
	for _, line := range strings.Split(d.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			hasHeadings = true
		}
		if _, ok := unorderedListItem(trimmed); ok {
			hasLists = true
		}
		if _, _, _, ok := orderedListItem(trimmed); ok {
			hasLists = true
		}
	}

	box := render.NewBox(render.FlexColumn)
	box = box.Child(render.NewText("Markdown"))
	box = box.Child(render.NewText("words=" + strconv.Itoa(words)))
	box = box.Child(render.NewText("lines=" + strconv.Itoa(lines)))
	if hasHeadings {
		box = box.Child(render.NewText("headings=yes"))
	}
	if hasCode {
		box = box.Child(render.NewText("code=yes"))
	}
	if hasLists {
		box = box.Child(render.NewText("lists=yes"))
	}
	return box
}

// renderTier1 reconstructs the document as plain ASCII lines, preserving
// structural markers (#, >, -, 1., fences) but no colors or styling.
func (d *Document) renderTier1() render.Node {
	box := render.NewBox(render.FlexColumn)
	var line strings.Builder
	var prefix string
	var linkURLs []string

	flush := func() {
		box = box.Child(render.NewText(prefix + line.String()))
		line.Reset()
	}

	Tokenize(d.Content, func(e Event) bool {
		switch e.Kind {
		case EventHeadingStart:
			prefix = strings.Repeat("#", e.Level) + " "
		case EventHeadingEnd:
			flush()
			prefix = ""
		case EventParagraphEnd, EventSoftBreak:
			flush()
		case EventBlockquoteStart:
			prefix = "> "
		case EventBlockquoteEnd:
			prefix = ""
		case EventListItemStart:
			flush()
			if e.Ordered {
				prefix = strconv.Itoa(e.Index) + ". "
			} else {
				prefix = "- "
			}
		case EventListItemEnd:
			flush()
			prefix = ""
		case EventCodeBlockStart:
			flush()
			box = box.Child(render.NewText("```" + e.Lang))
		case EventCodeBlockLine:
			box = box.Child(render.NewText(e.Text))
		case EventCodeBlockEnd:
			box = box.Child(render.NewText("```"))
		case EventRule:
			flush()
			box = box.Child(render.NewText("---"))
		case EventText:
			line.WriteString(e.Text)
		case EventCodeInline:
			line.WriteString("`" + e.Text + "`")
		case EventBoldStart:
			line.WriteString("**")
		case EventBoldEnd:
			line.WriteString("**")
		case EventItalicStart, EventItalicEnd:
			line.WriteString("*")
		case EventStrikeStart, EventStrikeEnd:
			line.WriteString("~~")
		case EventLinkStart:
			linkURLs = append(linkURLs, e.URL)
		case EventLinkEnd:
			if n := len(linkURLs); n > 0 {
				line.WriteString(" (" + linkURLs[n-1] + ")")
				linkURLs = linkURLs[:n-1]
			}
		}
		return true
	})
	flush()
	return box
}
