package markdown

import (
	"strconv"
	"strings"

	"coreflow/internal/tui/render"
)

// inlineStyle mirrors the style-stack entries the original renderer pushes
// per nested inline span.
type inlineStyle struct {
	bold, italic, strike bool
	headingLevel         int
}

func (s inlineStyle) apply(t render.Text) render.Text {
	if s.bold {
		t = t.WithBold()
	}
	if s.italic {
		t = t.WithItalic()
	}
	if s.strike {
		t = t.WithStrikethrough()
	}
	switch s.headingLevel {
	case 1:
		t = t.WithBold().WithColor("cyan")
	case 2:
		t = t.WithBold()
	default:
		if s.headingLevel > 0 {
			t = t.WithBold().WithDim()
		}
	}
	return t
}

// renderStyled builds the full styled Tier2/3 node tree: a column Box of
// line-level Boxes, each holding styled Text runs composed via a style
// stack that mirrors nested inline spans (bold inside a heading, italic
// inside bold, etc).
func (d *Document) renderStyled() render.Node {
	root := render.NewBox(render.FlexColumn)
	var currentLine []render.Node
	styleStack := []inlineStyle{{}}
	var linkURLs []string
	inCodeBlock := false
	codeLang := ""

	top := func() inlineStyle { return styleStack[len(styleStack)-1] }
	push := func(s inlineStyle) { styleStack = append(styleStack, s) }
	pop := func() {
		if len(styleStack) > 1 {
			styleStack = styleStack[:len(styleStack)-1]
		}
	}
	flushLine := func() {
		if len(currentLine) == 0 {
			return
		}
		line := render.NewBox(render.FlexRow)
		for _, n := range currentLine {
			line = line.Child(n)
		}
		root = root.Child(line)
		currentLine = nil
	}
	emitText := func(text string) {
		if text == "" {
			return
		}
		t := top().apply(render.NewText(text))
		currentLine = append(currentLine, t)
	}

	Tokenize(d.Content, func(e Event) bool {
		switch e.Kind {
		case EventHeadingStart:
			flushLine()
			s := top()
			s.headingLevel = e.Level
			push(s)
			marker := strings.Repeat("#", e.Level) + " "
			currentLine = append(currentLine, top().apply(render.NewText(marker)))
		case EventHeadingEnd:
			flushLine()
			pop()

		case EventParagraphStart:
		case EventParagraphEnd, EventSoftBreak:
			flushLine()

		case EventBoldStart:
			s := top()
			s.bold = true
			push(s)
		case EventBoldEnd:
			pop()
		case EventItalicStart:
			s := top()
			s.italic = true
			push(s)
		case EventItalicEnd:
			pop()
		case EventStrikeStart:
			s := top()
			s.strike = true
			push(s)
		case EventStrikeEnd:
			pop()

		case EventText:
			emitText(e.Text)
		case EventCodeInline:
			color := "cyan"
			if d.Theme == ThemeLight {
				color = "237"
			}
			currentLine = append(currentLine, render.NewText(e.Text).WithColor(color))

		case EventCodeBlockStart:
			flushLine()
			inCodeBlock = true
			codeLang = e.Lang
			if e.Lang != "" {
				root = root.Child(render.NewText("```" + e.Lang).WithDim())
			}
		case EventCodeBlockLine:
			color := "cyan"
			if d.Theme == ThemeLight {
				color = "237"
			}
			codeText := e.Text
			if d.Highlight != nil && codeLang != "" {
				if h, ok := d.Highlight(codeLang, codeText); ok {
					codeText = h
				}
			}
			root = root.Child(render.NewText("  " + codeText).WithColor(color))
		case EventCodeBlockEnd:
			inCodeBlock = false

		case EventBlockquoteStart:
			flushLine()
		case EventBlockquoteEnd:
			flushLine()

		case EventListItemStart:
			flushLine()
			marker := "- "
			if e.Ordered {
				marker = strconv.Itoa(e.Index) + ". "
			}
			currentLine = append(currentLine, render.NewText(marker))
		case EventListItemEnd:
			flushLine()

		case EventLinkStart:
			linkURLs = append(linkURLs, e.URL)
		case EventLinkEnd:
			if n := len(linkURLs); n > 0 {
				currentLine = append(currentLine, render.NewText(" ("+linkURLs[n-1]+")").WithDim())
				linkURLs = linkURLs[:n-1]
			}

		case EventRule:
			flushLine()
			root = root.Child(render.NewText("───────────────────").WithDim())
		}
		_ = inCodeBlock
		return true
	})
	flushLine()
	return root
}
