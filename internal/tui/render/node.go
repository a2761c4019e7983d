// Package render defines the tier-agnostic node tree terminal UI components
// render into: a small set of leaf/container primitives that every render
// tier (plain-text fallback, ASCII, fully styled) can produce and that a
// terminal painter can walk uniformly.
package render

import "github.com/charmbracelet/lipgloss"

// WrapMode controls how a Text leaf's content wraps within its box.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapTruncate
)

// FlexDirection controls how a Box's children are laid out.
type FlexDirection int

const (
	FlexColumn FlexDirection = iota
	FlexRow
)

// Node is implemented by every element in the render tree: Text, Box, and
// Root.
type Node interface {
	isNode()
}

// Text is a leaf node carrying styled text content.
type Text struct {
	Content       string
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Dim           bool
	Color         string // lipgloss-compatible color spec, empty = default
	Wrap          WrapMode
}

func (Text) isNode() {}

// NewText builds a plain, unstyled Text leaf.
func NewText(content string) Text { return Text{Content: content} }

func (t Text) WithBold() Text          { t.Bold = true; return t }
func (t Text) WithItalic() Text        { t.Italic = true; return t }
func (t Text) WithStrikethrough() Text { t.Strikethrough = true; return t }
func (t Text) WithUnderline() Text     { t.Underline = true; return t }
func (t Text) WithDim() Text           { t.Dim = true; return t }
func (t Text) WithColor(c string) Text { t.Color = c; return t }
func (t Text) WithWrap(w WrapMode) Text { t.Wrap = w; return t }

// Style builds the lipgloss.Style this Text leaf's flags describe, the
// single place styling is translated into the terminal-styling library.
func (t Text) Style() lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.Bold {
		s = s.Bold(true)
	}
	if t.Italic {
		s = s.Italic(true)
	}
	if t.Strikethrough {
		s = s.Strikethrough(true)
	}
	if t.Underline {
		s = s.Underline(true)
	}
	if t.Dim {
		s = s.Faint(true)
	}
	if t.Color != "" {
		s = s.Foreground(lipgloss.Color(t.Color))
	}
	return s
}

// Render returns this Text leaf's content with its style applied.
func (t Text) Render() string {
	return t.Style().Render(t.Content)
}

// Box is a container node laying its children out in a single flex
// direction.
type Box struct {
	Direction FlexDirection
	Children  []Node
}

func (Box) isNode() {}

// NewBox builds an empty Box with the given flex direction.
func NewBox(dir FlexDirection) Box { return Box{Direction: dir} }

// Child appends a child node and returns the Box for chaining.
func (b Box) Child(n Node) Box {
	b.Children = append(b.Children, n)
	return b
}

// Root wraps a single top-level node, the entry point render tiers hand
// back to a painter.
type Root struct {
	Child Node
}

func (Root) isNode() {}

// NewRoot wraps n as the document root.
func NewRoot(n Node) Root { return Root{Child: n} }
