package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"coreflow/internal/tui/render"
)

// GlamourBackend renders Tier3 through glamour's full CommonMark
// implementation instead of this package's own node tree, for terminals
// that want glamour's wider Markdown coverage (tables, nested lists) at
// the top tier. It falls back to the node-tree renderer on error.
type GlamourBackend struct {
	renderer *glamour.TermRenderer
}

// NewGlamourBackend builds a backend using glamour's auto-detected style.
func NewGlamourBackend() (*GlamourBackend, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, err
	}
	return &GlamourBackend{renderer: r}, nil
}

// RenderTier3 renders content via glamour, wrapping the result as a single
// pre-rendered Text leaf since glamour owns its own layout. If glamour
// fails, it returns the node-tree rendering of content along with
// glamour's error.
func (g *GlamourBackend) RenderTier3(content string) (render.Root, error) {
	out, err := g.renderer.Render(content)
	if err != nil {
		return render.NewRoot(NewDocument(content).renderStyled()), err
	}
	return render.NewRoot(render.NewText(strings.TrimRight(out, "\n"))), nil
}
