// Package markdown streams a restricted CommonMark-ish dialect into the
// shared render.Node tree, at four adaptive tiers: a plain-text summary, an
// ASCII structural reconstruction, and two styled full renderings.
package markdown

// EventKind tags one token in the markdown event stream.
type EventKind int

const (
	EventHeadingStart EventKind = iota
	EventHeadingEnd
	EventParagraphStart
	EventParagraphEnd
	EventText
	EventBoldStart
	EventBoldEnd
	EventItalicStart
	EventItalicEnd
	EventStrikeStart
	EventStrikeEnd
	EventCodeInline
	EventCodeBlockStart
	EventCodeBlockLine
	EventCodeBlockEnd
	EventBlockquoteStart
	EventBlockquoteEnd
	EventListItemStart
	EventListItemEnd
	EventLinkStart
	EventLinkEnd
	EventRule
	EventSoftBreak
)

// Event is one token of the markdown stream. Fields are populated
// according to Kind; unused fields are zero.
type Event struct {
	Kind    EventKind
	Text    string // EventText, EventCodeInline, EventCodeBlockLine
	Level   int    // EventHeadingStart: 1-6
	Lang    string // EventCodeBlockStart
	URL     string // EventLinkStart
	Ordered bool   // EventListItemStart
	Index   int    // EventListItemStart, when Ordered
}
