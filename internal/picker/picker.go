// Package picker implements the search-select control used to bind
// foreign-key fields: type to filter a candidate list, pick one with the
// keyboard, or create a new record from the typed text when nothing
// matches. It holds only selection state; candidates are supplied by the
// caller and the package performs no I/O.
package picker

import (
	"strings"

	"github.com/google/uuid"
)

// Candidate is one selectable item
type Candidate struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Subtitle string    `json:"subtitle,omitempty"`
}

// Selection is the outcome of a pick. Candidate is nil when the text was
// typed freely without matching any candidate; callers use that to
// distinguish "picked existing" from "typed free text".
type Selection struct {
	Text      string
	Candidate *Candidate
}

// Key identifies a keyboard event handled by the picker
type Key int

const (
	KeyArrowDown Key = iota
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// Picker is the state machine behind one search-select field
type Picker struct {
	candidates  []Candidate
	query       string
	open        bool
	highlighted int

	onSelect    func(Selection)
	onCreateNew func(text string)
}

// New creates a picker over a candidate list. The highlight cursor starts
// unset.
func New(candidates []Candidate) *Picker {
	return &Picker{
		candidates:  candidates,
		highlighted: -1,
	}
}

// OnSelect registers the selection callback
func (p *Picker) OnSelect(fn func(Selection)) {
	p.onSelect = fn
}

// OnCreateNew registers the handler invoked when Enter is pressed with a
// non-empty query that matches no candidate. Without a handler the key
// press is ignored.
func (p *Picker) OnCreateNew(fn func(text string)) {
	p.onCreateNew = fn
}

// SetCandidates replaces the candidate list and resets the highlight cursor
func (p *Picker) SetCandidates(candidates []Candidate) {
	p.candidates = candidates
	p.highlighted = -1
}

// SetQuery updates the typed text, opens the dropdown and resets the
// highlight cursor
func (p *Picker) SetQuery(query string) {
	p.query = query
	p.open = true
	p.highlighted = -1
}

// Query returns the current typed text
func (p *Picker) Query() string { return p.query }

// IsOpen reports whether the dropdown is showing
func (p *Picker) IsOpen() bool { return p.open }

// Highlighted returns the highlight cursor index into Filtered, or -1
func (p *Picker) Highlighted() int { return p.highlighted }

// Focus opens the dropdown without changing the query
func (p *Picker) Focus() {
	p.open = true
}

// Close hides the dropdown without selecting, as on an outside click
func (p *Picker) Close() {
	p.open = false
	p.highlighted = -1
}

// Filtered returns the candidates whose label or subtitle contains the
// typed text case-insensitively. Substring match, not fuzzy.
func (p *Picker) Filtered() []Candidate {
	if p.query == "" {
		out := make([]Candidate, len(p.candidates))
		copy(out, p.candidates)
		return out
	}
	needle := strings.ToLower(p.query)
	var out []Candidate
	for _, c := range p.candidates {
		if strings.Contains(strings.ToLower(c.Label), needle) ||
			strings.Contains(strings.ToLower(c.Subtitle), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Select picks a candidate directly, as on a mouse click
func (p *Picker) Select(c Candidate) {
	p.query = c.Label
	p.open = false
	p.highlighted = -1
	if p.onSelect != nil {
		p.onSelect(Selection{Text: c.Label, Candidate: &c})
	}
}

// HandleKey applies one keyboard event. Arrow keys clamp the highlight
// cursor at the list ends with no wraparound; Enter selects the
// highlighted candidate or invokes the create handler; Escape closes.
func (p *Picker) HandleKey(key Key) {
	switch key {
	case KeyArrowDown:
		if !p.open {
			p.open = true
			return
		}
		if p.highlighted < len(p.Filtered())-1 {
			p.highlighted++
		}
	case KeyArrowUp:
		if p.highlighted > 0 {
			p.highlighted--
		}
	case KeyEnter:
		filtered := p.Filtered()
		if p.highlighted >= 0 && p.highlighted < len(filtered) {
			p.Select(filtered[p.highlighted])
			return
		}
		if p.open && p.query != "" && len(filtered) == 0 && p.onCreateNew != nil {
			text := p.query
			p.open = false
			p.highlighted = -1
			p.onCreateNew(text)
		}
	case KeyEscape:
		p.Close()
	}
}
