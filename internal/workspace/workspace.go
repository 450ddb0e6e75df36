// Package workspace tracks the floating panels a user has open in the
// desktop-like case UI. It replaces the browser globals the original
// front end used for panel opening with an injected controller, and keeps
// panel payloads consistent by listening for case update events.
package workspace

import (
	"sync"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/domain"
)

// Kind classifies an open panel
type Kind string

const (
	KindCase     Kind = "case"
	KindCustomer Kind = "customer"
	KindDocument Kind = "document"
)

// Panel is one open floating panel descriptor
type Panel struct {
	ID        uuid.UUID           `json:"id"`
	Kind      Kind                `json:"kind"`
	Minimized bool                `json:"minimized"`
	Case      *domain.CaseDTO     `json:"case,omitempty"`
	Customer  *domain.CustomerDTO `json:"customer,omitempty"`
	IsEdit    bool                `json:"isEdit,omitempty"`
}

// Controller is the panel-opening capability handed to views. Nested views
// call this interface instead of reaching for shared global state.
type Controller interface {
	OpenCasePanel(c domain.CaseDTO) Panel
	OpenCustomerPanel(customer *domain.CustomerDTO, isEdit bool) Panel
	OpenDocumentPanel(c domain.CaseDTO) Panel
}

// Workspace is the ordered set of panels one user has open. Order is append
// order; reopening a case moves its panel to the end.
type Workspace struct {
	mu     sync.Mutex
	panels []Panel
}

// New creates an empty workspace
func New() *Workspace {
	return &Workspace{}
}

// OpenCasePanel opens a panel for a case. At most one case panel exists per
// case id: reopening an already open case moves that panel to the end of
// the order, refreshes its payload and un-minimizes it.
func (w *Workspace) OpenCasePanel(c domain.CaseDTO) Panel {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, p := range w.panels {
		if p.Kind == KindCase && p.Case != nil && p.Case.ID == c.ID {
			p.Case = &c
			p.Minimized = false
			w.panels = append(append(w.panels[:i:i], w.panels[i+1:]...), p)
			return p
		}
	}

	panel := Panel{
		ID:   uuid.New(),
		Kind: KindCase,
		Case: &c,
	}
	w.panels = append(w.panels, panel)
	return panel
}

// OpenCustomerPanel opens a customer form panel. Every call creates a new
// instance; there is no dedup for creation panels.
func (w *Workspace) OpenCustomerPanel(customer *domain.CustomerDTO, isEdit bool) Panel {
	w.mu.Lock()
	defer w.mu.Unlock()

	panel := Panel{
		ID:       uuid.New(),
		Kind:     KindCustomer,
		Customer: customer,
		IsEdit:   isEdit,
	}
	w.panels = append(w.panels, panel)
	return panel
}

// OpenDocumentPanel opens a document creation panel bound to a case. Every
// call creates a new instance.
func (w *Workspace) OpenDocumentPanel(c domain.CaseDTO) Panel {
	w.mu.Lock()
	defer w.mu.Unlock()

	panel := Panel{
		ID:   uuid.New(),
		Kind: KindDocument,
		Case: &c,
	}
	w.panels = append(w.panels, panel)
	return panel
}

// Close removes the panel with the given id. Returns false when no panel
// matches.
func (w *Workspace) Close(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, p := range w.panels {
		if p.ID == id {
			w.panels = append(w.panels[:i], w.panels[i+1:]...)
			return true
		}
	}
	return false
}

// SetMinimized sets the minimized flag on a panel. Returns false when no
// panel matches.
func (w *Workspace) SetMinimized(id uuid.UUID, minimized bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.panels {
		if w.panels[i].ID == id {
			w.panels[i].Minimized = minimized
			return true
		}
	}
	return false
}

// Panels returns the open panels in order
func (w *Workspace) Panels() []Panel {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Panel, len(w.panels))
	copy(out, w.panels)
	return out
}

// ApplyCaseUpdate patches the payload of every open case panel bound to the
// updated case. Panels for other cases are untouched. Returns the number of
// panels patched.
func (w *Workspace) ApplyCaseUpdate(c domain.CaseDTO) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	patched := 0
	for i := range w.panels {
		if w.panels[i].Kind == KindCase && w.panels[i].Case != nil && w.panels[i].Case.ID == c.ID {
			caseCopy := c
			w.panels[i].Case = &caseCopy
			patched++
		}
	}
	return patched
}

var _ Controller = (*Workspace)(nil)
