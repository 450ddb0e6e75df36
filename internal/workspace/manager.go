package workspace

import (
	"sync"

	"github.com/harborline/caseflow-api/internal/bus"
	"go.uber.org/zap"
)

// Manager owns one workspace per user and keeps all of them consistent by
// subscribing to case update events on the bus.
type Manager struct {
	mu          sync.Mutex
	workspaces  map[string]*Workspace
	logger      *zap.Logger
	unsubscribe func()
}

// NewManager creates a workspace manager wired to the event bus
func NewManager(b *bus.Bus, logger *zap.Logger) *Manager {
	m := &Manager{
		workspaces: make(map[string]*Workspace),
		logger:     logger,
	}
	m.unsubscribe = b.SubscribeCaseUpdated(func(ev bus.CaseUpdated) {
		m.applyCaseUpdate(ev)
	})
	return m
}

// ForUser returns the workspace for a user, creating it on first access
func (m *Manager) ForUser(userID string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws, ok := m.workspaces[userID]
	if !ok {
		ws = New()
		m.workspaces[userID] = ws
	}
	return ws
}

// Close detaches the manager from the bus
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Manager) applyCaseUpdate(ev bus.CaseUpdated) {
	m.mu.Lock()
	workspaces := make([]*Workspace, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		workspaces = append(workspaces, ws)
	}
	m.mu.Unlock()

	patched := 0
	for _, ws := range workspaces {
		patched += ws.ApplyCaseUpdate(ev.Case)
	}
	if patched > 0 {
		m.logger.Debug("patched open case panels",
			zap.String("case_number", ev.Case.CaseNumber),
			zap.Int("panels", patched))
	}
}
