package workspace_test

import (
	"testing"

	"github.com/harborline/caseflow-api/internal/bus"
	"github.com/harborline/caseflow-api/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManager_ForUserIsStable(t *testing.T) {
	m := workspace.NewManager(bus.New(zap.NewNop()), zap.NewNop())
	defer m.Close()

	ws := m.ForUser("alice")
	assert.Same(t, ws, m.ForUser("alice"))
	assert.NotSame(t, ws, m.ForUser("bob"))
}

func TestManager_PatchesAllUserWorkspacesOnCaseUpdate(t *testing.T) {
	b := bus.New(zap.NewNop())
	m := workspace.NewManager(b, zap.NewNop())
	defer m.Close()

	c := caseDTO("CASE-2026-00010")
	m.ForUser("alice").OpenCasePanel(c)
	m.ForUser("bob").OpenCasePanel(c)

	c.Carrier = "Hapag-Lloyd"
	b.Publish(bus.CaseUpdated{Case: c})

	for _, user := range []string{"alice", "bob"} {
		panels := m.ForUser(user).Panels()
		require.Len(t, panels, 1)
		assert.Equal(t, "Hapag-Lloyd", panels[0].Case.Carrier)
	}
}

func TestManager_CloseStopsPatching(t *testing.T) {
	b := bus.New(zap.NewNop())
	m := workspace.NewManager(b, zap.NewNop())

	c := caseDTO("CASE-2026-00011")
	m.ForUser("alice").OpenCasePanel(c)

	m.Close()

	c.Carrier = "MSC"
	b.Publish(bus.CaseUpdated{Case: c})

	panels := m.ForUser("alice").Panels()
	require.Len(t, panels, 1)
	assert.Empty(t, panels[0].Case.Carrier)
}
