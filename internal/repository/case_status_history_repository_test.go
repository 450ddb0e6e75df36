package repository_test

import (
	"context"
	"testing"

	"github.com/harborline/caseflow-api/internal/domain"
	"github.com/harborline/caseflow-api/internal/repository"
	"github.com/harborline/caseflow-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseStatusHistoryRepository_NewestFirstOnRapidTransitions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseStatusHistoryRepository(db)
	ctx := context.Background()

	c := &domain.Case{CaseNumber: "CASE-2026-00001", CaseType: domain.CaseTypeBooking, Direction: domain.DirectionExport, Status: domain.CaseStatusDraft}
	require.NoError(t, db.Create(c).Error)

	// Back-to-back transitions land well inside one second; ordering must
	// still reflect insertion order, newest first
	draft := domain.CaseStatusDraft
	active := domain.CaseStatusActive
	require.NoError(t, repo.RecordTransition(ctx, c.ID, nil, draft, "Test User", "Case created"))
	require.NoError(t, repo.RecordTransition(ctx, c.ID, &draft, active, "Test User", "Approved"))
	require.NoError(t, repo.RecordTransition(ctx, c.ID, &active, domain.CaseStatusOnHold, "Test User", "Awaiting payment"))

	history, err := repo.GetByCaseID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.CaseStatusOnHold, history[0].NewStatus)
	assert.Equal(t, domain.CaseStatusActive, history[1].NewStatus)
	assert.Equal(t, domain.CaseStatusDraft, history[2].NewStatus)

	latest, err := repo.GetLatestByCaseID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CaseStatusOnHold, latest.NewStatus)
	assert.Equal(t, "Awaiting payment", latest.ChangeReason)
}

func TestCaseStatusHistoryRepository_StampsTransitionTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCaseStatusHistoryRepository(db)
	ctx := context.Background()

	c := &domain.Case{CaseNumber: "CASE-2026-00002", CaseType: domain.CaseTypeBooking, Direction: domain.DirectionExport, Status: domain.CaseStatusDraft}
	require.NoError(t, db.Create(c).Error)

	require.NoError(t, repo.RecordTransition(ctx, c.ID, nil, domain.CaseStatusDraft, "Test User", "Case created"))
	require.NoError(t, repo.RecordTransition(ctx, c.ID, nil, domain.CaseStatusActive, "Test User", "Approved"))

	history, err := repo.GetByCaseID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	// Sub-second precision distinguishes the two entries
	assert.True(t, history[0].CreatedAt.After(history[1].CreatedAt))
}
