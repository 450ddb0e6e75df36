package service

import (
	"context"
	"fmt"
	"time"

	"github.com/harborline/caseflow-api/internal/repository"
	"go.uber.org/zap"
)

// CaseNumberPrefix is the sequence prefix shared by quotations and bookings.
// Both case types draw from the same counter per year so numbers stay
// globally unique.
const CaseNumberPrefix = "CASE"

// NumberSequenceService generates unique, formatted case numbers.
//
// Format: {PREFIX}-{YEAR}-{SEQUENCE}
// Example: CASE-2026-00042
type NumberSequenceService struct {
	repo   *repository.NumberSequenceRepository
	logger *zap.Logger
}

// NewNumberSequenceService creates a new NumberSequenceService
func NewNumberSequenceService(
	repo *repository.NumberSequenceRepository,
	logger *zap.Logger,
) *NumberSequenceService {
	return &NumberSequenceService{
		repo:   repo,
		logger: logger,
	}
}

// GenerateCaseNumber generates a unique case number. Called once at case
// creation; the number is immutable afterwards.
func (s *NumberSequenceService) GenerateCaseNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()

	nextSeq, err := s.repo.GetNextNumber(ctx, CaseNumberPrefix, year)
	if err != nil {
		s.logger.Error("failed to get next sequence number",
			zap.String("prefix", CaseNumberPrefix),
			zap.Int("year", year),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate case number: %w", err)
	}

	number := fmt.Sprintf("%s-%d-%05d", CaseNumberPrefix, year, nextSeq)

	s.logger.Info("generated case number",
		zap.String("number", number),
		zap.Int("year", year),
		zap.Int("sequence", nextSeq))

	return number, nil
}

// GetCurrentSequence returns the current sequence value for a year without
// incrementing it. Returns 0 if no sequence exists.
func (s *NumberSequenceService) GetCurrentSequence(ctx context.Context, year int) (int, error) {
	return s.repo.GetCurrentNumber(ctx, CaseNumberPrefix, year)
}

// InitializeSequence sets the sequence to a specific value. Useful for data
// migrations so the counter accounts for existing numbered cases. The value
// should be the LAST USED sequence number; it is never lowered.
func (s *NumberSequenceService) InitializeSequence(ctx context.Context, year int, value int) error {
	return s.repo.SetNumber(ctx, CaseNumberPrefix, year, value)
}
