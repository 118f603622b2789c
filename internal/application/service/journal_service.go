package service

import (
	"context"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
)

// JournalService reads the durable sale journal. Unlike the in-memory
// receipt log it survives restarts, and it is the place where receipts
// with locally generated numbers wait for reconciliation.
type JournalService struct {
	journal repository.ReceiptJournalRepository // nil when journaling is disabled
}

// NewJournalService creates a new journal service
func NewJournalService(journal repository.ReceiptJournalRepository) *JournalService {
	return &JournalService{journal: journal}
}

// Enabled reports whether a journal backend is configured.
func (s *JournalService) Enabled() bool {
	return s.journal != nil
}

// BySession returns the journaled sales of one session, oldest first.
func (s *JournalService) BySession(ctx context.Context, sess *Session) ([]entity.SaleRecord, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.ListBySession(ctx, sess.Context().SessionID)
}

// Unreconciled returns every journaled sale the upstream never assigned an
// order ID to, across all sessions.
func (s *JournalService) Unreconciled(ctx context.Context) ([]entity.SaleRecord, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.ListUnreconciled(ctx)
}
