package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
)

// ReceiptJournalRepository persists completed sales locally so that
// receipts with fallback numbers can be reconciled against the upstream
// order numbering later. The in-memory session log stays authoritative;
// journal writes are best-effort.
type ReceiptJournalRepository interface {
	Append(ctx context.Context, record *entity.SaleRecord) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.SaleRecord, error)
	// ListUnreconciled returns records the upstream never assigned an
	// order ID to.
	ListUnreconciled(ctx context.Context) ([]entity.SaleRecord, error)
}
