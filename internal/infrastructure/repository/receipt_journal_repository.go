package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
)

// receiptJournalRepository persists sale records in the local postgres
// journal.
type receiptJournalRepository struct {
	db *gorm.DB
}

// NewReceiptJournalRepository creates a new journal repository
func NewReceiptJournalRepository(db *gorm.DB) repository.ReceiptJournalRepository {
	return &receiptJournalRepository{db: db}
}

func (r *receiptJournalRepository) Append(ctx context.Context, record *entity.SaleRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *receiptJournalRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]entity.SaleRecord, error) {
	var records []entity.SaleRecord
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *receiptJournalRepository) ListUnreconciled(ctx context.Context) ([]entity.SaleRecord, error) {
	var records []entity.SaleRecord
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("server_order_id IS NULL").
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}
