package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// SaleRecord is the journal row written for each completed sale. It keeps
// both the receipt number shown to the customer and the upstream order ID
// (when one was returned), so locally generated fallback numbers can later
// be reconciled against the server's numbering.
type SaleRecord struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SessionID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"session_id"`
	ReceiptNo     string             `gorm:"size:100;not null;index" json:"receipt_no"`
	ServerOrderID *int64             `gorm:"index" json:"server_order_id,omitempty"`
	BranchID      int64              `gorm:"not null;index" json:"branch_id"`
	Cashier       string             `gorm:"size:255" json:"cashier"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Subtotal      int64              `gorm:"default:0" json:"subtotal"` // Stored in cents
	Tax           int64              `gorm:"default:0" json:"tax"`
	Discount      int64              `gorm:"default:0" json:"discount"`
	Total         int64              `gorm:"default:0" json:"total"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Lines []SaleRecordLine `gorm:"foreignKey:SaleRecordID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale record
func (r *SaleRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleRecord model
func (SaleRecord) TableName() string {
	return "sale_records"
}

// SaleRecordLine is one journaled cart line.
type SaleRecordLine struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_record_id"`
	ProductID    int64     `gorm:"not null" json:"product_id"`
	Name         string    `gorm:"size:255" json:"name"`
	UnitPrice    int64     `gorm:"default:0" json:"unit_price"` // Stored in cents
	Quantity     int       `gorm:"default:0" json:"quantity"`
}

// BeforeCreate generates a UUID before creating a new sale record line
func (l *SaleRecordLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleRecordLine model
func (SaleRecordLine) TableName() string {
	return "sale_record_lines"
}

// NewSaleRecord builds the journal row for a completed sale.
func NewSaleRecord(sessionID uuid.UUID, r *Receipt, serverOrderID *int64) *SaleRecord {
	rec := &SaleRecord{
		SessionID:     sessionID,
		ReceiptNo:     r.ID,
		ServerOrderID: serverOrderID,
		BranchID:      r.BranchID,
		Cashier:       r.Cashier,
		PaymentMethod: r.PaymentMethod,
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Discount:      r.Discount,
		Total:         r.Total,
	}
	for _, line := range r.Lines {
		rec.Lines = append(rec.Lines, SaleRecordLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return rec
}
