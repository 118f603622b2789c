package service

import (
	"fmt"

	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
	"github.com/kirekcahs/codebrew-pos/pkg/printer"
)

// ReceiptService reads the session's append-only receipt log and drives
// the thermal printer. The log is scoped to the in-memory session; there
// is no removal operation.
type ReceiptService struct {
	printer printer.Printer
	pcfg    config.PrinterConfig
	store   string
}

// NewReceiptService creates a new receipt service
func NewReceiptService(p printer.Printer, pcfg config.PrinterConfig, storeName string) *ReceiptService {
	return &ReceiptService{printer: p, pcfg: pcfg, store: storeName}
}

// All returns the session's receipts in completion order, most recent
// last.
func (s *ReceiptService) All(sess *Session) []entity.Receipt {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]entity.Receipt, len(sess.receipts))
	copy(out, sess.receipts)
	return out
}

// Latest returns the most recently completed receipt.
func (s *ReceiptService) Latest(sess *Session) (*entity.Receipt, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if len(sess.receipts) == 0 {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	r := sess.receipts[len(sess.receipts)-1]
	return &r, nil
}

// SalesSummary aggregates the session's completed sales.
type SalesSummary struct {
	SaleCount  int                `json:"sale_count"`
	ItemsSold  int                `json:"items_sold"`
	GrossTotal float64            `json:"gross_total"`
	ByMethod   map[string]float64 `json:"by_payment_method"`
}

// Summary derives the session sales report from the receipt log.
func (s *ReceiptService) Summary(sess *Session) SalesSummary {
	receipts := s.All(sess)

	summary := SalesSummary{ByMethod: make(map[string]float64)}
	var gross int64
	byMethod := make(map[string]int64)
	for _, r := range receipts {
		summary.SaleCount++
		for _, line := range r.Lines {
			summary.ItemsSold += line.Quantity
		}
		gross += r.Total
		byMethod[r.PaymentMethod.String()] += r.Total
	}
	summary.GrossTotal = entity.Decimal(gross)
	for method, cents := range byMethod {
		summary.ByMethod[method] = entity.Decimal(cents)
	}
	return summary
}

// PrinterStatus reports the thermal printer configuration and reachability.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status returns printer connection status.
func (s *ReceiptService) Status() PrinterStatus {
	return PrinterStatus{
		Configured: s.pcfg.Type != "none" && s.pcfg.Type != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.pcfg.Type,
	}
}

// PrintLatest sends the most recent receipt to the thermal printer and
// returns it so the handler can show it regardless of printer hardware.
func (s *ReceiptService) PrintLatest(sess *Session) (*entity.Receipt, error) {
	receipt, err := s.Latest(sess)
	if err != nil {
		return nil, err
	}

	sctx := sess.Context()
	data := s.format(receipt, sctx.BranchName)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// format renders a receipt as ESC/POS bytes.
func (s *ReceiptService) format(r *entity.Receipt, branchName string) []byte {
	doc := printer.NewDocument(s.pcfg.Width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.store).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if branchName != "" {
		doc.Text(branchName)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.ID).
		KeyValue("Date:", r.CreatedAt.Format("2006-01-02 15:04"))
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	doc.KeyValue("Payment:", r.PaymentMethod.String())

	doc.Separator('-')

	for _, line := range r.Lines {
		doc.ItemLine(line.Quantity, line.Name, fmt.Sprintf("%.2f", entity.Decimal(line.LineTotal())))
		if line.Quantity > 1 {
			doc.TextF("  @ %.2f each", entity.Decimal(line.UnitPrice))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", entity.Decimal(r.Subtotal)))
	doc.KeyValue("Tax:", fmt.Sprintf("%.2f", entity.Decimal(r.Tax)))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", fmt.Sprintf("-%.2f", entity.Decimal(r.Discount)))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", entity.Decimal(r.Total))).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you, come again!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
