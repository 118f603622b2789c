package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// ReceiptHandler serves the session receipt log
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List returns every receipt issued this session, oldest first
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	receipts := h.receiptService.All(sess)
	response.OK(c, "Receipts retrieved", gin.H{
		"receipts": receipts,
		"count":    len(receipts),
	})
}

// Latest returns the most recent receipt
// @Summary Latest receipt
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/latest [get]
func (h *ReceiptHandler) Latest(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	receipt, err := h.receiptService.Latest(sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved", gin.H{"receipt": receipt})
}

// Summary aggregates the session's sales
// @Summary Session sales summary
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /receipts/summary [get]
func (h *ReceiptHandler) Summary(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	response.OK(c, "Summary retrieved", h.receiptService.Summary(sess))
}

// PrintLatest renders the most recent receipt to the configured printer
// @Summary Print latest receipt
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /receipts/latest/print [post]
func (h *ReceiptHandler) PrintLatest(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	receipt, err := h.receiptService.PrintLatest(sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{
		"receipt": receipt,
		"printer": h.receiptService.Status(),
	})
}

// PrinterStatus reports printer availability for the register UI
// @Summary Printer status
// @Tags receipts
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /printer/status [get]
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	response.OK(c, "Printer status", h.receiptService.Status())
}
