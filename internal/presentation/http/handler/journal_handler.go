package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// JournalHandler serves the durable sale journal
type JournalHandler struct {
	journalService *service.JournalService
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalService *service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// List returns the session's journaled sales. With ?unreconciled=true it
// instead returns every sale still missing an upstream order ID.
// @Summary Journaled sales
// @Tags receipts
// @Produce json
// @Param unreconciled query bool false "Only sales without a server order ID"
// @Success 200 {object} response.APIResponse
// @Router /receipts/journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	if !h.journalService.Enabled() {
		response.OK(c, "Journal is disabled", gin.H{
			"enabled": false,
			"records": []interface{}{},
		})
		return
	}

	var (
		records interface{}
		err     error
	)
	if c.Query("unreconciled") == "true" {
		records, err = h.journalService.Unreconciled(c.Request.Context())
	} else {
		records, err = h.journalService.BySession(c.Request.Context(), sess)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Journal retrieved", gin.H{
		"enabled": true,
		"records": records,
	})
}
