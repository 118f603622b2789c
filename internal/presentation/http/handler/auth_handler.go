package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kirekcahs/codebrew-pos/internal/application/service"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/request"
	"github.com/kirekcahs/codebrew-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles terminal sign-in and session lifecycle
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles terminal login
// @Summary Login
// @Description Authenticate against the upstream API and open a terminal session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token":  output.Token,
		"token_type":    "Bearer",
		"user":          output.Session,
		"default_route": output.DefaultRoute,
	})
}

// Logout ends the terminal session
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	h.authService.Logout(sess.Context().SessionID)
	response.OK(c, "Logout successful", nil)
}

// GetSession returns the authenticated session context
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /session [get]
func (h *AuthHandler) GetSession(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	sctx := sess.Context()
	response.OK(c, "Session retrieved", gin.H{
		"user":           sctx,
		"capabilities":   sctx.Role.Capabilities(),
		"default_route":  sctx.Role.DefaultRoute(),
		"checkout_state": sess.CheckoutState(),
	})
}

// SelectBranch switches the session's active branch
// @Summary Select branch
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.SelectBranchRequest true "Branch to activate"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /auth/branch [put]
func (h *AuthHandler) SelectBranch(c *gin.Context) {
	sess := getSession(c)
	if sess == nil {
		return
	}

	var req request.SelectBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.SelectBranch(sess, req.BranchID, req.BranchName); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch selected", gin.H{
		"branch_id":   req.BranchID,
		"branch_name": req.BranchName,
	})
}
