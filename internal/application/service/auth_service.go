package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kirekcahs/codebrew-pos/internal/config"
	"github.com/kirekcahs/codebrew-pos/internal/domain/entity"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
	"github.com/kirekcahs/codebrew-pos/internal/domain/repository"
	"github.com/kirekcahs/codebrew-pos/pkg/apperror"
	"github.com/kirekcahs/codebrew-pos/pkg/utils"
)

// AuthService signs cashiers in against the upstream API and manages
// terminal sessions. The terminal never verifies a password itself — it
// forwards credentials and keeps the returned bearer token inside the
// session registry.
type AuthService struct {
	gateway  repository.UpstreamGateway
	sessions *SessionRegistry
	jwt      *utils.JWTManager
	pos      config.POSConfig
}

// NewAuthService creates a new auth service
func NewAuthService(gateway repository.UpstreamGateway, sessions *SessionRegistry, jwt *utils.JWTManager, pos config.POSConfig) *AuthService {
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		jwt:      jwt,
		pos:      pos,
	}
}

// LoginOutput is what a successful login hands back to the handler.
type LoginOutput struct {
	Token        string                `json:"token"`
	Session      entity.SessionContext `json:"session"`
	DefaultRoute string                `json:"default_route"`
}

// Login authenticates against the upstream API, registers a session and
// mints the terminal token for it. The user's assigned branch becomes the
// active branch, matching the login flow of the product.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	if username == "" || password == "" {
		return nil, apperror.NewBadRequestError("Username and password are required")
	}

	result, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	role, err := enum.ParseRole(result.RoleName)
	if err != nil {
		return nil, apperror.NewAppError(502, "Upstream returned an unknown role")
	}

	sessCtx := entity.SessionContext{
		SessionID:  uuid.New(),
		Token:      result.Token,
		UserID:     result.UserID,
		Username:   result.Username,
		Role:       role,
		BranchID:   result.BranchID,
		BranchName: result.BranchName,
	}

	sess := NewSession(sessCtx, s.pos.TaxRate, s.pos.ClampNegativeTotal)
	s.sessions.Put(sess)

	token, err := s.jwt.GenerateSessionToken(sessCtx.SessionID, sessCtx.Username, role.String(), sessCtx.BranchID)
	if err != nil {
		s.sessions.Delete(sessCtx.SessionID)
		return nil, apperror.ErrInternalServer
	}

	return &LoginOutput{
		Token:        token,
		Session:      sessCtx,
		DefaultRoute: role.DefaultRoute(),
	}, nil
}

// Logout ends the session. Unknown IDs are a no-op.
func (s *AuthService) Logout(sessionID uuid.UUID) {
	s.sessions.Delete(sessionID)
}

// SelectBranch changes the session's active branch. Only the auth/branch
// flow writes branch context; checkout and catalog just read it.
func (s *AuthService) SelectBranch(sess *Session, branchID int64, branchName string) error {
	if branchID <= 0 {
		return apperror.NewBadRequestError("Invalid branch ID")
	}
	sess.SetBranch(branchID, branchName)
	return nil
}
