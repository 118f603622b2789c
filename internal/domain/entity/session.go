package entity

import (
	"github.com/google/uuid"
	"github.com/kirekcahs/codebrew-pos/internal/domain/enum"
)

// SessionContext identifies an authenticated terminal session: the upstream
// bearer token plus the cashier and branch every sale is attributed to. It
// is owned by the auth flow; the checkout orchestrator and catalog loader
// only read it.
type SessionContext struct {
	SessionID  uuid.UUID `json:"session_id"`
	Token      string    `json:"-"` // upstream bearer token, never serialized
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Role       enum.Role `json:"role"`
	BranchID   int64     `json:"branch_id"`
	BranchName string    `json:"branch_name,omitempty"`
}

// HasBranch reports whether an active branch has been resolved for the
// session. Checkout fails fast without one.
func (s *SessionContext) HasBranch() bool {
	return s.BranchID != 0
}
