package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TerminalClaims are the claims in a terminal session token. The token
// wraps the session ID; the upstream bearer token itself never leaves the
// server-side session registry.
type TerminalClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	BranchID  int64     `json:"branch_id"`
	jwt.RegisteredClaims
}

// JWTManager mints and validates terminal session tokens
type JWTManager struct {
	secretKey     []byte
	sessionExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, sessionExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secret),
		sessionExpiry: sessionExpiry,
	}
}

// GenerateSessionToken generates a token for a terminal session
func (m *JWTManager) GenerateSessionToken(sessionID uuid.UUID, username, role string, branchID int64) (string, error) {
	claims := &TerminalClaims{
		SessionID: sessionID,
		Username:  username,
		Role:      role,
		BranchID:  branchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "codebrew-pos",
			Subject:   sessionID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateSessionToken validates a session token and returns the claims
func (m *JWTManager) ValidateSessionToken(tokenString string) (*TerminalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TerminalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TerminalClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
