package token

import (
	"errors"
	"fmt"
	"time"

	"gigbud/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims extracted from a verified token.
type Claims struct {
	UserID    uint
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Pair is what login-style operations hand back to the client.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Manager signs and verifies HS256 access/refresh tokens. Secrets and TTLs
// come from the config passed at construction; the manager never touches the
// environment.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.JWTAccessSecret),
		refreshSecret: []byte(cfg.JWTRefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssuePair returns a fresh access+refresh token pair for the user.
func (m *Manager) IssuePair(userID uint, email, role string) (*Pair, error) {
	access, err := m.sign(m.accessSecret, userID, email, role, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(m.refreshSecret, userID, email, role, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess returns a new short-lived access token. Used on refresh; the
// refresh token itself is not rotated.
func (m *Manager) IssueAccess(userID uint, email, role string) (string, error) {
	return m.sign(m.accessSecret, userID, email, role, m.accessTTL)
}

func (m *Manager) VerifyAccess(tokenString string) (*Claims, error) {
	return m.verify(m.accessSecret, tokenString)
}

func (m *Manager) VerifyRefresh(tokenString string) (*Claims, error) {
	return m.verify(m.refreshSecret, tokenString)
}

// DecodeExpired parses an access token without validating its expiry. Logout
// needs the subject and original expiry of tokens that may already be stale.
func (m *Manager) DecodeExpired(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.accessSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claimsFromToken(token)
}

func (m *Manager) sign(secret []byte, userID uint, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func (m *Manager) verify(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claimsFromToken(token)
}

func claimsFromToken(token *jwt.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	exp, _ := mapClaims["exp"].(float64)
	return &Claims{
		UserID:    uint(userID),
		Email:     email,
		Role:      role,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
