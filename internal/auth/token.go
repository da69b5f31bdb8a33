package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
)

const (
	AccessTokenCookie = "access_token"
	DefaultTokenTTL   = 24 * time.Hour
)

var (
	ErrSecretNotSet = errors.New("JWT_SECRET is not set")
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no access token")
)

// Claims identify the caller. SubjectID is the users.id, vendors.id or 0
// for the admin, depending on Role.
type Claims struct {
	SubjectID uint   `json:"subject_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Generate(subjectID uint, role Role, email, name string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretNotSet
	}

	now := m.now()
	claims := Claims{
		SubjectID: subjectID,
		Email:     email,
		Name:      name,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretNotSet
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AccessTokens returns the candidate tokens of a request: the
// access_token cookie first, then the bearer header. Empty values are
// skipped.
func AccessTokens(r *http.Request) []string {
	var out []string
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		out = append(out, cookie.Value)
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Authenticate parses the first candidate token that verifies, so a stale
// cookie does not shadow a valid bearer header.
func (m *TokenManager) Authenticate(r *http.Request) (*Claims, error) {
	candidates := AccessTokens(r)
	if len(candidates) == 0 {
		return nil, ErrNoToken
	}

	var lastErr error
	for _, tok := range candidates {
		claims, err := m.Parse(tok)
		if err == nil {
			return claims, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
