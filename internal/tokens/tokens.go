package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return uint(id), nil
}

// Issuer mints and verifies the three token types of the auth flow:
// access (bearer), refresh (cookie) and admin elevation (cookie). Every
// token is a self-contained HS256 JWT, nothing is stored server-side.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	adminSecret   []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	AdminTTL   time.Duration
}

func NewIssuer(accessSecret, refreshSecret, adminSecret []byte) *Issuer {
	return &Issuer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		adminSecret:   adminSecret,
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
		AdminTTL:      time.Hour,
	}
}

func (i *Issuer) IssueAccess(userID uint, role string) (string, error) {
	return sign(i.accessSecret, userID, role, i.AccessTTL)
}

func (i *Issuer) IssueRefresh(userID uint, role string) (string, error) {
	return sign(i.refreshSecret, userID, role, i.RefreshTTL)
}

func (i *Issuer) IssueAdmin(userID uint, role string) (string, error) {
	return sign(i.adminSecret, userID, role, i.AdminTTL)
}

func (i *Issuer) ParseAccess(raw string) (*Claims, error) {
	return parse(i.accessSecret, raw)
}

func (i *Issuer) ParseRefresh(raw string) (*Claims, error) {
	return parse(i.refreshSecret, raw)
}

func (i *Issuer) ParseAdmin(raw string) (*Claims, error) {
	return parse(i.adminSecret, raw)
}

func sign(secret []byte, userID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse(secret []byte, raw string) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}
