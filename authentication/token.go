package authentication

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies bearer tokens. Each token carries a fresh
// session id; the token is only honoured while that session is stored.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenIssuer returns an HS256 issuer. A zero ttl issues tokens that never
// expire on their own; they end when their session is revoked.
func NewTokenIssuer(secret string, ttl time.Duration, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, issuer: issuer}
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token for user and returns it with its session id.
func (t *TokenIssuer) Issue(user *models.User) (string, string, error) {
	sessionID := uuid.NewString()
	now := time.Now()

	claims := &models.UserClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Subject:  strconv.FormatUint(uint64(user.ID), 10),
			Issuer:   t.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", "", err
	}
	return signed, sessionID, nil
}

// Parse verifies the signature and expiry of tokenString.
func (t *TokenIssuer) Parse(tokenString string) (*models.UserClaims, error) {
	claims := &models.UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(t.issuer))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
