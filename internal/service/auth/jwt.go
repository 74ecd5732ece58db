package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "maferme237"

// CustomClaims extends JWT claims with the held roles / Étend les claims JWT avec les rôles détenus
// A single token carries every role profile the person holds, so a combined
// fournisseur+client account authenticates once for both surfaces.
type CustomClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Token is a signed access token with its expiry / Token d'accès signé avec son expiration
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// GenerateToken signs an access token carrying the person's roles.
func GenerateToken(personID int64, roles []string, jwtKey string, duration time.Duration) (*Token, error) {
	if len(jwtKey) < 32 {
		return nil, errors.New("JWT key too weak")
	}

	now := time.Now()
	expiresAt := now.Add(duration)
	claims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(personID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtKey))
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateJWT validates JWT token / Valide le token JWT
func ValidateJWT(tokenStr, jwtKey string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing algorithm: %v", token.Header["alg"])
		}
		return []byte(jwtKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		if claims.Issuer != issuer {
			return nil, errors.New("invalid issuer")
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// PersonID parses the numeric subject claim / Analyse le claim subject numérique
func (c *CustomClaims) PersonID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
