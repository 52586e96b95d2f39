// Package auth mints and checks the device keys of the mirror server.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lifedash/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the standard claims plus the account whose rows the bearer may
// read and write.
type Claims struct {
	jwt.RegisteredClaims
	Account string `json:"account"`
}

// GenerateToken signs an HS256 device key for account. A non-positive
// validity produces a key that never expires.
func GenerateToken(account string, secretKey []byte, validityDuration time.Duration) (string, error) {
	if account == "" {
		return "", errors.New("account is empty")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Subject:  account,
		},
		Account: account,
	}
	if validityDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// GetAccountFromToken validates tokenString and returns its account.
// Expired keys and keys signed with anything but HS256 are rejected.
func GetAccountFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Account == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Account, nil
}
