// Package auth handles the JWT token generation for sign-in sessions.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	issuer = "fashionhub"
	// Signing key section. For now, we only have 1 key.
	keyID = "v1"
	// AccessTokenAudienceName is the audience name of the access token.
	AccessTokenAudienceName = "user.access-token"
	// RefreshTokenAudienceName is the audience name of the refresh token.
	RefreshTokenAudienceName = "user.refresh-token"

	// CookieExpDuration is the expiration duration of the auth cookies.
	CookieExpDuration = 7 * 24 * time.Hour
	accessTokenDur    = 24 * time.Hour
	refreshTokenDur   = 7 * 24 * time.Hour
	// RefreshThresholdDuration is how close to expiry the access token gets
	// silently re-issued.
	RefreshThresholdDuration = 1 * time.Hour

	// AccessTokenCookieName is the cookie name of access token.
	AccessTokenCookieName = "fashionhub.access-token"
	// RefreshTokenCookieName is the cookie name of refresh token.
	RefreshTokenCookieName = "fashionhub.refresh-token"
)

type claimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates an access token for the given user.
func GenerateAccessToken(username string, userID int, secret string) (string, error) {
	expirationTime := time.Now().Add(accessTokenDur)
	return generateToken(username, userID, AccessTokenAudienceName, expirationTime, []byte(secret))
}

// GenerateRefreshToken generates a refresh token for the given user.
func GenerateRefreshToken(username string, userID int, secret string) (string, error) {
	expirationTime := time.Now().Add(refreshTokenDur)
	return generateToken(username, userID, RefreshTokenAudienceName, expirationTime, []byte(secret))
}

func generateToken(username string, userID int, aud string, expirationTime time.Time, secret []byte) (string, error) {
	claims := &claimsMessage{
		Name: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{aud},
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   strconv.Itoa(userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = keyID

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}
