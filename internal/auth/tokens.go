// Package auth provides credential hashing and JWT issuance for the API.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"fieldbook/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Issuer and Audience are pinned in every token and checked on verify.
	Issuer   = "fieldbook-api"
	Audience = "fieldbook-client"

	// AccessTokenTTL keeps the exposure window of a leaked access token short.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL bounds how long a session can be renewed without
	// re-entering a password.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// NewAccessToken mints a short-lived access token carrying the user's
// identity claims. The returned JTI can be blacklisted on logout.
func NewAccessToken(user *models.User, secret string) (string, string, error) {
	if secret == "" {
		return "", "", fmt.Errorf("access token secret not configured")
	}

	now := time.Now()
	jti := newJTI()
	claims := jwt.MapClaims{
		"sub":          strconv.FormatUint(uint64(user.ID), 10),
		"is_admin":     user.IsAdmin,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"phone_number": user.PhoneNumber,
		"iss":          Issuer,
		"aud":          Audience,
		"exp":          now.Add(AccessTokenTTL).Unix(),
		"iat":          now.Unix(),
		"nbf":          now.Unix(),
		"jti":          jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, jti, err
}

// NewRefreshToken mints a long-lived refresh token. Its claims are minimal:
// only the subject and a JTI that must match the one stored on the user row.
func NewRefreshToken(userID uint, secret string) (string, string, error) {
	if secret == "" {
		return "", "", fmt.Errorf("refresh token secret not configured")
	}

	now := time.Now()
	jti := newJTI()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": Issuer,
		"aud": Audience,
		"exp": now.Add(RefreshTokenTTL).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, jti, err
}

// ParseRefreshToken verifies a refresh token and returns the user ID and JTI
// it carries. Any verification failure is returned as-is; callers translate
// it to a 401.
func ParseRefreshToken(tokenString, secret string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(Issuer), jwt.WithAudience(Audience))
	if err != nil || !token.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return 0, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", jwt.ErrTokenInvalidSubject
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", jwt.ErrTokenInvalidSubject
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return 0, "", jwt.ErrTokenInvalidId
	}

	return uint(userID), jti, nil
}

// newJTI creates a unique token ID to support revocation and rotation checks.
func newJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
