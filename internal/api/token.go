// Gookins Admin - Task Management Console Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gookins-admin

package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by InspectToken for tokens that are not JWTs.
var ErrNotJWT = errors.New("token is not a JWT")

// TokenClaims are the claims the backend puts in its session token.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenInfo describes a token for display.
type TokenInfo struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	Expired   bool      `json:"expired"`
}

// InspectToken decodes the claims without verifying the signature. The
// result is informational only; authorization is always the backend's call.
func InspectToken(token string, now time.Time) (TokenInfo, error) {
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenInfo{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	info := TokenInfo{Username: claims.Username}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = !now.Before(info.ExpiresAt)
	}
	return info, nil
}
