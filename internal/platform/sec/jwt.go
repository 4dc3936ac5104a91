// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides token verification and key hashing.
//
// # Architecture
//
// Admin users sign in through Supabase Auth. This package only verifies the
// resulting access tokens (HS256, project JWT secret); it never issues tokens
// for real users.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the payload of a Supabase access token.
//
// UserID mirrors the 'sub' claim. AppRole and Disabled are not part of the
// token: they are resolved from the profiles table by the admin guard.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`

	// Postgres role used by PostgREST ("authenticated", "service_role")
	Role string `json:"role"`

	UserID   string   `json:"-"`
	AppRole  UserRole `json:"-"`
	Disabled bool     `json:"-"`

	// Machine is set for requests authenticated with the admin API key.
	Machine bool `json:"-"`
}

// TokenService verifies Supabase access tokens.
type TokenService struct {
	secret   []byte
	audience string
}

// NewTokenService creates a new TokenService for the project JWT secret.
func NewTokenService(secret, audience string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: jwt secret is empty")
	}
	return &TokenService{secret: []byte(secret), audience: audience}, nil
}

// GenerateAccessToken signs a token the same way Supabase Auth does.
// It is used by tooling and tests; production tokens come from Supabase.
func (service *TokenService) GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{service.audience},
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email: email,
		Role:  service.audience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, expiry and audience of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithAudience(service.audience), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("sec: token has no subject")
	}
	claims.UserID = claims.Subject

	return claims, nil
}
