// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrAPIKeyDisabled is returned when no API key hash is configured.
var ErrAPIKeyDisabled = errors.New("sec: admin api key is not configured")

// HashAPIKey hashes a plain-text machine API key using bcrypt.
// The result is what operators put in ADMIN_API_KEY_HASH.
func HashAPIKey(plainTextKey string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextKey), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash api key: %w", err)
	}
	return string(hashedBytes), nil
}

// APIKeyChecker verifies the X-Admin-Key header used by automation clients.
type APIKeyChecker struct {
	hash []byte
}

// NewAPIKeyChecker builds a checker from a bcrypt hash. An empty hash disables
// machine access entirely.
func NewAPIKeyChecker(hash string) *APIKeyChecker {
	return &APIKeyChecker{hash: []byte(hash)}
}

// Check compares a presented key with the configured hash.
func (checker *APIKeyChecker) Check(presentedKey string) error {
	if len(checker.hash) == 0 {
		return ErrAPIKeyDisabled
	}
	if presentedKey == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword(checker.hash, []byte(presentedKey))
}
