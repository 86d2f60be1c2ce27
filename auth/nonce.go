package auth

import "github.com/google/uuid"

// NewNonce returns a new random nonce: a UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func NewNonce() string {
	return uuid.New().String()
}
