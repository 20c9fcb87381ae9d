// Package auth provides API key authentication for the websocket
// endpoint. Keys are held as bcrypt hashes so a process dump never
// exposes plaintext credentials.
package auth

import "golang.org/x/crypto/bcrypt"

// APIKeyAuth validates client API keys.
type APIKeyAuth struct {
	hashes [][]byte
}

// NewAPIKeyAuth hashes the configured keys. With no keys configured the
// endpoint runs open.
func NewAPIKeyAuth(keys []string) (*APIKeyAuth, error) {
	a := &APIKeyAuth{}
	for _, key := range keys {
		if err := a.AddKey(key); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// AddKey registers a new valid API key.
func (a *APIKeyAuth) AddKey(key string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.hashes = append(a.hashes, hash)
	return nil
}

// Open reports whether authentication is disabled (no keys configured).
func (a *APIKeyAuth) Open() bool {
	return len(a.hashes) == 0
}

// IsValidKey checks a presented key against the configured hashes.
func (a *APIKeyAuth) IsValidKey(key string) bool {
	for _, hash := range a.hashes {
		if bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil {
			return true
		}
	}
	return false
}
