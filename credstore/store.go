// Package credstore persists the single credential record (bearer token
// + email) under a fixed account key, overwritten wholesale on each login.
package credstore

import (
	"errors"

	"github.com/nderose7/shiptrack-app/models"
)

// Account is the fixed key under which the credential record is stored.
const Account = "shipTrackAuthAccount"

// ErrNotFound is returned by Load when no credential has been saved.
var ErrNotFound = errors.New("credstore: credential not found")

// Store saves and retrieves the credential record.
type Store interface {
	Save(cred models.Credential) error
	Load() (models.Credential, error)
	Delete() error
}
