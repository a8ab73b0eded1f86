// Package token stores hosting API tokens in the operating system's "native"
// credentials store. For example, Keychain is used on macOS.
package token

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ghusk/ghusk/version"
)

type (
	// Store addresses one token by service name and username.
	// The service name binds the token to a specific API endpoint, so GitHub
	// Enterprise tokens never collide with github.com ones.
	Store struct {
		service string
		user    string
	}
)

// ErrNotFound reports that no token exists for the user under the service.
var ErrNotFound = errors.New("no stored token")

func NewStore(apiURL, user string) Store {
	return Store{service: version.Program + ":" + apiURL, user: user}
}

// Service returns the keyring service name, for user-facing messages.
func (s Store) Service() string {
	return s.service
}

// Get retrieves the stored token.
// A non-nil error wraps [ErrNotFound] when the store has no entry; any other
// error means the credentials backend itself failed.
func (s Store) Get() (string, error) {
	secret, err := keyring.Get(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %s@%s", ErrNotFound, s.user, s.service)
	} else if err != nil {
		return "", fmt.Errorf("failed to read token for %s@%s: %w", s.user, s.service, err)
	}

	return secret, nil
}

func (s Store) Set(secret string) error {
	if err := keyring.Set(s.service, s.user, secret); err != nil {
		return fmt.Errorf("failed to store token for %s@%s: %w", s.user, s.service, err)
	}

	return nil
}

func (s Store) Delete() error {
	err := keyring.Delete(s.service, s.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w for %s@%s", ErrNotFound, s.user, s.service)
	} else if err != nil {
		return fmt.Errorf("failed to delete token for %s@%s: %w", s.user, s.service, err)
	}

	return nil
}
