// Package keyring remembers authoring passwords in the OS keyring, one
// entry per page of a store.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "slipper"

var ErrNotFound = keyring.ErrNotFound

func account(vaultID, page string) string {
	return vaultID + "/" + page
}

// SavePassword stores the password of a page in the OS keyring
func SavePassword(vaultID, page, password string) error {
	return keyring.Set(serviceName, account(vaultID, page), password)
}

// GetPassword retrieves the password of a page from the OS keyring
func GetPassword(vaultID, page string) (string, error) {
	return keyring.Get(serviceName, account(vaultID, page))
}

// DeletePassword removes the password of a page from the OS keyring.
// Deleting a password that was never saved is not an error.
func DeletePassword(vaultID, page string) error {
	err := keyring.Delete(serviceName, account(vaultID, page))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasPassword checks if a password is stored for a page
func HasPassword(vaultID, page string) bool {
	_, err := keyring.Get(serviceName, account(vaultID, page))
	return err == nil
}
