package keyring

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestPasswordLifecycle(t *testing.T) {
	keyring.MockInit()

	if HasPassword("vault", "birthday") {
		t.Fatal("No password should be stored yet")
	}
	if _, err := GetPassword("vault", "birthday"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := SavePassword("vault", "birthday", "unlock"); err != nil {
		t.Fatalf("SavePassword failed: %v", err)
	}
	got, err := GetPassword("vault", "birthday")
	if err != nil {
		t.Fatalf("GetPassword failed: %v", err)
	}
	if got != "unlock" {
		t.Errorf("Password mismatch: got %q", got)
	}

	// Entries are scoped per vault and page
	if HasPassword("other-vault", "birthday") || HasPassword("vault", "anniversary") {
		t.Error("Password leaked across vault or page")
	}

	if err := DeletePassword("vault", "birthday"); err != nil {
		t.Fatalf("DeletePassword failed: %v", err)
	}
	if HasPassword("vault", "birthday") {
		t.Error("Password should be gone after delete")
	}
	if err := DeletePassword("vault", "birthday"); err != nil {
		t.Errorf("Deleting twice should not fail: %v", err)
	}
}
