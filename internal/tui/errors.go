package tui

import (
	"errors"
	"fmt"

	"github.com/safepass/safepass/internal/keystore"
	"github.com/safepass/safepass/internal/service"
	"github.com/safepass/safepass/internal/store"
)

// userMessage maps internal errors onto something worth showing in the
// status bar. Validation messages pass through as written; infrastructure
// errors are summarized.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}

	switch {
	case errors.Is(err, store.ErrCredentialNotFound):
		return "record not found"
	case errors.Is(err, keystore.ErrNotInitialized):
		return "vault key is not ready yet"
	default:
		return fmt.Sprintf("operation failed: %v", err)
	}
}
