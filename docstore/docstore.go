// Package docstore is the key-value document port used for local drafts and
// for the shared asset registry. Values are opaque serialized documents.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no document is stored under the key.
var ErrNotFound = errors.New("document not found")

// Store reads and writes whole documents by key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Watcher is implemented by stores that can push changes. Watch registers fn
// and returns immediately; fn is called from another goroutine with every
// value written under key after registration, until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func([]byte)) error
}

// ValidateKey rejects keys that cannot be stored by every implementation.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("document key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid document key %q", key)
	}
	return nil
}
