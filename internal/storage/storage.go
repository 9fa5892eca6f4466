package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStore is the object-storage surface the photo service depends on.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ObjectKey builds a collision-resistant storage key scoped under the event,
// keeping the original file extension so the public URL stays loadable.
func ObjectKey(eventID uuid.UUID, fileName string) string {
	ext := filepath.Ext(fileName)
	if ext == "" {
		ext = ".jpg"
	}

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// rand failure is effectively impossible; fall back to a uuid
		return fmt.Sprintf("events/%s/%d_%s%s", eventID, time.Now().UnixMilli(), uuid.NewString()[:12], ext)
	}

	return fmt.Sprintf("events/%s/%d_%s%s", eventID, time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
