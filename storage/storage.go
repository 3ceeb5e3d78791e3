package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"server/config"
	"strconv"
	"time"
)

// Store is the object storage surface the handlers rely on. Calls are
// stateless; credentials and the bucket come from the configuration.
type Store interface {
	// Put uploads the buffer under the given key and returns the object URL
	Put(buf []byte, key, contentType string) (string, error)
	// Delete removes the objects behind the given URLs. Callers treat a
	// failure as non-fatal: the surrounding database mutation proceeds.
	Delete(urls ...string) error
	// Sign exchanges an object URL for a temporary credentialed read URL
	Sign(url string, ttl time.Duration) (string, error)
}

var Instance Store

func Init() {
	if config.S3_BUCKET == "" {
		panic("S3_BUCKET is not configured")
	}
	Instance = NewS3Store()
}

// SignedURLTTL returns the configured lifetime for signed read links.
func SignedURLTTL() time.Duration {
	return time.Duration(config.SIGNED_URL_TTL) * time.Second
}

// SignStrict reports whether a signing failure should fail the whole
// request instead of falling back to the unsigned URL.
func SignStrict() bool {
	return config.SIGNED_URL_STRICT
}

// MediaKey builds the object key for an upload:
// sha256(ownerID)/YYYY-MM-DD/<unix-millis><ext>. The owner id is hashed so
// the identity provider's ids never appear in object paths.
func MediaKey(ownerID string, now time.Time, ext string) string {
	hash := sha256.Sum256([]byte(ownerID))
	return fmt.Sprintf("%s/%s/%s%s",
		hex.EncodeToString(hash[:]),
		now.UTC().Format("2006-01-02"),
		strconv.FormatInt(now.UnixMilli(), 10),
		ext)
}
