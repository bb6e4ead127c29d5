// Package cache stores fetched source documents so repeated validation
// runs do not re-download the same papers.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "quotevet:v1:" + hex.EncodeToString(hash[:])
}

// document frames a cached fetch: the body plus the content type the
// server declared, which extraction dispatch depends on.
type document struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// EncodeDocument frames a fetched document for storage.
func EncodeDocument(body []byte, contentType string) ([]byte, error) {
	data, err := json.Marshal(document{ContentType: contentType, Body: body})
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// DecodeDocument unpacks a stored document.
func DecodeDocument(data []byte) (body []byte, contentType string, err error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("decode document: %w", err)
	}
	return doc.Body, doc.ContentType, nil
}
