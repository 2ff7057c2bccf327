// Package provider declares the kernel's two externally-supplied
// capability interfaces: configuration and storage. The kernel never
// implements them; host applications supply concrete implementations
// (file-backed, remote, in-memory) and hand them to the kernel at
// bootstrap. This package is intentionally interface-only.
package provider

import (
	"context"
	"time"
)

// ConfigProvider is a host-supplied key/value configuration source:
// Get/GetString/Unmarshal read a value by key, Save writes one back.
// It is separate from plugin.ScopedConfig, the view plugins receive.
type ConfigProvider interface {
	// Get returns the raw value stored under key, and whether it exists.
	Get(ctx context.Context, key string) (any, bool)

	// GetString returns the value under key as a string, or "" if absent
	// or not a string.
	GetString(ctx context.Context, key string) string

	// Unmarshal decodes the value tree rooted at key (or the whole
	// provider, if key is empty) into target.
	Unmarshal(ctx context.Context, key string, target any) error

	// Save stores value under key, creating or overwriting it.
	Save(ctx context.Context, key string, value any) error
}

// FileInfo describes one stored entry as returned by StorageProvider.Metadata.
type FileInfo struct {
	Namespace string
	Key       string
	Size      int64
	ModTime   time.Time
}

// StorageProvider is a byte- and string-level persistence surface the
// kernel and its plugins can use for state that must outlive a process
// restart. It is namespaced by plugin ID so two plugins cannot collide
// on keys.
type StorageProvider interface {
	Read(ctx context.Context, namespace, key string) ([]byte, error)
	Write(ctx context.Context, namespace, key string, value []byte) error

	// ReadString and WriteString are the string-level counterparts of
	// Read/Write, for providers and callers that prefer to avoid the
	// []byte <-> string conversion at every call site.
	ReadString(ctx context.Context, namespace, key string) (string, error)
	WriteString(ctx context.Context, namespace, key string, value string) error

	Delete(ctx context.Context, namespace, key string) error
	List(ctx context.Context, namespace string) ([]string, error)

	// Copy duplicates srcKey to dstKey within namespace, overwriting
	// dstKey if it already exists.
	Copy(ctx context.Context, namespace, srcKey, dstKey string) error

	// Rename moves srcKey to dstKey within namespace, overwriting dstKey
	// if it already exists.
	Rename(ctx context.Context, namespace, srcKey, dstKey string) error

	// Metadata returns size and modification time for key without
	// reading its contents.
	Metadata(ctx context.Context, namespace, key string) (FileInfo, error)

	// AtomicAppend appends value to the entry under key, creating it if
	// absent, as a single atomic operation safe for concurrent callers.
	AtomicAppend(ctx context.Context, namespace, key string, value []byte) error
}
