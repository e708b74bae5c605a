// Package storage defines the read-only content store abstraction.
//
// Content is addressed by logical keys such as "articles/index",
// "articles/7" or "daily-office/morning-prayer". A key maps to the JSON
// resource "<key>.json" under the store root.
package storage

import "context"

// Ext is appended to every key to form the resource path.
const Ext = ".json"

// Provider reads raw JSON documents by key.
type Provider interface {
	// Read returns the raw bytes of the document stored under key.
	Read(ctx context.Context, key string) ([]byte, error)
}

// Lister is implemented by providers that can enumerate keys.
type Lister interface {
	// List returns the keys of every document directly under dir, sorted.
	List(ctx context.Context, dir string) ([]string, error)
}
