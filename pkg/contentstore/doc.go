// Package contentstore provides an observable, ordered list of content items
// (headlines, code blocks, images, tables) for an editing UI, mirrored to a
// single named persistent slot after every mutation.
//
// A Store is built with New and a Slot backend. Slot implementations (memory,
// filesystem, S3, Redis, SQLite, Postgres) live under the slot subpackages.
// When no slot is configured, or the slot cannot be reached at load time, the
// store keeps working in memory and skips all persistence writes.
//
// Persisted Format
//
// The slot holds a UTF-8 JSON array of objects with string fields "id",
// "type" and "content". An absent key or a value that fails to parse is
// treated as an empty list.
package contentstore
