// Package storage defines the vault file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for vault file operations. All paths are
// relative to the vault root unless noted otherwise.
type Provider interface {
	// List returns metadata for .md files under dir, to a bounded depth,
	// skipping hidden entries. Enumeration is best-effort: unreadable
	// subtrees contribute zero entries.
	List(dir string) ([]models.NoteMetadata, error)
	// ListFolders returns vault-relative directory paths under dir, to a
	// bounded depth, skipping hidden entries.
	ListFolders(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the content at path.
	Write(path string, content []byte) error
	// CreateNew writes content to path, failing with fs.ErrExist if the
	// file already exists. The create is exclusive, not check-then-write.
	CreateNew(path string, content []byte) error
	// Append writes block to the end of the file at path in one operation.
	// The file must already exist.
	Append(path string, block []byte) error
	// EnsureDir creates dir and any missing ancestors.
	EnsureDir(dir string) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
}
