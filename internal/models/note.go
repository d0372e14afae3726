// Package models defines the domain types for Ansuz.
package models

import "time"

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveRequest carries one capture invocation: the text to persist plus the
// optional, untrusted user choices that steer where it lands.
type SaveRequest struct {
	RawContent       string `json:"content"`
	ExplicitFilename string `json:"filename,omitempty"`
	TargetFolder     string `json:"folder,omitempty"`
}

// SaveResult reports where a capture ended up.
type SaveResult struct {
	Path        string `json:"path"`         // vault-relative, e.g. Inbox/My Title.md
	DisplayName string `json:"display_name"` // base name without extension
}

// AppendOptions are the two independent toggles for appending to a note.
type AppendOptions struct {
	AddSeparator bool `json:"add_separator"`
	AddTimestamp bool `json:"add_timestamp"`
}
