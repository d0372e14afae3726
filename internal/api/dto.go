package api

import (
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/noteservice"
)

// CaptureRequest is the request body for capturing a note. Only content
// is required; filename and folder steer where it lands.
type CaptureRequest struct {
	Content  string `json:"content" example:"Meeting notes\nDiscussed roadmap" validate:"required"`
	Filename string `json:"filename,omitempty" example:"roadmap"`
	Folder   string `json:"folder,omitempty" example:"Work/Meetings"`
}

// AppendRequest is the request body for appending to an existing note.
type AppendRequest struct {
	Path         string `json:"path" example:"Inbox/scratch.md" validate:"required"`
	Content      string `json:"content" example:"one more thing" validate:"required"`
	AddSeparator bool   `json:"add_separator,omitempty"`
	AddTimestamp bool   `json:"add_timestamp,omitempty"`
}

// UpdateNoteRequest is the request body for replacing a note's content.
type UpdateNoteRequest struct {
	Content string `json:"content" example:"# Updated\nContent" validate:"required"`
}

// SaveResult reports where a capture landed (aliased from the domain layer).
type SaveResult = models.SaveResult

// NoteDetail is the full note response type (aliased from the domain layer).
type NoteDetail = noteservice.NoteDetail

// BucketGroup is one date-bucketed section of a browse response (aliased
// from the domain layer).
type BucketGroup = noteservice.BucketGroup

// BrowseResponse wraps a bucketed note listing.
type BrowseResponse struct {
	Buckets []BucketGroup `json:"buckets" validate:"required"`
}

// FoldersResponse wraps the folder listing.
type FoldersResponse struct {
	Folders []string `json:"folders" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"Inbox/hello.md" validate:"required"`
	Title   string `json:"title" example:"Hello" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}
