// Package noteservice implements the capture operations: saving new
// notes, appending to existing ones, and browsing the vault.
package noteservice

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/parser"
	"github.com/starford/ansuz/internal/resolve"
	"github.com/starford/ansuz/internal/storage"
)

// appendTimeLayout formats the human-readable timestamp line added by
// Append when AddTimestamp is set.
const appendTimeLayout = "January 2, 2006 3:04 PM"

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrowseItem is one note in a browse listing.
type BrowseItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BucketGroup is a date-bucketed section of a browse listing.
type BucketGroup struct {
	Bucket Bucket       `json:"bucket"`
	Notes  []BrowseItem `json:"notes"`
}

// Service coordinates the vault store and the catalog.
type Service struct {
	store            storage.Provider
	db               *index.DB
	defaultSubfolder string
}

// NewService creates a new note service. defaultSubfolder is the
// configured folder captures land in when no folder is chosen.
func NewService(store storage.Provider, db *index.DB, defaultSubfolder string) *Service {
	return &Service{store: store, db: db, defaultSubfolder: defaultSubfolder}
}

// Save persists a capture as a new Markdown file. The content is written
// byte-for-byte; only the filename is derived. Whitespace-only content is
// rejected before any directory or file is created. The target file is
// created exclusively: when a concurrent writer grabs the same name, the
// collision counter advances and the create is retried.
func (s *Service) Save(_ context.Context, req models.SaveRequest) (*models.SaveResult, error) {
	if strings.TrimSpace(req.RawContent) == "" {
		return nil, apperr.ErrEmptyContent
	}

	dir := resolve.TargetDirectory(s.defaultSubfolder, req.TargetFolder)
	if dir != "" {
		if err := s.store.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	base := resolve.ChooseBaseName(req.ExplicitFilename, req.RawContent)
	content := []byte(req.RawContent)

	var rel string
	for n := 0; ; n++ {
		rel = filepath.Join(dir, resolve.CandidateName(base, n))
		err := s.store.CreateNew(rel, content)
		if err == nil {
			break
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return nil, err
	}

	// The file is on disk; a catalog hiccup must not fail the save.
	if err := s.indexFile(rel, content); err != nil {
		slog.Warn("save: index failed", slog.String("path", rel), slog.String("error", err.Error()))
	}

	return &models.SaveResult{
		Path:        filepath.ToSlash(rel),
		DisplayName: strings.TrimSuffix(filepath.Base(rel), ".md"),
	}, nil
}

// Append adds text to the end of an existing note. The composed block
// starts with one newline when the file does not already end with one,
// then an optional horizontal-rule separator framed by blank lines (or a
// single blank line without it), then an optional emphasized timestamp
// line, then the text verbatim. The whole block lands in one write; a
// read failure aborts before anything is written.
func (s *Service) Append(_ context.Context, path, text string, opts models.AppendOptions) error {
	if strings.TrimSpace(text) == "" {
		return apperr.ErrEmptyContent
	}

	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}

	var b strings.Builder
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		b.WriteByte('\n')
	}
	if opts.AddSeparator {
		b.WriteString("\n---\n\n")
	} else {
		b.WriteString("\n")
	}
	if opts.AddTimestamp {
		b.WriteString("*" + time.Now().Format(appendTimeLayout) + "*\n\n")
	}
	b.WriteString(text)

	if err := s.store.Append(path, []byte(b.String())); err != nil {
		return err
	}

	if data, readErr := s.store.Read(path); readErr == nil {
		if idxErr := s.indexFile(path, data); idxErr != nil {
			slog.Warn("append: index failed", slog.String("path", path), slog.String("error", idxErr.Error()))
		}
	}
	return nil
}

// GetNote reads a note from storage and parses it.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return buildNoteDetail(path, data), nil
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.indexFile(path, content); err != nil {
		return nil, err
	}
	return buildNoteDetail(path, content), nil
}

// DeleteNote removes a note from storage and the catalog.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteNote(path)
}

// Move relocates a note within the vault and updates the catalog.
func (s *Service) Move(_ context.Context, oldPath, newPath string) error {
	if err := s.store.Move(oldPath, newPath); err != nil {
		return err
	}
	if err := s.db.DeleteNote(oldPath); err != nil {
		slog.Warn("move: deindex failed", slog.String("path", oldPath), slog.String("error", err.Error()))
	}
	data, err := s.store.Read(newPath)
	if err != nil {
		return err
	}
	return s.indexFile(newPath, data)
}

// Browse returns recent notes grouped into date buckets, most recent
// bucket first, empty buckets omitted.
func (s *Service) Browse(_ context.Context, limit int) ([]BucketGroup, error) {
	rows, err := s.db.ListRecent(limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	grouped := make(map[Bucket][]BrowseItem)
	for _, r := range rows {
		b := bucketFor(r.UpdatedAt, now)
		grouped[b] = append(grouped[b], BrowseItem{
			Path:      r.Path,
			Title:     r.Title,
			Tags:      nonNilSlice(r.Tags),
			UpdatedAt: r.UpdatedAt,
		})
	}

	var out []BucketGroup
	for _, b := range bucketOrder {
		if notes, ok := grouped[b]; ok {
			out = append(out, BucketGroup{Bucket: b, Notes: notes})
		}
	}
	return out, nil
}

// Folders returns the vault's directories for folder pickers.
func (s *Service) Folders(_ context.Context) ([]string, error) {
	folders, err := s.store.ListFolders("")
	if err != nil {
		return nil, err
	}
	out := make([]string, len(folders))
	for i, f := range folders {
		out[i] = filepath.ToSlash(f)
	}
	return out, nil
}

// Search delegates full-text search to the catalog.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// IndexFile parses data and upserts it into the catalog.
// Exported so that sync can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	return s.indexFile(path, data)
}

func (s *Service) indexFile(path string, data []byte) error {
	res := parser.Parse(data)
	return s.db.UpsertNote(index.NoteRow{
		Path:      filepath.ToSlash(path),
		Title:     res.Title,
		Checksum:  checksum.Sum(data),
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}, res.Body)
}

func buildNoteDetail(path string, data []byte) *NoteDetail {
	res := parser.Parse(data)
	return &NoteDetail{
		Path:      filepath.ToSlash(path),
		Title:     res.Title,
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		Tags:      nonNilSlice(res.Tags),
		UpdatedAt: time.Now(),
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
