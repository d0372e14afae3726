// Package resolve decides where a captured note lands on disk: which
// directory under the vault, which base name, and which collision-free
// final path.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// RootFolder is the sentinel folder argument meaning "the vault root
// itself", as opposed to the empty string which means "no folder chosen".
const RootFolder = "/"

// MaxBaseNameLen is the rune limit applied to sanitized base names.
const MaxBaseNameLen = 80

// fallbackLayout formats the timestamp used when no usable name can be
// derived from the input: note-YYYYMMDDHHmmss.
const fallbackLayout = "20060102150405"

var (
	illegalRe    = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// TargetDirectory returns the vault-relative directory a note should be
// saved into. Precedence: an explicit folder choice wins (RootFolder
// selects the vault root), then the configured default subfolder, then
// the vault root. The empty string result means the root itself.
func TargetDirectory(defaultSubfolder, explicitFolder string) string {
	switch {
	case explicitFolder == RootFolder:
		return ""
	case explicitFolder != "":
		return filepath.Clean(explicitFolder)
	case defaultSubfolder != "":
		return filepath.Clean(defaultSubfolder)
	default:
		return ""
	}
}

// SanitizeFilename makes arbitrary text safe to use as a single path
// segment: characters that are illegal in filenames become spaces, runs
// of whitespace collapse to one space, the result is trimmed and capped
// at MaxBaseNameLen runes. The result may be empty; the operation never
// fails and is idempotent.
func SanitizeFilename(name string) string {
	s := illegalRe.ReplaceAllString(name, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > MaxBaseNameLen {
		s = strings.TrimSpace(string(r[:MaxBaseNameLen]))
	}
	return s
}

// ChooseBaseName picks the note's base name (no extension). An explicit
// user-supplied name wins if it survives sanitization, then the first
// line of the content, then a note-YYYYMMDDHHmmss timestamp name.
func ChooseBaseName(explicitFilename, rawContent string) string {
	if s := SanitizeFilename(explicitFilename); s != "" {
		return s
	}
	firstLine := rawContent
	if i := strings.IndexByte(rawContent, '\n'); i >= 0 {
		firstLine = rawContent[:i]
	}
	if s := SanitizeFilename(strings.TrimSpace(firstLine)); s != "" {
		return s
	}
	return "note-" + time.Now().Format(fallbackLayout)
}

// CandidateName returns the n-th filename in the collision-probe
// sequence for base: base.md, base-1.md, base-2.md, ...
func CandidateName(base string, n int) string {
	if n == 0 {
		return base + ".md"
	}
	return fmt.Sprintf("%s-%d.md", base, n)
}

// AllocateUniquePath probes dir for the first name in the candidate
// sequence that does not exist and returns its full path. The check is
// stat-based; callers that need the check and the write to be atomic
// should create the file with storage.CreateNew instead and advance the
// counter on an "already exists" failure.
func AllocateUniquePath(dir, base string) (string, error) {
	for n := 0; ; n++ {
		p := filepath.Join(dir, CandidateName(base, n))
		_, err := os.Stat(p)
		if os.IsNotExist(err) {
			return p, nil
		}
		if err != nil {
			return "", fmt.Errorf("resolve: stat %s: %w", p, err)
		}
	}
}

// ExpandHome expands a leading ~ or ~/ in path against the invoking
// user's home directory. Paths without the prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve: home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
