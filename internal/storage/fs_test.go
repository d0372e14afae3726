package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	f, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return f
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestCreateNew(t *testing.T) {
	s := tempVault(t)
	if err := s.CreateNew("fresh.md", []byte("first")); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	// Second create of the same path fails with fs.ErrExist, content intact.
	err := s.CreateNew("fresh.md", []byte("second"))
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("duplicate CreateNew err = %v, want fs.ErrExist", err)
	}
	got, _ := s.Read("fresh.md")
	if string(got) != "first" {
		t.Errorf("content = %q, want original", got)
	}
}

func TestCreateNewMakesParents(t *testing.T) {
	s := tempVault(t)
	if err := s.CreateNew("a/b/deep.md", []byte("x")); err != nil {
		t.Fatalf("CreateNew: %v", err)
	}
	if _, err := s.Read("a/b/deep.md"); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestAppend(t *testing.T) {
	s := tempVault(t)
	if err := s.CreateNew("log.md", []byte("line one\n")); err != nil {
		t.Fatal(err)
	}
	if err := s.Append("log.md", []byte("line two\n")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := s.Read("log.md")
	if string(got) != "line one\nline two\n" {
		t.Errorf("content = %q", got)
	}
}

func TestAppendMissingFile(t *testing.T) {
	s := tempVault(t)
	if err := s.Append("nope.md", []byte("x")); err == nil {
		t.Error("expected error appending to missing file")
	}
}

func TestEnsureDir(t *testing.T) {
	s := tempVault(t)
	if err := s.EnsureDir("x/y/z"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(filepath.Join(s.Root(), "x/y/z"))
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory, err=%v", err)
	}
	// Existing directory is fine.
	if err := s.EnsureDir("x/y/z"); err != nil {
		t.Errorf("EnsureDir on existing: %v", err)
	}
}

func TestDelete(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestMove(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("old.md", []byte("data"))
	if err := s.Move("old.md", "sub/new.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := s.Read("sub/new.md")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("old.md"); err == nil {
		t.Error("old path should not exist")
	}
}

func TestListSkipsHiddenAndNonMarkdown(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("a.md", []byte("a"))
	_ = s.Write("sub/b.md", []byte("b"))
	_ = s.Write("readme.txt", []byte("not md"))
	_ = s.Write(".hidden.md", []byte("hidden file"))
	_ = s.Write(".trash/c.md", []byte("hidden dir"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2: %+v", len(items), items)
	}
	for _, it := range items {
		if strings.HasPrefix(filepath.Base(it.Path), ".") {
			t.Errorf("hidden entry listed: %s", it.Path)
		}
	}
}

func TestListDepthBound(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("l1/l2/l3/l4/l5/within.md", []byte("x"))
	_ = s.Write("l1/l2/l3/l4/l5/l6/beyond.md", []byte("x"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1: %+v", len(items), items)
	}
	if filepath.Base(items[0].Path) != "within.md" {
		t.Errorf("unexpected item: %s", items[0].Path)
	}
}

func TestListFolders(t *testing.T) {
	s := tempVault(t)
	for _, d := range []string{"Inbox", "Work/Projects", "Work/Projects/Deep/TooDeep", ".git/objects"} {
		_ = s.EnsureDir(d)
	}

	folders, err := s.ListFolders("")
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	got := make(map[string]bool, len(folders))
	for _, f := range folders {
		got[f] = true
	}
	for _, want := range []string{"Inbox", "Work", filepath.Join("Work", "Projects"), filepath.Join("Work", "Projects", "Deep")} {
		if !got[want] {
			t.Errorf("missing folder %q in %v", want, folders)
		}
	}
	if got[filepath.Join("Work", "Projects", "Deep", "TooDeep")] {
		t.Error("folder beyond depth limit listed")
	}
	if got[".git"] || got[filepath.Join(".git", "objects")] {
		t.Error("hidden folder listed")
	}
}

func TestUnreadableSubtreeIsSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits do not apply to root")
	}
	s := tempVault(t)
	_ = s.Write("ok/a.md", []byte("a"))
	_ = s.Write("locked/b.md", []byte("b"))
	lockedDir := filepath.Join(s.Root(), "locked")
	if err := os.Chmod(lockedDir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDir, 0o755) })

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List should not fail on unreadable subtree: %v", err)
	}
	if len(items) != 1 || filepath.Base(items[0].Path) != "a.md" {
		t.Errorf("items = %+v, want only ok/a.md", items)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempVault(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
		if err := s.CreateNew(p, []byte("x")); err == nil {
			t.Errorf("expected error for create at %q", p)
		}
	}
}

func TestAtomicWriteNoLeftoverTemp(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("atomic.md", []byte("original content"))
	if err := s.Write("atomic.md", []byte("updated content")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.md")
	if string(got) != "updated content" {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.Root(), ".ansuz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/ansuz-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "ansuz-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
