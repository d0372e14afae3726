package noteservice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/testutil"
)

func testService(t *testing.T, defaultSubfolder string) (*Service, string) {
	t.Helper()
	vaultDir, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	return NewService(store, db, defaultSubfolder), vaultDir
}

func TestSaveRoundTrip(t *testing.T) {
	svc, vaultDir := testService(t, "")
	content := "Shopping\n\nmilk\neggs  \n\ttabs kept\n"

	res, err := svc.Save(context.Background(), models.SaveRequest{RawContent: content})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.Path != "Shopping.md" {
		t.Errorf("path = %q", res.Path)
	}
	if res.DisplayName != "Shopping" {
		t.Errorf("display name = %q", res.DisplayName)
	}

	got, err := os.ReadFile(filepath.Join(vaultDir, res.Path))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != content {
		t.Errorf("content transformed: got %q, want %q", got, content)
	}
}

func TestSaveEmptyContentRejected(t *testing.T) {
	svc, vaultDir := testService(t, "Inbox")

	_, err := svc.Save(context.Background(), models.SaveRequest{RawContent: "   \n\t "})
	if !errors.Is(err, apperr.ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}

	// No directory or file may exist: rejection happens before any mutation.
	entries, readErr := os.ReadDir(vaultDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("vault not empty after rejected save: %v", entries)
	}
}

func TestSaveFolderPrecedence(t *testing.T) {
	svc, _ := testService(t, "Inbox")

	res, err := svc.Save(context.Background(), models.SaveRequest{
		RawContent:   "text",
		TargetFolder: "Work",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(res.Path, "Work/") {
		t.Errorf("path = %q, want under Work/, not Inbox/", res.Path)
	}
}

func TestSaveDefaultSubfolder(t *testing.T) {
	svc, _ := testService(t, "Inbox")

	res, err := svc.Save(context.Background(), models.SaveRequest{RawContent: "text"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(res.Path, "Inbox/") {
		t.Errorf("path = %q, want under Inbox/", res.Path)
	}
}

func TestSaveRootSentinelBeatsDefault(t *testing.T) {
	svc, _ := testService(t, "Inbox")

	res, err := svc.Save(context.Background(), models.SaveRequest{
		RawContent:   "root please",
		TargetFolder: "/",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(res.Path, "/") {
		t.Errorf("path = %q, want at vault root", res.Path)
	}
}

func TestSaveCollisionSuffix(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	paths := make([]string, 3)
	for i := range paths {
		res, err := svc.Save(ctx, models.SaveRequest{
			RawContent:       "body",
			ExplicitFilename: "note",
		})
		if err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
		paths[i] = res.Path
	}
	want := []string{"note.md", "note-1.md", "note-2.md"}
	for i, w := range want {
		if paths[i] != w {
			t.Errorf("save %d path = %q, want %q", i, paths[i], w)
		}
	}
}

func TestSaveExplicitFilenameWins(t *testing.T) {
	svc, _ := testService(t, "")

	res, err := svc.Save(context.Background(), models.SaveRequest{
		RawContent:       "First Line\nbody",
		ExplicitFilename: "My Title",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if res.Path != "My Title.md" {
		t.Errorf("path = %q", res.Path)
	}
}

func TestSaveTimestampFallbackName(t *testing.T) {
	svc, _ := testService(t, "")

	res, err := svc.Save(context.Background(), models.SaveRequest{RawContent: "\n\nbody"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !regexp.MustCompile(`^note-\d{14}\.md$`).MatchString(res.Path) {
		t.Errorf("path = %q, want note-<14 digits>.md", res.Path)
	}
}

func TestSaveIndexesNote(t *testing.T) {
	svc, _ := testService(t, "")

	res, err := svc.Save(context.Background(), models.SaveRequest{RawContent: "# Indexed\nbody"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	row, err := svc.db.GetNote(res.Path)
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if row.Title != "Indexed" {
		t.Errorf("indexed title = %q", row.Title)
	}
}

func TestAppendNewlineNormalization(t *testing.T) {
	svc, vaultDir := testService(t, "")
	ctx := context.Background()

	// File without trailing newline gets exactly one inserted.
	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "no trailing newline", ExplicitFilename: "a"})
	if err := svc.Append(ctx, res.Path, "added", models.AppendOptions{}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(vaultDir, "a.md"))
	if string(got) != "no trailing newline\n\nadded" {
		t.Errorf("content = %q", got)
	}

	// File with trailing newline gets none.
	res, _ = svc.Save(ctx, models.SaveRequest{RawContent: "ends with newline\n", ExplicitFilename: "b"})
	if err := svc.Append(ctx, res.Path, "added", models.AppendOptions{}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ = os.ReadFile(filepath.Join(vaultDir, "b.md"))
	if string(got) != "ends with newline\n\nadded" {
		t.Errorf("content = %q", got)
	}
}

func TestAppendSeparator(t *testing.T) {
	svc, vaultDir := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "first\n", ExplicitFilename: "sep"})
	if err := svc.Append(ctx, res.Path, "second", models.AppendOptions{AddSeparator: true}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(vaultDir, "sep.md"))
	if string(got) != "first\n\n---\n\nsecond" {
		t.Errorf("content = %q", got)
	}
}

func TestAppendTimestamp(t *testing.T) {
	svc, vaultDir := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "first\n", ExplicitFilename: "ts"})
	if err := svc.Append(ctx, res.Path, "second", models.AppendOptions{AddTimestamp: true}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(vaultDir, "ts.md"))
	// first\n + blank line + *<timestamp>* line + blank line + content.
	re := regexp.MustCompile(`^first\n\n\*[A-Z][a-z]+ \d{1,2}, \d{4} \d{1,2}:\d{2} [AP]M\*\n\nsecond$`)
	if !re.MatchString(string(got)) {
		t.Errorf("content = %q", got)
	}
}

func TestAppendMissingFileFailsBeforeWrite(t *testing.T) {
	svc, vaultDir := testService(t, "")

	err := svc.Append(context.Background(), "absent.md", "text", models.AppendOptions{})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, statErr := os.Stat(filepath.Join(vaultDir, "absent.md")); statErr == nil {
		t.Error("append to missing file must not create it")
	}
}

func TestAppendEmptyTextRejected(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "body", ExplicitFilename: "e"})
	err := svc.Append(ctx, res.Path, "   ", models.AppendOptions{})
	if !errors.Is(err, apperr.ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
}

func TestBrowseBucketsAndOrder(t *testing.T) {
	svc, _ := testService(t, "")
	now := time.Now()

	seed := []struct {
		path string
		when time.Time
	}{
		{"today.md", now},
		{"yesterday.md", now.AddDate(0, 0, -1)},
		{"lastweek.md", now.AddDate(0, 0, -5)},
		{"lastmonth.md", now.AddDate(0, 0, -20)},
		{"ancient.md", now.AddDate(-1, 0, 0)},
	}
	for _, s := range seed {
		if err := svc.db.UpsertNote(index.NoteRow{
			Path:      s.path,
			Title:     s.path,
			Checksum:  s.path,
			UpdatedAt: s.when,
		}, "body"); err != nil {
			t.Fatal(err)
		}
	}

	groups, err := svc.Browse(context.Background(), 50)
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	wantOrder := []Bucket{BucketToday, BucketYesterday, BucketThisWeek, BucketThisMonth, BucketOlder}
	if len(groups) != len(wantOrder) {
		t.Fatalf("groups = %d, want %d: %+v", len(groups), len(wantOrder), groups)
	}
	for i, g := range groups {
		if g.Bucket != wantOrder[i] {
			t.Errorf("group %d = %q, want %q", i, g.Bucket, wantOrder[i])
		}
		if len(g.Notes) != 1 {
			t.Errorf("group %q has %d notes, want 1", g.Bucket, len(g.Notes))
		}
	}
}

func TestUpdateNoteOptimisticConcurrency(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "v1", ExplicitFilename: "lock"})
	detail, err := svc.GetNote(ctx, res.Path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateNote(ctx, res.Path, []byte("v2"), detail.Checksum); err != nil {
		t.Fatalf("matching checksum should update: %v", err)
	}
	_, err = svc.UpdateNote(ctx, res.Path, []byte("v3"), detail.Checksum)
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("stale checksum err = %v, want ErrConflict", err)
	}
}

func TestMove(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "# Movable\nbody", ExplicitFilename: "mv"})
	if err := svc.Move(ctx, res.Path, "Archive/mv.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}

	if _, err := svc.GetNote(ctx, res.Path); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("old path err = %v, want ErrNotFound", err)
	}
	detail, err := svc.GetNote(ctx, "Archive/mv.md")
	if err != nil {
		t.Fatalf("GetNote after move: %v", err)
	}
	if detail.Title != "Movable" {
		t.Errorf("title = %q", detail.Title)
	}
	if _, err := svc.db.GetNote("mv.md"); err == nil {
		t.Error("old catalog row survived the move")
	}
}

func TestFolders(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	_, _ = svc.Save(ctx, models.SaveRequest{RawContent: "x", TargetFolder: "Work/Projects"})
	_, _ = svc.Save(ctx, models.SaveRequest{RawContent: "y", TargetFolder: "Inbox"})

	folders, err := svc.Folders(ctx)
	if err != nil {
		t.Fatalf("Folders: %v", err)
	}
	got := strings.Join(folders, ",")
	for _, want := range []string{"Work", "Work/Projects", "Inbox"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %v", want, folders)
		}
	}
}

func TestDeleteNote(t *testing.T) {
	svc, _ := testService(t, "")
	ctx := context.Background()

	res, _ := svc.Save(ctx, models.SaveRequest{RawContent: "bye", ExplicitFilename: "del"})
	if err := svc.DeleteNote(ctx, res.Path); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := svc.GetNote(ctx, res.Path); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
