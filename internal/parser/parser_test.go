package parser

import (
	"reflect"
	"testing"
)

func TestTitleFromFrontmatter(t *testing.T) {
	res := Parse([]byte("---\ntitle: Standup Notes\n---\n\n# Something Else\n"))
	if res.Title != "Standup Notes" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestTitleFromHeading(t *testing.T) {
	res := Parse([]byte("intro line\n\n# Real Title\nbody\n"))
	if res.Title != "Real Title" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestTitleFromFirstLine(t *testing.T) {
	res := Parse([]byte("\n\njust a captured thought\nsecond line\n"))
	if res.Title != "just a captured thought" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestTitleEmpty(t *testing.T) {
	if res := Parse([]byte("")); res.Title != "" {
		t.Errorf("title = %q, want empty", res.Title)
	}
	if res := Parse([]byte("\n \n\t\n")); res.Title != "" {
		t.Errorf("title = %q, want empty", res.Title)
	}
}

func TestTags(t *testing.T) {
	content := []byte("---\ntags:\n  - meeting\n  - project-x\n---\n\nBody with #inline and #project-x twice.\n")
	res := Parse(content)
	want := []string{"meeting", "project-x", "inline"}
	if !reflect.DeepEqual(res.Tags, want) {
		t.Errorf("tags = %v, want %v", res.Tags, want)
	}
}

func TestHeadingIsNotATag(t *testing.T) {
	res := Parse([]byte("# Heading\n\nplain body\n"))
	if len(res.Tags) != 0 {
		t.Errorf("tags = %v, want none", res.Tags)
	}
}

func TestMalformedFrontmatterFallsBackToBody(t *testing.T) {
	content := []byte("---\n: not yaml [\n---\nbody text\n")
	res := Parse(content)
	if res.Body != string(content) {
		t.Errorf("body should be the whole content, got %q", res.Body)
	}
}

func TestBodyExcludesFrontmatter(t *testing.T) {
	res := Parse([]byte("---\ntitle: T\n---\n\nactual body\n"))
	if res.Body != "actual body\n" {
		t.Errorf("body = %q", res.Body)
	}
}
