// Package opener launches an external editor or the system default
// handler on a saved note.
package opener

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Open launches editor on path. An empty editor falls back to the
// platform's default handler for the file type. The launch is
// fire-and-forget: the editor process is not waited on.
func Open(path, editor string) error {
	cmd := command(path, editor)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opener: launch %q: %w", editor, err)
	}
	// Detach; the note is already on disk and the caller only needs to
	// know whether the launch itself failed.
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(path, editor string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		if editor == "" {
			return exec.Command("open", path)
		}
		return exec.Command("open", "-a", editor, path)
	case "windows":
		if editor == "" {
			return exec.Command("cmd", "/c", "start", "", path)
		}
		return exec.Command(editor, path)
	default:
		if editor == "" {
			return exec.Command("xdg-open", path)
		}
		return exec.Command(editor, path)
	}
}
