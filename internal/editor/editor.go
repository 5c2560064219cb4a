package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DefaultEditor is used when $EDITOR is unset.
const DefaultEditor = "vi"

// Edit writes the initial text to a temporary file, opens it in the user's
// editor, blocks until the editor exits, and returns the edited contents.
// Fails when the editor program cannot be run.
func Edit(initial string) (string, error) {
	command := os.Getenv("EDITOR")
	if command == "" {
		command = DefaultEditor
	}

	path := filepath.Join(os.TempDir(), "kith-"+uuid.NewString()+".txt")
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		return "", fmt.Errorf("writing editor file: %w", err)
	}
	defer os.Remove(path)

	// $EDITOR may carry arguments ("code --wait").
	parts := strings.Fields(command)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running editor %q: %w", command, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading editor file: %w", err)
	}
	return string(edited), nil
}
