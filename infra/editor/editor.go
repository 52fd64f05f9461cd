package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does not run the editor; callers hand the *exec.Cmd to tea.ExecProcess so
// Bubble Tea releases the terminal while it runs.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const marker = "# ---- write your comment below this line ----"

// Cmd writes a template naming the commented content to a temp file and
// returns the editor command for it along with the file path.
func (e *EnvEditor) Cmd(draft, title string) (*exec.Cmd, string, error) {
	editorCmd := strings.TrimSpace(os.Getenv("EDITOR"))
	if editorCmd == "" {
		editorCmd = "vi"
	}
	fields := strings.Fields(editorCmd)

	tmpFile, err := os.CreateTemp("", "espectro-comment-*.txt")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	header := "# Commenting on: " + title + "\n" +
		"# Save and exit to post. Leave it empty to cancel.\n" +
		marker + "\n"
	if _, err := tmpFile.WriteString(header + draft); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	cmd := exec.Command(fields[0], append(fields[1:], tmpPath)...)
	return cmd, tmpPath, nil
}

// ReadContent reads the temp file, drops the template header, trims
// whitespace, and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, marker); idx != -1 {
		content = content[idx+len(marker):]
	}
	return strings.TrimSpace(content), nil
}
