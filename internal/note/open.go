package note

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
)

// OpenFromPath opens the note file in the configured editor and blocks
// until the editor exits.
func OpenFromPath(path string) error {
	cmd := editorCommand(path)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// BubbleteaOpenFromPath hands the editor process to the running
// bubbletea program so the terminal is released while editing.
func BubbleteaOpenFromPath(path string) tea.Cmd {
	return tea.ExecProcess(editorCommand(path), func(err error) tea.Msg {
		return EditorFinishedMsg{Err: err}
	})
}

// EditorFinishedMsg reports the editor process result back to the TUI.
type EditorFinishedMsg struct {
	Err error
}

func editorCommand(path string) *exec.Cmd {
	editor := viper.GetString("editor")
	if editor == "" {
		editor = "vim"
	}
	editorArgs := viper.GetString("editorargs")

	var cmdArgs []string
	if editorArgs != "" {
		cmdArgs = strings.Fields(editorArgs)
		cmdArgs = append([]string{path}, cmdArgs...)
	} else {
		cmdArgs = []string{path}
	}

	return exec.Command(editor, cmdArgs...)
}
