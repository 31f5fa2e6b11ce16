package synopsis

import (
	"io"
	"os"
	osexec "os/exec"
	"strings"

	"github.com/jmgilman/go/errors"
)

// ExecEditor runs an external editor attached to the user's terminal.
type ExecEditor struct {
	// Command is the editor invocation, e.g. "vim" or "code --wait".
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Editor = (*ExecEditor)(nil)

// NewExecEditor returns an ExecEditor wired to the process's standard
// streams.
func NewExecEditor(command string) *ExecEditor {
	return &ExecEditor{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// EditText blocks until the editor exits. A non-zero exit is an error.
func (e *ExecEditor) EditText(path string) error {
	args := strings.Fields(e.Command)
	if len(args) == 0 {
		return errors.New(errors.CodeInvalidConfig, "no editor configured")
	}

	cmd := osexec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.CodeExecutionFailed, "there was a problem with the editor %q", e.Command)
	}
	return nil
}
