// Package synopsis collects the one-line synopsis for a push, either from
// a flag or from an editor session in the style of git commit.
package synopsis

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jmgilman/go/errors"
)

// MaxLength is the longest synopsis the repository accepts.
const MaxLength = 80

// Prompt pre-populates the file handed to the editor. The leading blank
// line leaves the cursor where the synopsis goes.
const Prompt = "\n# Provide a 1-sentence synopsis (< 80 characters) in your first line. Subsequent lines are ignored"

// Editor edits a text file in place and returns once the user is done.
type Editor interface {
	EditText(path string) error
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(path string) error

func (f EditorFunc) EditText(path string) error {
	return f(path)
}

// Capture asks the user for a synopsis through ed. The first non-blank
// line of the edited file wins; everything after it is ignored. The
// temporary file is removed on every return path.
func Capture(ed Editor) (string, error) {
	f, err := os.CreateTemp("", "methods-repo-synopsis-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "creating synopsis file")
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(Prompt); err != nil {
		f.Close()
		return "", errors.Wrap(err, errors.CodeInternal, "writing synopsis file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "writing synopsis file")
	}

	if err := ed.EditText(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "reading synopsis file")
	}

	synopsis := FirstLine(string(data))
	if synopsis == "" {
		return "", errors.New(errors.CodeInvalidInput, "empty synopsis, aborting push")
	}
	if err := Validate(synopsis); err != nil {
		return "", err
	}
	return synopsis, nil
}

// FirstLine returns the first line of text that is not blank, trimmed.
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Validate rejects synopses longer than MaxLength characters.
func Validate(synopsis string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(synopsis))
	if n > MaxLength {
		return errors.Newf(errors.CodeInvalidInput,
			"synopsis must be at most %d characters, got %d", MaxLength, n)
	}
	return nil
}
