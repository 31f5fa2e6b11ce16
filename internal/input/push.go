package input

import (
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/config"
	"github.com/broadinstitute/methods-repo/internal/repository"
	"github.com/broadinstitute/methods-repo/internal/synopsis"
)

// PushOptions is the raw push input; empty strings mean "not given".
type PushOptions struct {
	PayloadFile       string
	Namespace         string
	Name              string
	DocumentationFile string
	Synopsis          string
	EntityType        config.EntityType
}

// Assembler fills in push defaults from the local environment.
type Assembler struct {
	CurrentUser func() (string, error)
	Editor      synopsis.Editor
	Logger      *slog.Logger
}

// Entity derives the push body from opts. The editor is only started when
// no synopsis was given, and only after every file has been read.
func (a *Assembler) Entity(opts PushOptions) (repository.Entity, error) {
	namespace, err := Namespace(opts.Namespace, a.CurrentUser)
	if err != nil {
		return repository.Entity{}, err
	}

	documentation, err := Documentation(opts.DocumentationFile)
	if err != nil {
		return repository.Entity{}, err
	}
	if opts.DocumentationFile != "" {
		a.Logger.Debug("read documentation", "file", opts.DocumentationFile, "bytes", len(documentation))
	}

	payload, err := ReadTrimmed(opts.PayloadFile)
	if err != nil {
		return repository.Entity{}, errors.Wrapf(err, errors.CodeInvalidInput, "reading payload file %s", opts.PayloadFile)
	}

	syn := opts.Synopsis
	if syn == "" {
		syn, err = synopsis.Capture(a.Editor)
		if err != nil {
			return repository.Entity{}, err
		}
	}

	e := repository.Entity{
		Namespace:     namespace,
		Name:          Name(opts.Name, opts.PayloadFile),
		Synopsis:      syn,
		Documentation: documentation,
		EntityType:    opts.EntityType,
		Payload:       payload,
	}
	return e, e.Validate()
}

// CurrentUser returns the login name of the invoking user.
func CurrentUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "looking up current user")
	}
	return u.Username, nil
}

// Namespace returns explicit, or the local account name when it is empty.
func Namespace(explicit string, currentUser func() (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return currentUser()
}

// Name returns explicit, or the payload file's base name without its
// extension. Dotfiles keep their full name.
func Name(explicit, payloadFile string) string {
	if explicit != "" {
		return explicit
	}
	base := filepath.Base(payloadFile)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

// Documentation reads the documentation file, or returns "" when none was
// given.
func Documentation(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	doc, err := ReadTrimmed(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.CodeInvalidInput, "reading documentation file %s", path)
	}
	return doc, nil
}

// ReadTrimmed returns the whole file with surrounding whitespace removed.
// The content itself is not validated; the repository does that.
func ReadTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
