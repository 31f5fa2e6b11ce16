package cli

import (
	"fmt"
	"io"

	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/auth"
)

// report writes err for a human reader. Credential failures get the fixed
// gcloud banner; structured errors print their message, then the cause.
func report(w io.Writer, err error) {
	if auth.IsUnavailable(err) {
		fmt.Fprintln(w, auth.UnavailableMessage)
		return
	}

	var pe errors.PlatformError
	if errors.As(err, &pe) {
		fmt.Fprintf(w, "Error: %s\n", pe.Message())
		if cause := pe.Unwrap(); cause != nil {
			fmt.Fprintln(w, cause)
		}
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err)
}
