package repository

import (
	"fmt"
	"net/http"

	"github.com/jmgilman/go/errors"
)

// CodeUnexpectedStatus is used for status mismatches that have no more
// specific code.
const CodeUnexpectedStatus errors.ErrorCode = "UNEXPECTED_STATUS"

// StatusError describes a response whose status differed from the one
// the operation expects. Its text is the main debugging aid for API
// mismatches, so it carries the request as well as the response.
type StatusError struct {
	Path        string
	RequestBody []byte
	StatusCode  int
	Status      string // e.g. "404 Not Found"
	Body        []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request URL: %s\nRequest body:\n%s\nResponse:\n%s %s",
		e.Path, e.RequestBody, e.Status, e.Body)
}

func statusError(path string, requestBody []byte, code int, status string, body []byte) errors.PlatformError {
	se := &StatusError{
		Path:        path,
		RequestBody: requestBody,
		StatusCode:  code,
		Status:      status,
		Body:        body,
	}
	return errors.Wrap(se, codeForStatus(code), "HTTP request failed")
}

// codeForStatus maps an HTTP status onto the shared error codes.
func codeForStatus(status int) errors.ErrorCode {
	switch {
	case status == http.StatusNotFound:
		return errors.CodeNotFound
	case status == http.StatusConflict:
		return errors.CodeConflict
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return errors.CodeInvalidInput
	case status == http.StatusUnauthorized:
		return errors.CodeUnauthorized
	case status == http.StatusForbidden:
		return errors.CodeForbidden
	case status >= 500:
		return errors.CodeUnavailable
	}
	return CodeUnexpectedStatus
}

func connectError(err error, url, method string) errors.PlatformError {
	return errors.Wrapf(err, errors.CodeNetwork, "could not connect to %s with method %s", url, method)
}
