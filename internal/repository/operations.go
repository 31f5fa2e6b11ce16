package repository

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/config"
)

// Push creates a new snapshot of e. The server answers 201 with the
// stored entity.
func (c *Client) Push(ctx context.Context, e Entity) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "encoding push request")
	}
	return c.Execute(ctx, http.MethodPost, c.endpoint.Path(), body, http.StatusCreated)
}

// Pull fetches one snapshot. With onlyPayload the server returns just the
// WDL or configuration JSON.
func (c *Client) Pull(ctx context.Context, namespace, name string, snapshotID int, onlyPayload bool) (string, error) {
	return c.Execute(ctx, http.MethodGet, PullPath(c.endpoint, namespace, name, snapshotID, onlyPayload), nil, http.StatusOK)
}

// List queries the collection with the given filters.
func (c *Client) List(ctx context.Context, f Filter) (string, error) {
	qs, err := f.QueryString()
	if err != nil {
		return "", err
	}
	return c.Execute(ctx, http.MethodGet, c.endpoint.Path()+qs, nil, http.StatusOK)
}

// Redact deletes one snapshot (and, for methods, its configurations).
func (c *Client) Redact(ctx context.Context, namespace, name string, snapshotID int) (string, error) {
	return c.Execute(ctx, http.MethodDelete, c.endpoint.SnapshotPath(namespace, name, snapshotID), nil, http.StatusOK)
}

// PullPath builds the request path for Pull.
func PullPath(endpoint config.Endpoint, namespace, name string, snapshotID int, onlyPayload bool) string {
	path := endpoint.SnapshotPath(namespace, name, snapshotID)
	if onlyPayload {
		path += "?onlyPayload=true"
	}
	return path
}
