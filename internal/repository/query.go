package repository

import (
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/config"
)

// Filter holds the metadata filters accepted by the list endpoint. Zero
// values are left out of the query.
type Filter struct {
	IncludedFields []string          `url:"includedField,omitempty"`
	ExcludedFields []string          `url:"excludedField,omitempty"`
	Namespace      string            `url:"namespace,omitempty"`
	Name           string            `url:"name,omitempty"`
	SnapshotID     int               `url:"snapshotId,omitempty"`
	Synopsis       string            `url:"synopsis,omitempty"`
	Documentation  string            `url:"documentation,omitempty"`
	Owner          string            `url:"owner,omitempty"`
	Payload        string            `url:"payload,omitempty"`
	EntityType     config.EntityType `url:"entityType,omitempty"`
}

// filterKeys fixes the order in which filters appear in the query string.
var filterKeys = []string{
	"includedField",
	"excludedField",
	"namespace",
	"name",
	"snapshotId",
	"synopsis",
	"documentation",
	"owner",
	"payload",
	"entityType",
}

// QueryString renders the filter as "?k=v&k=v", or "" when no filter is
// set. Values are written as given, without percent-encoding, because
// existing API consumers send them that way.
func (f Filter) QueryString() (string, error) {
	values, err := query.Values(f)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInvalidInput, "encoding list filters")
	}

	var b strings.Builder
	for _, key := range filterKeys {
		for _, v := range values[key] {
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('&')
		}
	}
	if b.Len() == 0 {
		return "", nil
	}
	return "?" + strings.TrimSuffix(b.String(), "&"), nil
}
