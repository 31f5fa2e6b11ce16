package repository

import (
	"github.com/jmgilman/go/errors"

	"github.com/broadinstitute/methods-repo/internal/config"
	"github.com/broadinstitute/methods-repo/internal/synopsis"
)

// Entity is the body of a push request: a method (task or workflow) or a
// method configuration.
type Entity struct {
	Namespace     string            `json:"namespace"`
	Name          string            `json:"name"`
	Synopsis      string            `json:"synopsis"`
	Documentation string            `json:"documentation"`
	EntityType    config.EntityType `json:"entityType"`
	Payload       string            `json:"payload"` // WDL for methods, JSON for configurations
}

// Validate checks the client-side preconditions for a push.
func (e Entity) Validate() error {
	if !e.EntityType.IsValid() {
		return errors.Newf(errors.CodeInvalidInput, "invalid entity type %q", e.EntityType)
	}
	return synopsis.Validate(e.Synopsis)
}
