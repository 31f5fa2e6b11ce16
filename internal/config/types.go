package config

import (
	"fmt"
	"strings"
)

// EntityType represents the kind of repository entity being managed.
type EntityType string

const (
	Task          EntityType = "Task"
	Workflow      EntityType = "Workflow"
	Configuration EntityType = "Configuration"
)

// ValidEntityTypes returns all supported entity types.
func ValidEntityTypes() []EntityType {
	return []EntityType{Task, Workflow, Configuration}
}

// IsValid checks whether the entity type is one of the known types.
func (t EntityType) IsValid() bool {
	switch t {
	case Task, Workflow, Configuration:
		return true
	}
	return false
}

// String implements pflag.Value.
func (t *EntityType) String() string {
	return string(*t)
}

// Set implements pflag.Value. Matching is exact, as the repository API is
// case sensitive.
func (t *EntityType) Set(value string) error {
	candidate := EntityType(value)
	if !candidate.IsValid() {
		return fmt.Errorf("must be one of %s", strings.Join(entityTypeNames(), ", "))
	}
	*t = candidate
	return nil
}

// Type implements pflag.Value.
func (t *EntityType) Type() string {
	return "entityType"
}

func entityTypeNames() []string {
	types := ValidEntityTypes()
	names := make([]string, len(types))
	for i, et := range types {
		names[i] = string(et)
	}
	return names
}

// Endpoint is the resource collection a command operates on.
type Endpoint string

const (
	Methods        Endpoint = "/methods"
	Configurations Endpoint = "/configurations"
)

// EndpointFor selects the collection from the -c/-m flags. Exactly one of
// them must be set.
func EndpointFor(configurations, methods bool) (Endpoint, error) {
	switch {
	case configurations && methods:
		return "", fmt.Errorf("only one of --configurations or --methods may be specified")
	case configurations:
		return Configurations, nil
	case methods:
		return Methods, nil
	}
	return "", fmt.Errorf("no appropriate endpoint specified: use --configurations or --methods")
}

// Path returns the collection path, e.g. "/methods".
func (e Endpoint) Path() string {
	return string(e)
}

// SnapshotPath builds "<endpoint>/<namespace>/<name>/<snapshotID>".
// Segments are joined verbatim.
func (e Endpoint) SnapshotPath(namespace, name string, snapshotID int) string {
	return fmt.Sprintf("%s/%s/%s/%d", e, namespace, name, snapshotID)
}
