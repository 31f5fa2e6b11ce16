package cli

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/broadinstitute/methods-repo/internal/repository"
)

// completeSnapshotArgs provides dynamic shell completion of NAMESPACE and
// NAME for pull and redact by asking the list endpoint. Any failure means
// no suggestions.
func (a *app) completeSnapshotArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if err := a.configure(); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	filter := repository.Filter{IncludedFields: []string{"namespace", "name", "synopsis"}}
	if len(args) == 1 {
		filter.Namespace = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := a.client().List(ctx, filter)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return snapshotCompletions(body, args, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// snapshotCompletions picks namespaces (no args yet) or names within
// args[0] out of a list response.
func snapshotCompletions(body string, args []string, toComplete string) []string {
	var entities []struct {
		Namespace string `json:"namespace"`
		Name      string `json:"name"`
		Synopsis  string `json:"synopsis"`
	}
	if err := json.Unmarshal([]byte(body), &entities); err != nil {
		return nil
	}

	seen := make(map[string]string)
	for _, e := range entities {
		candidate, desc := e.Namespace, "Namespace"
		if len(args) == 1 {
			if e.Namespace != args[0] {
				continue
			}
			candidate, desc = e.Name, e.Synopsis
		}
		if candidate == "" || !strings.HasPrefix(candidate, toComplete) {
			continue
		}
		if _, ok := seen[candidate]; !ok {
			seen[candidate] = desc
		}
	}

	completions := make([]string, 0, len(seen))
	for candidate, desc := range seen {
		completions = append(completions, formatCompletionLine(candidate, desc))
	}
	sort.Strings(completions)
	return completions
}

// formatCompletionLine renders "value<TAB>description", which cobra shows
// as a described suggestion.
func formatCompletionLine(value, desc string) string {
	if desc == "" {
		return value
	}
	return value + "\t" + desc
}
