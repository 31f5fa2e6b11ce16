package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/broadinstitute/methods-repo/internal/repository"
)

// newListCmd creates the `list` command.
// Usage: methods_repo -m list [filters]
func newListCmd(a *app) *cobra.Command {
	var filter repository.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities in the FireCloud Methods Repository based on metadata",
		Long: `Lists entities matching every given filter. Filters left unset are not sent.

--includedFields and --excludedFields may be repeated or given a comma
separated list; each value is sent as its own query parameter.

Example:
  methods_repo -m list -s broad -t Workflow -f name -f synopsis`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.configure(); err != nil {
				return err
			}

			body, err := a.client().List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&filter.IncludedFields, "includedFields", "f", nil, "Metadata fields to include in the response entities")
	flags.StringSliceVarP(&filter.ExcludedFields, "excludedFields", "e", nil, "Metadata fields to exclude from the response entities")
	flags.StringVarP(&filter.Namespace, "namespace", "s", "", "The namespace of the entities you are trying to get")
	flags.StringVarP(&filter.Name, "name", "n", "", "The name of the entities you are trying to get")
	flags.IntVarP(&filter.SnapshotID, "snapshotId", "i", 0, "The snapshot-id of the entities you are trying to get")
	flags.StringVarP(&filter.Synopsis, "synopsis", "y", "", "The exact synopsis of the entities you are trying to get")
	flags.StringVarP(&filter.Documentation, "documentation", "d", "", "The exact documentation of the entities you are trying to get")
	flags.StringVarP(&filter.Owner, "owner", "o", "", "The owner of the entities you are trying to get")
	flags.StringVarP(&filter.Payload, "payload", "p", "", "The exact payload of the entities you are trying to get")
	addEntityTypeFlag(cmd, &filter.EntityType, "The type of the entities you are trying to get")

	return cmd
}
