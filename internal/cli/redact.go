package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRedactCmd creates the `redact` command.
// Usage: methods_repo -m redact <NAMESPACE> <NAME> <SNAPSHOT_ID>
func newRedactCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redact <NAMESPACE> <NAME> <SNAPSHOT_ID>",
		Short: "Redact a specific method snapshot and all of its associated configurations",
		Long: `Redacts one snapshot from the FireCloud Methods Repository. Redacting a
method snapshot also redacts every configuration that refers to it.

Example:
  methods_repo -m redact broad align 3`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: a.completeSnapshotArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshotID, err := parseSnapshotID(args[2])
			if err != nil {
				return err
			}
			if err := a.configure(); err != nil {
				return err
			}

			body, err := a.client().Redact(cmd.Context(), args[0], args[1], snapshotID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
}
