package cli

import (
	"fmt"
	"strconv"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"
)

// newPullCmd creates the `pull` command.
// Usage: methods_repo -m pull <NAMESPACE> <NAME> <SNAPSHOT_ID> [--onlyPayload]
func newPullCmd(a *app) *cobra.Command {
	var onlyPayload bool

	cmd := &cobra.Command{
		Use:   "pull <NAMESPACE> <NAME> <SNAPSHOT_ID>",
		Short: "Get a specific method snapshot from the FireCloud Methods Repository",
		Long: `Fetches one snapshot and prints the repository's response as-is.

Example:
  methods_repo -m pull broad align 3 --onlyPayload`,
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

			body, err := a.client().Pull(cmd.Context(), args[0], args[1], snapshotID, onlyPayload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&onlyPayload, "onlyPayload", "o", false, "Get only the payload for the entity of interest (the WDL or configuration JSON)")

	return cmd
}

func parseSnapshotID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Newf(errors.CodeInvalidInput, "invalid SNAPSHOT_ID %q: must be an integer", raw)
	}
	return id, nil
}
