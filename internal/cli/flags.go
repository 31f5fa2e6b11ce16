package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/broadinstitute/methods-repo/internal/config"
)

var _ pflag.Value = (*config.EntityType)(nil)

// addEntityTypeFlag registers -t/--entityType on cmd, restricted to the
// known entity types and completed from them.
func addEntityTypeFlag(cmd *cobra.Command, target *config.EntityType, usage string) {
	flags := cmd.Flags()
	flags.VarP(target, "entityType", "t", usage+" (Task, Workflow or Configuration)")

	_ = cmd.RegisterFlagCompletionFunc("entityType", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		types := config.ValidEntityTypes()
		names := make([]string, len(types))
		for i, et := range types {
			names[i] = string(et)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}
