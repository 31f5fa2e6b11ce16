package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/broadinstitute/methods-repo/internal/input"
)

// newPushCmd creates the `push` command.
// Usage: methods_repo -m push <PAYLOAD_FILE> -t Workflow
func newPushCmd(a *app) *cobra.Command {
	var opts input.PushOptions

	cmd := &cobra.Command{
		Use:   "push <PAYLOAD_FILE>",
		Short: "Push a method to the FireCloud Methods Repository",
		Long: `Creates a new snapshot from PAYLOAD_FILE: the method description in WDL for
tasks and workflows, or JSON for configurations.

When --synopsis is not given, $EDITOR is opened so you can write one.

Example:
  methods_repo -m push align.wdl -t Workflow -y "Align reads to hg38"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.PayloadFile = args[0]
			return runPush(cmd, a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Namespace, "namespace", "s", "", "The namespace for method addition. Default value is your user login name")
	flags.StringVarP(&opts.Name, "name", "n", "", "The method name to provide for method addition. Default is the name of the PAYLOAD_FILE")
	flags.StringVarP(&opts.DocumentationFile, "documentation", "d", "", "A file containing user documentation. Plain text, HTML or GitHub markdown")
	flags.StringVarP(&opts.Synopsis, "synopsis", "y", "", "The synopsis for the entity you are pushing (at most 80 characters)")
	addEntityTypeFlag(cmd, &opts.EntityType, "The type of the entity you are pushing")
	_ = cmd.MarkFlagRequired("entityType")

	return cmd
}

func runPush(cmd *cobra.Command, a *app, opts input.PushOptions) error {
	if err := a.configure(); err != nil {
		return err
	}

	assembler := &input.Assembler{
		CurrentUser: a.deps.currentUser,
		Editor:      a.deps.editor(a.cfg.Editor),
		Logger:      a.logger,
	}
	entity, err := assembler.Entity(opts)
	if err != nil {
		return err
	}

	body, err := a.client().Push(cmd.Context(), entity)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Successfully pushed. Response:")
	fmt.Fprintln(out, body)
	return nil
}
