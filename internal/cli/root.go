package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/jmgilman/go/errors"
	"github.com/spf13/cobra"

	"github.com/broadinstitute/methods-repo/internal/auth"
	"github.com/broadinstitute/methods-repo/internal/config"
	"github.com/broadinstitute/methods-repo/internal/input"
	"github.com/broadinstitute/methods-repo/internal/repository"
	"github.com/broadinstitute/methods-repo/internal/synopsis"
)

// version is set at build time via -ldflags.
var version = "dev"

// deps are the outside-world capabilities a command uses. Tests swap them
// for fakes.
type deps struct {
	resolver    func(logger *slog.Logger) auth.Resolver
	editor      func(command string) synopsis.Editor
	currentUser func() (string, error)
	getenv      func(string) string
	logOutput   io.Writer
}

func defaultDeps() deps {
	return deps{
		resolver: func(logger *slog.Logger) auth.Resolver {
			return auth.NewGoogleResolver(logger)
		},
		editor: func(command string) synopsis.Editor {
			return synopsis.NewExecEditor(command)
		},
		currentUser: input.CurrentUser,
		getenv:      os.Getenv,
		logOutput:   os.Stderr,
	}
}

// rootOptions holds the global flags.
type rootOptions struct {
	url            string
	insecure       bool
	configurations bool
	methods        bool
	verbose        bool
}

// app carries state shared by every subcommand of one invocation.
type app struct {
	deps   deps
	opts   rootOptions
	cfg    config.Config
	logger *slog.Logger
}

// configure validates the global flags and builds the Config. Commands
// call it before doing any work.
func (a *app) configure() error {
	endpoint, err := config.EndpointFor(a.opts.configurations, a.opts.methods)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "selecting endpoint")
	}
	a.cfg = config.New(a.opts.url, a.opts.insecure, endpoint, a.opts.verbose, a.deps.getenv)
	a.logger = newLogger(a.deps.logOutput, a.cfg.LogLevel)
	return nil
}

func (a *app) client() *repository.Client {
	return repository.New(a.cfg, a.deps.resolver(a.logger), a.logger)
}

// NewRootCmd creates the top-level `methods_repo` command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	a := &app{deps: d}

	root := &cobra.Command{
		Use:   "methods_repo",
		Short: "CLI for accessing the FireCloud methods repository",
		Long: `methods_repo pushes, pulls, lists and redacts methods (tasks and workflows)
and method configurations in the FireCloud methods repository.

Requests are authorized with your Google application default credentials.
Run 'gcloud auth application-default login' first if you have not already.

Exactly one of --methods or --configurations selects the collection.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.url, "url", "u", config.DefaultURL, "FireCloud API location")
	flags.BoolVarP(&a.opts.insecure, "insecure", "k", false, "Use insecure TLS (allow self-signed certificates)")
	flags.BoolVarP(&a.opts.configurations, "configurations", "c", false, "Operate on method configurations, via the /configurations endpoint")
	flags.BoolVarP(&a.opts.methods, "methods", "m", false, "Operate on tasks and workflows, via the /methods endpoint")
	flags.BoolVar(&a.opts.verbose, "verbose", false, "Log requests and responses to stderr")

	root.AddCommand(newPushCmd(a))
	root.AddCommand(newPullCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newRedactCmd(a))

	return root
}

// Execute runs the root command.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}
