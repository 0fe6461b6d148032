package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/aidarkhanov/nanoid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coala/coala-quickstart/build-tools/pkg"
	"github.com/coala/coala-quickstart/build-tools/pkg/buildsys"
	"github.com/coala/coala-quickstart/build-tools/pkg/config"
	"github.com/coala/coala-quickstart/build-tools/pkg/locale"
	"github.com/coala/coala-quickstart/build-tools/pkg/metadata"
)

// app holds the state shared by all subcommands of a single invocation
type app struct {
	logOut io.Writer
	logger zerolog.Logger

	projectRoot string
	dryRun      bool

	ctx     context.Context
	cfg     *config.Config
	pkg     *metadata.Package
	invoker buildsys.Invoker
	status  buildsys.Status
}

func newApp(logOut io.Writer) *app {
	return &app{
		logOut: logOut,
		logger: zerolog.New(NewConsoleWriter(logOut)),
	}
}

// prepare runs before every subcommand. It loads the configuration and the package metadata;
// if any of the input files is missing no command runs. The help command needs neither.
func (a *app) prepare(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" {
		return nil
	}

	root := a.projectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		root, err = pkg.GetProjectRoot(wd)
		if err != nil {
			return err
		}
	}
	a.projectRoot = root

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var logger zerolog.Logger
	if cfg.Log.JSON {
		logger = zerolog.New(a.logOut).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(NewConsoleWriter(a.logOut))
	}
	a.logger = logger.Level(cfg.LogLevel()).With().Str("run", nanoid.New()).Logger()
	a.ctx = buildsys.WithLogger(context.Background(), &a.logger)

	a.pkg, err = metadata.Load(root)
	if err != nil {
		return err
	}

	a.logger.Debug().
		Str("root", root).
		Str("version", a.pkg.Version).
		Msg("loaded package metadata")

	if a.invoker == nil {
		a.invoker = buildsys.NewShellInvoker(root, a.dryRun)
	}

	return nil
}

func (a *app) run(name string, opts buildsys.Options) error {
	pkg.PrintTask(fmt.Sprintf("%s: %s %s", name, a.pkg.Name, a.pkg.Version))

	status, err := buildsys.Run(a.ctx, name, a.invoker, opts)
	if err != nil {
		return err
	}

	a.status = status
	if status.OK() {
		pkg.PrintSubtask("Done")
	} else {
		pkg.PrintError(fmt.Sprintf("%s failed with status %d", name, status))
	}

	return nil
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "setup",
		Short: "Build tools for coala-quickstart",
		Long: `This command bundles the tasks that are needed to develop coala-quickstart.
It runs the test suite, builds the documentation and reports the package metadata.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.dryRun, "dry", "n", false, "dry run; only print the commands, don't execute anything")
	rootCmd.PersistentFlags().StringVarP(&a.projectRoot, "project-root", "C", "", "project directory (default: searched upwards from the working directory)")

	rootCmd.AddCommand(newTestCmd(a))
	rootCmd.AddCommand(newDocsCmd(a))
	rootCmd.AddCommand(newMetadataCmd(a))

	return rootCmd
}

// Execute runs the CLI and returns the exit code for the process
func Execute() int {
	a := newApp(os.Stderr)

	// every external program inherits the locale so this has to happen before anything else
	if _, err := locale.InitializeSystem(runtime.GOOS); err != nil {
		a.logger.Error().Err(err).Msg("Failed to configure the locale")
		return 1
	}

	err := newRootCmd(a).Execute()
	if err != nil {
		a.logger.Error().Err(err).Msg("Command failed")
		return 1
	}

	return int(a.status)
}
