package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coala/coala-quickstart/build-tools/pkg/buildsys"
)

func newTestCmd(a *app) *cobra.Command {
	testCmd := &cobra.Command{
		Use:   "test [-- pytest arguments...]",
		Short: "Runs the test suite with pytest",
		Long: `Runs pytest with the configured Python interpreter. The value of --pytest-args is split
like a shell would split it; arguments after -- are appended unchanged.
The exit code is the exit code of pytest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rawArgs, err := cmd.Flags().GetString("pytest-args")
			if err != nil {
				return err
			}

			pytestArgs, err := buildsys.SplitArgs(rawArgs)
			if err != nil {
				return err
			}

			return a.run("test", buildsys.Options{
				Python:     a.cfg.Python,
				PytestArgs: append(pytestArgs, args...),
			})
		},
	}

	testCmd.Flags().StringP("pytest-args", "a", "", "Arguments to pass to py.test")
	return testCmd
}
