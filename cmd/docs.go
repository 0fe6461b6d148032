package cmd

import (
	"github.com/spf13/cobra"

	"github.com/coala/coala-quickstart/build-tools/pkg/buildsys"
)

func newDocsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Builds the HTML documentation",
		Long: `Generates the API documentation with sphinx-apidoc and builds the HTML pages with
Sphinx afterwards. Sphinx warnings are treated as errors. If the API doc step fails,
the HTML build is skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("docs", buildsys.Options{})
		},
	}
}
