package buildsys

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
)

const (
	// DocsDir is the Sphinx project directory
	DocsDir = "docs"
	// DocsPackage is the Python package the API docs are generated for
	DocsPackage = "coala_quickstart"
	// DefaultPython is used when Options.Python is empty
	DefaultPython = "python3"
)

// commandTable must not be modified after init; it's only exposed through Lookup and Commands.
var commandTable = map[string]Handler{
	"docs": buildDocs,
	"test": runTests,
}

// Lookup returns the handler registered for name
func Lookup(name string) (Handler, bool) {
	h, ok := commandTable[name]
	return h, ok
}

// Commands returns the sorted names of all build commands
func Commands() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Run executes the build command name
func Run(ctx context.Context, name string, invoker Invoker, opts Options) (Status, error) {
	handler, ok := Lookup(name)
	if !ok {
		return Success, eris.Errorf("Command %s not found", name)
	}

	return handler(ctx, invoker, opts)
}

// DocsSteps returns the API doc extraction step followed by the HTML build
func DocsSteps() []Step {
	return []Step{
		{
			Name: "apidoc",
			Args: []string{"sphinx-apidoc", "-f", "-o", DocsDir, DocsPackage},
		},
		{
			Name: "html",
			Args: []string{"make", "-C", DocsDir, "html", "SPHINXOPTS=-W"},
		},
	}
}

// PytestSteps returns the step which launches pytest with the configured arguments
func PytestSteps(opts Options) []Step {
	python := opts.Python
	if python == "" {
		python = DefaultPython
	}

	args := make([]string, 0, 3+len(opts.PytestArgs))
	args = append(args, python, "-m", "pytest")
	args = append(args, opts.PytestArgs...)

	return []Step{{Name: "pytest", Args: args}}
}

func buildDocs(ctx context.Context, invoker Invoker, _ Options) (Status, error) {
	return RunPipeline(ctx, invoker, DocsSteps())
}

func runTests(ctx context.Context, invoker Invoker, opts Options) (Status, error) {
	log(ctx).Debug().Strs("args", opts.PytestArgs).Msg("running pytest")
	return RunPipeline(ctx, invoker, PytestSteps(opts))
}
