package buildsys

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

var safeWord = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

var defaultExecHandler = interp.DefaultExecHandler(2 * time.Second)

func execHandler(ctx context.Context, args []string) error {
	if len(args) > 0 {
		log(ctx).Debug().Str("program", args[0]).Msg("starting external program")
	}

	return defaultExecHandler(ctx, args)
}

var defaultOpenHandler = interp.DefaultOpenHandler()

func openHandler(ctx context.Context, path string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	if path == "/dev/null" {
		path = os.DevNull
	}

	return defaultOpenHandler(ctx, path, flag, perm)
}

func shellWord(value string) *syntax.Word {
	var wordPart syntax.WordPart

	// words are passed verbatim; quoting them keeps globs and variables from being expanded
	if safeWord.MatchString(value) {
		wordPart = &syntax.Lit{Value: value}
	} else {
		wordPart = &syntax.SglQuoted{Value: value}
	}

	return &syntax.Word{Parts: []syntax.WordPart{wordPart}}
}

func stepCallExpr(step Step) (*syntax.CallExpr, error) {
	if len(step.Args) == 0 {
		return nil, eris.Errorf("step %s has no command", step.Name)
	}

	cmd := new(syntax.CallExpr)
	for _, name := range step.envNames() {
		if !syntax.ValidName(name) {
			return nil, eris.Errorf("step %s: invalid variable name %q", step.Name, name)
		}

		cmd.Assigns = append(cmd.Assigns, &syntax.Assign{
			Name:  &syntax.Lit{Value: name},
			Value: shellWord(step.Env[name]),
		})
	}

	cmd.Args = make([]*syntax.Word, len(step.Args))
	for a, arg := range step.Args {
		cmd.Args[a] = shellWord(arg)
	}

	return cmd, nil
}

// FormatStep renders the step the way it will be executed by the shell invoker
func FormatStep(step Step) (string, error) {
	cmd, err := stepCallExpr(step)
	if err != nil {
		return "", err
	}

	strBuffer := strings.Builder{}
	printer := syntax.NewPrinter(syntax.Minify(true))
	err = printer.Print(&strBuffer, cmd)
	if err != nil {
		return "", eris.Wrapf(err, "failed to print step %s", step.Name)
	}

	return strBuffer.String(), nil
}

// ShellInvoker runs steps with the mvdan.cc/sh interpreter
type ShellInvoker struct {
	ProjectRoot string
	DryRun      bool
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
}

// NewShellInvoker returns an invoker that is connected to the standard streams of this process
func NewShellInvoker(projectRoot string, dryRun bool) *ShellInvoker {
	return &ShellInvoker{
		ProjectRoot: projectRoot,
		DryRun:      dryRun,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Invoke executes the step and waits for it to finish
func (i *ShellInvoker) Invoke(ctx context.Context, step Step) (Status, error) {
	cmd, err := stepCallExpr(step)
	if err != nil {
		return Success, err
	}

	cmdLine, err := FormatStep(step)
	if err != nil {
		return Success, err
	}

	log(ctx).Info().
		Str("step", step.Name).
		Bool("command", true).
		Msg(cmdLine)

	if i.DryRun {
		return Success, nil
	}

	dir := i.ProjectRoot
	if step.Dir != "" {
		dir = filepath.Join(dir, step.Dir)
	}

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.ExecHandler(execHandler),
		interp.OpenHandler(openHandler),
		interp.StdIO(i.Stdin, i.Stdout, i.Stderr),
	)
	if err != nil {
		return Success, eris.Wrap(err, "Failed to initialize runner")
	}

	err = runner.Run(ctx, &syntax.Stmt{Cmd: cmd})
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return Status(status), nil
		}

		return Success, eris.Wrapf(err, "failed to run step %s", step.Name)
	}

	return Success, nil
}

// RunPipeline runs the steps in order. The first step that fails ends the pipeline and its
// status is returned; otherwise the status of the last step is returned.
func RunPipeline(ctx context.Context, invoker Invoker, steps []Step) (Status, error) {
	status := Success

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return status, err
		}

		var err error
		status, err = invoker.Invoke(ctx, step)
		if err != nil {
			return status, eris.Wrapf(err, "step %s failed", step.Name)
		}

		if !status.OK() {
			log(ctx).Warn().
				Str("step", step.Name).
				Int("status", int(status)).
				Msgf("%s exited with status %d", step.Name, status)

			return status, nil
		}
	}

	return status, nil
}
