package buildsys

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoker(t *testing.T) (*ShellInvoker, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	return &ShellInvoker{
		ProjectRoot: t.TempDir(),
		Stdin:       strings.NewReader(""),
		Stdout:      stdout,
		Stderr:      new(bytes.Buffer),
	}, stdout
}

func TestShellInvokerStatus(t *testing.T) {
	invoker, _ := newTestInvoker(t)
	ctx := testContext()

	status, err := invoker.Invoke(ctx, Step{Name: "ok", Args: []string{"true"}})
	require.NoError(t, err)
	assert.Equal(t, Success, status)

	status, err = invoker.Invoke(ctx, Step{Name: "fail", Args: []string{"false"}})
	require.NoError(t, err)
	assert.Equal(t, Status(1), status)

	status, err = invoker.Invoke(ctx, Step{Name: "exit", Args: []string{"exit", "3"}})
	require.NoError(t, err)
	assert.Equal(t, Status(3), status)
}

func TestShellInvokerOutput(t *testing.T) {
	invoker, stdout := newTestInvoker(t)

	status, err := invoker.Invoke(testContext(), Step{Name: "echo", Args: []string{"echo", "hello *", "$HOME"}})
	require.NoError(t, err)
	assert.Equal(t, Success, status)
	assert.Equal(t, "hello * $HOME\n", stdout.String())
}

func TestShellInvokerDir(t *testing.T) {
	invoker, stdout := newTestInvoker(t)
	require.NoError(t, os.Mkdir(filepath.Join(invoker.ProjectRoot, "docs"), 0o755))

	status, err := invoker.Invoke(testContext(), Step{Name: "pwd", Args: []string{"pwd"}, Dir: "docs"})
	require.NoError(t, err)
	assert.Equal(t, Success, status)
	assert.Equal(t, filepath.Join(invoker.ProjectRoot, "docs"), strings.TrimSpace(stdout.String()))

	_, err = invoker.Invoke(testContext(), Step{Name: "pwd", Args: []string{"pwd"}, Dir: "missing"})
	assert.Error(t, err)
}

func TestShellInvokerDryRun(t *testing.T) {
	invoker, _ := newTestInvoker(t)
	invoker.DryRun = true

	logs := new(bytes.Buffer)
	logger := zerolog.New(logs)
	ctx := WithLogger(context.Background(), &logger)

	status, err := invoker.Invoke(ctx, Step{Name: "exit", Args: []string{"exit", "3"}})
	require.NoError(t, err)
	assert.Equal(t, Success, status)
	assert.Contains(t, logs.String(), `"step":"exit"`)
	assert.Contains(t, logs.String(), `"message":"exit 3"`)
}

func TestShellInvokerRejectsBadSteps(t *testing.T) {
	invoker, _ := newTestInvoker(t)

	_, err := invoker.Invoke(testContext(), Step{Name: "empty"})
	assert.Error(t, err)

	_, err = invoker.Invoke(testContext(), Step{Name: "env", Args: []string{"true"}, Env: map[string]string{"1BAD": "x"}})
	assert.Error(t, err)
}

func TestFormatStep(t *testing.T) {
	line, err := FormatStep(DocsSteps()[1])
	require.NoError(t, err)
	assert.Equal(t, "make -C docs html SPHINXOPTS=-W", line)

	line, err = FormatStep(Step{
		Args: []string{"python3", "-m", "pytest", "-k", "not slow", ""},
		Env:  map[string]string{"PYTHONPATH": ".", "LC_ALL": "C.UTF-8"},
	})
	require.NoError(t, err)
	assert.Equal(t, "LC_ALL=C.UTF-8 PYTHONPATH=. python3 -m pytest -k 'not slow' ''", line)
}

func TestStepString(t *testing.T) {
	step := Step{Args: []string{"make", "html"}, Env: map[string]string{"B": "2", "A": "1"}}
	assert.Equal(t, "A=1 B=2 make html", step.String())
}
