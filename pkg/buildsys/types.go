package buildsys

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Status is the exit status of an external step or a whole command
type Status int

// Success is the only status that lets a pipeline continue
const Success Status = 0

// OK reports whether s is the success status
func (s Status) OK() bool {
	return s == Success
}

// Step describes a single external command
type Step struct {
	// Name is used in log messages
	Name string
	// Args contains the program followed by its arguments
	Args []string
	// Dir is relative to the project root. Empty means the project root itself.
	Dir string
	// Env holds variables that are only set for this step
	Env map[string]string
}

// String returns the command line of the step with its env assignments in front
func (s Step) String() string {
	parts := make([]string, 0, len(s.Env)+len(s.Args))
	for _, name := range s.envNames() {
		parts = append(parts, fmt.Sprintf("%s=%s", name, s.Env[name]))
	}

	return strings.Join(append(parts, s.Args...), " ")
}

func (s Step) envNames() []string {
	names := make([]string, 0, len(s.Env))
	for name := range s.Env {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Invoker executes one step and reports its exit status. A non-zero status is not an error;
// the error is reserved for cases where the step could not be started at all.
type Invoker interface {
	Invoke(ctx context.Context, step Step) (Status, error)
}

// InvokerFunc adapts a plain function to the Invoker interface
type InvokerFunc func(ctx context.Context, step Step) (Status, error)

// Invoke calls f(ctx, step)
func (f InvokerFunc) Invoke(ctx context.Context, step Step) (Status, error) {
	return f(ctx, step)
}

// Options contains the user supplied values for a command. Commands ignore the fields they
// don't use.
type Options struct {
	// Python is the interpreter used to launch the test framework
	Python string
	// PytestArgs are passed to the test framework unchanged
	PytestArgs []string
}

// Handler implements a build command
type Handler func(ctx context.Context, invoker Invoker, opts Options) (Status, error)
