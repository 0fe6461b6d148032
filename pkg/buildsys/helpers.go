package buildsys

import (
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/shell"
)

// SplitArgs splits a single option value into separate arguments using shell quoting rules.
// Variables are resolved against the process environment.
func SplitArgs(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return []string{}, nil
	}

	fields, err := shell.Fields(value, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse arguments %q", value)
	}

	return fields, nil
}
