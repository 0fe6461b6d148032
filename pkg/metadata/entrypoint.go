package metadata

import (
	"strings"

	"github.com/rotisserie/eris"
)

// EntryPoint maps an installed command to the Python function it runs
type EntryPoint struct {
	Name     string
	Module   string
	Function string
}

// ParseEntryPoint parses specs in the "name = module:function" form
func ParseEntryPoint(spec string) (EntryPoint, error) {
	var ep EntryPoint

	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		return ep, eris.Errorf("entry point %q is missing '='", spec)
	}

	ep.Name = strings.TrimSpace(parts[0])
	target := strings.TrimSpace(parts[1])

	pos := strings.LastIndex(target, ":")
	if pos > -1 {
		ep.Module = strings.TrimSpace(target[:pos])
		ep.Function = strings.TrimSpace(target[pos+1:])
	} else {
		ep.Module = target
	}

	if ep.Name == "" || ep.Module == "" || (pos > -1 && ep.Function == "") {
		return ep, eris.Errorf("malformed entry point %q", spec)
	}

	return ep, nil
}

// String returns the entry point in the same form ParseEntryPoint accepts
func (e EntryPoint) String() string {
	if e.Function == "" {
		return e.Name + " = " + e.Module
	}
	return e.Name + " = " + e.Module + ":" + e.Function
}
