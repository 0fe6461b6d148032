// Package locale makes sure that the build tools and every program they start run with a
// UTF-8 locale. Sphinx and pytest fail in odd ways under the plain C locale.
package locale

import (
	"os"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

const (
	// Primary is tried first
	Primary = "C.UTF-8"
	// Fallback is used if Primary is rejected
	Fallback = "en_US.UTF-8"
)

// Setter switches the process to the named locale or returns an error if it's not supported
type Setter func(name string) error

// Current returns the effective locale according to the usual precedence of LC_ALL, LC_CTYPE and LANG.
func Current(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if value := getenv(name); value != "" {
			return value
		}
	}

	return ""
}

// IsDefault reports whether value means "no locale configured"
func IsDefault(value string) bool {
	switch value {
	case "", "C", "POSIX":
		return true
	}

	return false
}

// Initialize switches to a UTF-8 locale on non-Windows systems if none is configured.
// It returns the locale that is active afterwards.
func Initialize(goos string, getenv func(string) string, set Setter) (string, error) {
	current := Current(getenv)
	if goos == "windows" || !IsDefault(current) {
		return current, nil
	}

	err := set(Primary)
	if err == nil {
		return Primary, nil
	}

	fallbackErr := set(Fallback)
	if fallbackErr != nil {
		return current, eris.Wrapf(fallbackErr, "failed to set locale %s after %s was rejected (%s)", Fallback, Primary, err.Error())
	}

	return Fallback, nil
}

// Normalize returns the form used by `locale -a` on glibc (lowercase, no dashes in the codeset)
func Normalize(name string) string {
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 1 {
		return name
	}

	codeset := strings.ToLower(strings.ReplaceAll(parts[1], "-", ""))
	return parts[0] + "." + codeset
}

// ListAvailable returns the locales reported by `locale -a`
func ListAvailable() ([]string, error) {
	output, err := exec.Command("locale", "-a").Output()
	if err != nil {
		return nil, eris.Wrap(err, "failed to run locale -a")
	}

	result := []string{}
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}

	return result, nil
}

// EnvSetter returns a Setter that exports LC_ALL after checking the name against the list
// returned by available. If the list can't be retrieved, every name is accepted.
func EnvSetter(available func() ([]string, error)) Setter {
	return func(name string) error {
		locales, err := available()
		if err == nil {
			found := false
			for _, item := range locales {
				if Normalize(item) == Normalize(name) {
					found = true
					break
				}
			}

			if !found {
				return eris.Errorf("unsupported locale %s", name)
			}
		}

		return os.Setenv("LC_ALL", name)
	}
}

// InitializeSystem runs Initialize against the real process environment
func InitializeSystem(goos string) (string, error) {
	return Initialize(goos, os.Getenv, EnvSetter(ListAvailable))
}
