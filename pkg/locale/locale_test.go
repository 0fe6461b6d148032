package locale

import (
	"os"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFunc(values map[string]string) func(string) string {
	return func(name string) string {
		return values[name]
	}
}

type recordingSetter struct {
	rejected map[string]bool
	calls    []string
}

func (r *recordingSetter) set(name string) error {
	r.calls = append(r.calls, name)
	if r.rejected[name] {
		return eris.Errorf("unsupported locale %s", name)
	}
	return nil
}

func TestCurrentPrecedence(t *testing.T) {
	assert.Equal(t, "", Current(envFunc(nil)))
	assert.Equal(t, "de_DE.UTF-8", Current(envFunc(map[string]string{"LANG": "de_DE.UTF-8"})))
	assert.Equal(t, "fr_FR.UTF-8", Current(envFunc(map[string]string{"LANG": "de_DE.UTF-8", "LC_CTYPE": "fr_FR.UTF-8"})))
	assert.Equal(t, "C", Current(envFunc(map[string]string{"LANG": "de_DE.UTF-8", "LC_ALL": "C"})))
}

func TestInitializeUnsetLocale(t *testing.T) {
	setter := &recordingSetter{}
	active, err := Initialize("linux", envFunc(nil), setter.set)
	require.NoError(t, err)
	assert.Equal(t, Primary, active)
	assert.Equal(t, []string{"C.UTF-8"}, setter.calls)
}

func TestInitializeFallback(t *testing.T) {
	setter := &recordingSetter{rejected: map[string]bool{Primary: true}}
	active, err := Initialize("darwin", envFunc(map[string]string{"LANG": "C"}), setter.set)
	require.NoError(t, err)
	assert.Equal(t, Fallback, active)
	assert.Equal(t, []string{"C.UTF-8", "en_US.UTF-8"}, setter.calls)
}

func TestInitializeBothRejected(t *testing.T) {
	setter := &recordingSetter{rejected: map[string]bool{Primary: true, Fallback: true}}
	_, err := Initialize("linux", envFunc(nil), setter.set)
	require.Error(t, err)
	assert.Len(t, setter.calls, 2)
}

func TestInitializeKeepsConfiguredLocale(t *testing.T) {
	setter := &recordingSetter{}
	active, err := Initialize("linux", envFunc(map[string]string{"LANG": "de_DE.UTF-8"}), setter.set)
	require.NoError(t, err)
	assert.Equal(t, "de_DE.UTF-8", active)
	assert.Empty(t, setter.calls)
}

func TestInitializeSkipsWindows(t *testing.T) {
	setter := &recordingSetter{}
	active, err := Initialize("windows", envFunc(nil), setter.set)
	require.NoError(t, err)
	assert.Equal(t, "", active)
	assert.Empty(t, setter.calls)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "C.utf8", Normalize("C.UTF-8"))
	assert.Equal(t, "en_US.utf8", Normalize("en_US.utf8"))
	assert.Equal(t, "POSIX", Normalize("POSIX"))
}

func TestEnvSetter(t *testing.T) {
	t.Setenv("LC_ALL", "")

	set := EnvSetter(func() ([]string, error) {
		return []string{"C", "C.utf8", "POSIX"}, nil
	})

	require.NoError(t, set("C.UTF-8"))
	assert.Equal(t, "C.UTF-8", os.Getenv("LC_ALL"))

	assert.Error(t, set("en_US.UTF-8"))
	assert.Equal(t, "C.UTF-8", os.Getenv("LC_ALL"))
}

func TestEnvSetterWithoutListing(t *testing.T) {
	t.Setenv("LC_ALL", "")

	set := EnvSetter(func() ([]string, error) {
		return nil, eris.New("locale: command not found")
	})

	require.NoError(t, set("en_US.UTF-8"))
	assert.Equal(t, "en_US.UTF-8", os.Getenv("LC_ALL"))
}
