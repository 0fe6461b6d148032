package cmd

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestConsoleWriter(t *testing.T) {
	out := new(bytes.Buffer)
	logger := zerolog.New(NewConsoleWriter(out))

	logger.Info().Str("step", "apidoc").Bool("command", true).Msg("sphinx-apidoc -f -o docs coala_quickstart")
	assert.Contains(t, out.String(), "apidoc: + sphinx-apidoc -f -o docs coala_quickstart")
	assert.NotContains(t, out.String(), "[green]")

	out.Reset()
	logger.Error().Err(eris.New("boom")).Msg("Command failed")
	assert.Contains(t, out.String(), "Error: Command failed")
	assert.Contains(t, out.String(), "boom")
}

func TestConsoleWriterRejectsGarbage(t *testing.T) {
	_, err := NewConsoleWriter(new(bytes.Buffer)).Write([]byte("not json"))
	assert.Error(t, err)
}
