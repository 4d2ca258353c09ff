package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bfkit/machine"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bfkit.yaml")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)

	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	assert.NoError(err)
	assert.Equal(1000, cfg.TapeCapacity)
	assert.Equal("\t", cfg.Indent)
	assert.True(cfg.Halt)
	assert.Equal("error", cfg.EOF)
	assert.False(cfg.Macros)
	assert.False(cfg.Verbose)
	assert.False(cfg.Trace)
	assert.Equal("", cfg.Output)

	policy, err := cfg.EOFPolicy()
	assert.NoError(err)
	assert.Equal(machine.EOF_ERROR, policy)
}

func TestLoadFile(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, `
tape_capacity: 30000
indent: "    "
halt: false
eof: zero
macros: true
defines:
  WIDTH: 8
`)

	cfg, err := Load(path, nil)
	assert.NoError(err)
	assert.Equal(30000, cfg.TapeCapacity)
	assert.Equal("    ", cfg.Indent)
	assert.False(cfg.Halt)
	assert.Equal("zero", cfg.EOF)
	assert.True(cfg.Macros)
	assert.Equal(map[string]int{"WIDTH": 8}, cfg.Defines)
}

func TestLoadDefaultFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	t.Chdir(dir)
	assert.NoError(os.WriteFile(DefaultConfigFile, []byte("eof: keep\n"), 0o600))

	cfg, err := Load("", nil)
	assert.NoError(err)
	assert.Equal("keep", cfg.EOF)
}

func TestLoadMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(err)
}

func TestLoadEnv(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, "tape_capacity: 30000\n")
	t.Setenv("BFKIT_TAPE_CAPACITY", "64")
	t.Setenv("BFKIT_VERBOSE", "true")

	cfg, err := Load(path, nil)
	assert.NoError(err)
	assert.Equal(64, cfg.TapeCapacity)
	assert.True(cfg.Verbose)
}

func TestLoadFlags(t *testing.T) {
	assert := assert.New(t)

	path := writeConfig(t, "tape_capacity: 30000\neof: zero\n")
	t.Setenv("BFKIT_TAPE_CAPACITY", "64")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("tape-capacity", 1000, "")
	flags.String("eof", "error", "")
	flags.Bool("watch", false, "")
	assert.NoError(flags.Parse([]string{"--tape-capacity", "9", "--watch"}))

	cfg, err := Load(path, flags)
	assert.NoError(err)
	assert.Equal(9, cfg.TapeCapacity)
	// Unchanged flags do not override the file.
	assert.Equal("zero", cfg.EOF)
}

func TestLoadInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(writeConfig(t, "tape_capacity: 0\n"), nil)
	assert.True(errors.Is(err, ErrCapacity))

	_, err = Load(writeConfig(t, "eof: wrap\n"), nil)
	assert.True(errors.Is(err, machine.ErrEOFPolicy))
}
