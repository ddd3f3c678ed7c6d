package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aweris/filecache"
)

// resetFlags puts every flag of c and its subcommands back to its default.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI from a clean flag and config state.
func execute(args ...string) (string, error) {
	viper.Reset()
	bindFlags()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func newCLI(t *testing.T) (string, func(args ...string) (string, error)) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	return dir, func(args ...string) (string, error) {
		return execute(append([]string{"--dir", dir}, args...)...)
	}
}

func TestCLI_Workflow(t *testing.T) {
	dir, run := newCLI(t)

	out, err := run("list")
	require.NoError(t, err)
	assert.Equal(t, "(no entries)\n", out)

	_, err = run("add", "1", "Buy", "milk")
	require.NoError(t, err)
	_, err = run("add", "2", "Walk dog", "--done")
	require.NoError(t, err)

	out, err = run("list")
	require.NoError(t, err)
	assert.Equal(t, "1\t[ ]\tBuy milk\n2\t[x]\tWalk dog\n", out)

	data, err := os.ReadFile(filepath.Join(dir, filecache.DefaultSubdir, filecache.DefaultFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","title":"Buy milk"},{"id":"2","title":"Walk dog","done":true}]`, string(data))

	out, err = run("delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "1\tBuy milk\n", out)

	_, err = run("delete", "1")
	require.ErrorIs(t, err, filecache.ErrNotFound)

	out, err = run("export")
	require.NoError(t, err)
	assert.Equal(t, "2,Walk dog,true\n", out)

	csvPath := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("3,Read book\nbroken\n"), 0o644))
	_, err = run("import", csvPath)
	require.NoError(t, err)

	out, err = run("list")
	require.NoError(t, err)
	assert.Equal(t, "2\t[x]\tWalk dog\n3\t[ ]\tRead book\n", out)

	_, err = run("clear")
	require.NoError(t, err)

	out, err = run("list")
	require.NoError(t, err)
	assert.Equal(t, "(no entries)\n", out)
}

func TestCLI_FlagsDoNotCarryOver(t *testing.T) {
	dir, run := newCLI(t)

	_, err := run("add", "--done", "1", "Done already")
	require.NoError(t, err)
	_, err = run("add", "2", "Still open")
	require.NoError(t, err)

	_, err = run("--file", "other.json", "add", "9", "Elsewhere")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, filecache.DefaultSubdir, "other.json"))
	require.NoError(t, err)

	out, err := run("list")
	require.NoError(t, err)
	assert.Equal(t, "1\t[x]\tDone already\n2\t[ ]\tStill open\n", out)

	out, err = run("--file", "other.json", "list")
	require.NoError(t, err)
	assert.Equal(t, "9\t[ ]\tElsewhere\n", out)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown", "items", 2)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "items=2")
	assert.NotContains(t, buf.String(), "\x1b[", "non-terminal output has no colour")
}
