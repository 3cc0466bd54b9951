package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	color.NoColor = true
	configFile = ""

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "strings: concat, builder, join\n")
	assert.Contains(t, out, "hashing: sha256, fnv64a\n")
}

func TestRun_UnknownTarget(t *testing.T) {
	_, err := execute(t, "run", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target "nope"`)
}

func TestRun_InvalidUnit(t *testing.T) {
	_, err := execute(t, "run", "--unit", "fortnights", "strings")
	assert.Error(t, err)
}

func TestRun_WritesMetrics(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "out.prom")
	_, err := execute(t, "run", "-n", "5", "--warmup", "1", "--metrics-file", metrics, "hashing")
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lightbench_median{operation="sha256",unit="ms"}`)
	assert.Contains(t, string(data), `lightbench_run_outcome{outcome="completed"} 1`)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}
