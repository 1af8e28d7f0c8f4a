package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sortviz/pkg/errors"
	"github.com/matzehuels/sortviz/pkg/observability"
)

type result struct {
	out, errOut, log string
	err              error
}

// execute runs the root command against an isolated config file.
func execute(t *testing.T, ctx context.Context, configBody string, args ...string) result {
	t.Helper()
	t.Cleanup(observability.Reset)

	path := filepath.Join(t.TempDir(), "sortviz.toml")
	require.NoError(t, os.WriteFile(path, []byte(configBody), 0o600))

	var out, errOut, logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", path}, args...))

	err := root.ExecuteContext(ctx)
	return result{out: out.String(), errOut: errOut.String(), log: logs.String(), err: err}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"tui", "run", "list", "serve", "config", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-file"))
}

func TestRunSingleAlgorithm(t *testing.T) {
	r := execute(t, context.Background(), "", "run", "merge", "--no-delay", "-n", "50", "--seed", "3")
	require.NoError(t, r.err)

	assert.Contains(t, r.out, iconSuccess+" Merge Sort")
	assert.NotContains(t, r.out, "Algorithm", "no summary table for one run")
	assert.Contains(t, r.log, "sort complete")
	assert.Contains(t, r.log, "Sorted 50 bars with 1 algorithm(s)")
}

func TestRunAll(t *testing.T) {
	r := execute(t, context.Background(), "[array]\nsize = 40\n[pacing]\nunit = \"0s\"\n", "run", "all")
	require.NoError(t, r.err)

	for _, title := range []string{"Selection Sort", "Insertion Sort", "Bubble Sort", "Merge Sort", "Quick Sort", "Heap Sort"} {
		assert.Contains(t, r.out, title)
	}
	assert.Contains(t, r.out, "Steps")
	assert.Equal(t, 6, strings.Count(r.log, "sort complete"))
}

func TestRunRejectsUnknownAlgorithm(t *testing.T) {
	r := execute(t, context.Background(), "", "run", "bogo")
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeInvalidAlgorithm, errors.GetCode(r.err))
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := execute(t, ctx, "", "run", "quick", "--no-delay")
	require.ErrorIs(t, r.err, context.Canceled)
	assert.Contains(t, r.errOut, iconError)
	assert.Contains(t, r.log, "sort cancelled")
}

func TestVerifySorted(t *testing.T) {
	base := []int{3, 1, 2}
	assert.NoError(t, verifySorted(base, []int{1, 2, 3}))
	assert.Error(t, verifySorted(base, []int{1, 3, 2}))
	assert.Error(t, verifySorted(base, []int{1, 2, 2}))
	assert.Error(t, verifySorted(base, []int{1, 2}))
}

func TestSelectAlgorithms(t *testing.T) {
	algs, err := selectAlgorithms("ALL")
	require.NoError(t, err)
	assert.Len(t, algs, 6)

	algs, err = selectAlgorithms("heapsort")
	require.NoError(t, err)
	assert.Equal(t, "heap", string(algs[0]))

	names, _ := completeAlgorithms(nil, nil, "")
	assert.Equal(t, []string{"selection", "insertion", "bubble", "merge", "quick", "heap", "all"}, names)
}

func TestList(t *testing.T) {
	r := execute(t, context.Background(), "[pacing]\nspeed = 2.0\n", "list")
	require.NoError(t, r.err)

	assert.Contains(t, r.out, "Quick Sort")
	assert.Contains(t, r.out, "35ms", "70 units at 1ms and 2x")
	assert.Contains(t, r.out, "500µs", "selection pause at 2x")
	assert.Contains(t, r.out, "2.00x")
}

func TestConfigShow(t *testing.T) {
	r := execute(t, context.Background(), "[array]\nsize = 64\n", "config", "show", "--format", "yaml")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "size: 64")
	assert.Contains(t, r.out, "theme: classic")

	r = execute(t, context.Background(), "[array]\nsize = 64\n", "config", "show")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "size = 64", "defaults to the active file's format")

	r = execute(t, context.Background(), "", "config", "show", "--format", "json")
	assert.Error(t, r.err)
}

func TestConfigPath(t *testing.T) {
	r := execute(t, context.Background(), "", "config", "path")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "Using config file")
	assert.Contains(t, r.out, "sortviz.toml")
	assert.NotContains(t, r.out, "Search paths")
}

func TestCompletion(t *testing.T) {
	r := execute(t, context.Background(), "", "completion", "bash")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "sortviz")

	r = execute(t, context.Background(), "", "completion", "tcsh")
	assert.Error(t, r.err)
}

func TestBadConfigFailsEveryCommand(t *testing.T) {
	r := execute(t, context.Background(), "[ui]\ntheme = \"neon\"\n", "list")
	require.Error(t, r.err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(r.err))
}
