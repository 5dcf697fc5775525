package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/loopchart/internal/config"
	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/observability"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

// runCLI executes the root command in an empty working directory.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var out, errOut bytes.Buffer
	c := New(&errOut, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolveKinds(t *testing.T) {
	tests := []struct {
		args []string
		want []diagram.Kind
		code errors.Code
	}{
		{nil, diagram.Kinds(), ""},
		{[]string{"all"}, diagram.Kinds(), ""},
		{[]string{"ALL"}, diagram.Kinds(), ""},
		{[]string{"loop"}, []diagram.Kind{diagram.KindLoop}, ""},
		{[]string{" Chart "}, []diagram.Kind{diagram.KindChart}, ""},
		{[]string{"pie"}, nil, errors.ErrCodeInvalidDiagram},
	}
	for _, tt := range tests {
		got, err := resolveKinds(tt.args)
		if tt.code != "" {
			assert.True(t, errors.Is(err, tt.code), "args %v: err = %v", tt.args, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	result := &pipeline.Result{Artifacts: map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}\n"),
	}}

	paths, err := writeArtifacts(dir, "diagram", result, []string{"json", "png", "svg"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "diagram.json"),
		filepath.Join(dir, "diagram.svg"),
	}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "diagram.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

func TestRenderCommandJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "render", "loop", "-f", "json", "-o", dir, "--samples", "5", "--no-cache")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "agentic_ai_loop.json"))

	data, err := os.ReadFile(filepath.Join(dir, "agentic_ai_loop.json"))
	require.NoError(t, err)

	var lay diagram.LoopLayout
	require.NoError(t, json.Unmarshal(data, &lay))
	assert.Equal(t, "Agentic AI Decision Loop", lay.Title)
	require.Len(t, lay.Links, 4)
	assert.Len(t, lay.Links[0].Curve.Samples, 5)
}

func TestRenderCommandAllSVG(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "render", "-f", "svg", "-o", dir, "--no-cache")
	require.NoError(t, err)

	for _, name := range []string{"agentic_ai_loop.svg", "chart.svg"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "<svg", name)
	}
}

func TestRenderCommandName(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "render", "chart", "-f", "json", "-o", dir, "--name", "scores", "--no-cache")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "scores.json"))
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"name needs one diagram", []string{"render", "--name", "x", "-f", "json"}, errors.ErrCodeInvalidInput},
		{"unknown diagram", []string{"render", "pie"}, errors.ErrCodeInvalidDiagram},
		{"bad format", []string{"render", "loop", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad backend", []string{"render", "loop", "--backend", "ascii"}, errors.ErrCodeInvalidBackend},
		{"bad basename", []string{"render", "loop", "-f", "json", "--name", "../x"}, errors.ErrCodeInvalidPath},
		{"graphviz chart", []string{"render", "chart", "-f", "svg", "--backend", "graphviz", "--no-cache"}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", t.TempDir())
			_, err := runCLI(t, args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "err = %v, want %s", err, tt.code)
		})
	}
}

func TestRenderCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "loopchart.toml")
	cfg := "output = " + quote(dir) + "\nformats = [\"json\"]\n\n[loop]\nbasename = \"cycle\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, err := runCLI(t, "--config", cfgPath, "render", "loop", "--no-cache")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "cycle.json"))
	assert.NoFileExists(t, filepath.Join(dir, "cycle.png"))
}

func TestRenderCommandCached(t *testing.T) {
	cacheDir := t.TempDir()
	outDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "loopchart.toml")
	cfg := "[cache]\ndir = " + quote(cacheDir) + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	args := []string{"--config", cfgPath, "render", "chart", "-f", "json", "-o", outDir}
	out, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, iconFresh)

	out, err = runCLI(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, iconCached)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestCacheClearKeepsForeignFiles(t *testing.T) {
	cacheDir := t.TempDir()
	cfgPath := filepath.Join(cacheDir, "loopchart.toml")
	cfg := "[cache]\ndir = " + quote(cacheDir) + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	_, err := runCLI(t, "--config", cfgPath, "render", "chart", "-f", "json", "-o", t.TempDir())
	require.NoError(t, err)

	out, err := runCLI(t, "--config", cfgPath, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed cached entries: 1")
	assert.FileExists(t, cfgPath)

	out, err = runCLI(t, "--config", cfgPath, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed cached entries: 0")
}

func TestRenderCommandRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv(config.EnvRedisURL, "redis://"+mr.Addr())

	args := []string{"render", "chart", "-f", "json", "-o", t.TempDir()}
	out, err := runCLI(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, iconFresh)
	assert.Len(t, mr.Keys(), 1)

	out, err = runCLI(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, iconCached)
}
