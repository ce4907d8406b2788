package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	root := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func stringsOf(result gjson.Result) []string {
	var out []string
	for _, r := range result.Array() {
		out = append(out, r.String())
	}
	return out
}

func TestResolveCmd(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "json", "-t", "chrome=61")
	require.NoError(t, err)
	require.True(t, gjson.Valid(out), out)

	assert.Equal(t, "61.0.0", gjson.Get(out, "targets.versions.chrome").String())
	plugins := stringsOf(gjson.Get(out, "plugins.#.name"))
	assert.Contains(t, plugins, "transform-dotall-regex")
	assert.Contains(t, plugins, "transform-es2015-modules-commonjs")
	assert.NotContains(t, plugins, "transform-es2015-arrow-functions")
	assert.False(t, gjson.Get(out, "builtIns").Exists())
}

func TestResolveCmd_Flags(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "json",
		"-t", "chrome=61",
		"--include", "babel-plugin-transform-es2015-arrow-functions",
		"--exclude", "transform-dotall-regex",
		"--modules", "false",
		"--loose",
		"--use-built-ins", "usage",
	)
	require.NoError(t, err)

	plugins := stringsOf(gjson.Get(out, "plugins.#.name"))
	assert.Contains(t, plugins, "transform-es2015-arrow-functions")
	assert.NotContains(t, plugins, "transform-dotall-regex")
	assert.NotContains(t, plugins, "transform-es2015-modules-commonjs")
	assert.True(t, gjson.Get(out, "plugins.0.loose").Bool())

	builtIns := stringsOf(gjson.Get(out, "builtIns"))
	assert.Contains(t, builtIns, "web.dom.iterable")
}

func TestResolveCmd_UseSyntaxOff(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "json",
		"-t", "ie=10",
		"--use-syntax=false",
		"--include", "transform-es2015-classes",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"transform-es2015-classes", "transform-es2015-modules-commonjs"},
		stringsOf(gjson.Get(out, "plugins.#.name")))
	assert.Equal(t, "false", gjson.Get(out, "options.useSyntax").Raw)
}

func TestTargetsCmd_InstalledElectron(t *testing.T) {
	dir := t.TempDir()
	electron := filepath.Join(dir, "node_modules", "electron")
	require.NoError(t, os.MkdirAll(electron, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(electron, "package.json"),
		[]byte(`{"name": "electron", "version": "1.4.15"}`), 0644))

	out, _, err := execute(t, "targets", "-C", dir, "--format", "json", "-t", "electron=current")
	require.NoError(t, err)
	assert.Equal(t, "53", gjson.Get(out, "targets.chrome").String(), out)

	_, _, err = execute(t, "targets", "-C", t.TempDir(), "--format", "json", "-t", "electron=true")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTargetVersion))
}

func TestResolveCmd_ProjectConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "targetenv.toml"), []byte(`
modules = "amd"

[targets]
ie = "11"
`), 0644))

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "11.0.0", gjson.Get(out, "targets.versions.ie").String())

	plugins := stringsOf(gjson.Get(out, "plugins.#.name"))
	assert.Contains(t, plugins, "transform-es2015-arrow-functions")
	assert.Contains(t, plugins, "transform-es2015-modules-amd")

	// flags win over the project file
	out, _, err = execute(t, "resolve", "-C", dir, "--format", "json", "-t", "ie=10")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0", gjson.Get(out, "targets.versions.ie").String())
}

func TestResolveCmd_Engines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"),
		[]byte(`{"name": "app", "engines": {"node": ">=6"}}`), 0644))
	t.Setenv("BABEL_ENV", "production")

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "json", "--engines")
	require.NoError(t, err)
	assert.Equal(t, "6.0.0", gjson.Get(out, "targets.versions.node").String())

	out, _, err = execute(t, "resolve", "-C", dir, "--format", "json", "--engines", "-t", "node=8")
	require.NoError(t, err)
	assert.Equal(t, "8.0.0", gjson.Get(out, "targets.versions.node").String())
}

func TestResolveCmd_Debug(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := execute(t, "resolve", "-C", dir, "--format", "json", "-t", "ie=11", "--debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, `targetenv: using targets { "ie":"11" }`)
	assert.Contains(t, stderr, "Modules transform: commonjs")
	assert.Contains(t, stderr, `transform-es2015-arrow-functions { "ie":"11" }`)
	assert.NotContains(t, stderr, "Using polyfills")
}

func TestResolveCmd_TextOutput(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "resolve", "-C", dir, "--format", "text", "-t", "ie=11")
	require.NoError(t, err)
	assert.Contains(t, out, "transform-es2015-arrow-functions")
	assert.NotContains(t, out, "[plugin]")
}

func TestResolveCmd_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.ErrorCode
	}{
		{"malformed_target_flag", []string{"-t", "chrome"}, errors.ErrInvalidSpecification},
		{"bad_version", []string{"-t", "chrome=latest"}, errors.ErrInvalidSpecification},
		{"unknown_include", []string{"--include", "no-such-plugin"}, errors.ErrUnknownIdentifier},
		{"duplicate", []string{"--include", "es6.map", "--exclude", "es6.map"}, errors.ErrDuplicateIncludeExclude},
		{"bad_modules", []string{"--modules", "esm"}, errors.ErrInvalidTargetVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"resolve", "-C", dir, "--format", "json"}, tt.args...)
			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestResolveCmd_BadFormat(t *testing.T) {
	_, _, err := execute(t, "resolve", "-C", t.TempDir(), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestTargetsCmd(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "targets", "-C", dir, "--format", "json",
		"-t", "electron=1.4", "-t", "chrome=60", "-t", "uglify=true")
	require.NoError(t, err)
	assert.Equal(t, "53", gjson.Get(out, "targets.chrome").String())
	assert.True(t, gjson.Get(out, "uglify").Bool())
	assert.False(t, gjson.Get(out, "targets.electron").Exists())
}

func TestTargetsCmd_NodeCurrentFromEnvironment(t *testing.T) {
	t.Setenv("TARGETENV_NODE__CURRENT", "v8.9.4")

	out, _, err := execute(t, "targets", "-C", t.TempDir(), "--format", "json", "-t", "node=current")
	require.NoError(t, err)
	assert.Equal(t, "8.9.4", gjson.Get(out, "targets.node").String())
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "check", "babel-plugin-transform-es2015-arrow-functions", "-C", dir,
		"--format", "json", "-t", "ie=11", "-t", "chrome=60")
	require.NoError(t, err)
	assert.Equal(t, "transform-es2015-arrow-functions", gjson.Get(out, "feature").String())
	assert.True(t, gjson.Get(out, "required").Bool())
	assert.Equal(t, []string{"ie"}, stringsOf(gjson.Get(out, "triggers.#.environment")))

	out, _, err = execute(t, "check", "es6.promise", "-C", dir, "--format", "json", "-t", "chrome=51")
	require.NoError(t, err)
	assert.False(t, gjson.Get(out, "required").Bool())

	_, _, err = execute(t, "check", "no-such-feature", "-C", dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownIdentifier))
}

func TestCatalogCmd(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "catalog", "modules", "-C", dir, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{"amd", "commonjs", "systemjs", "umd"}, stringsOf(gjson.Parse(out)))

	out, _, err = execute(t, "catalog", "-C", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stringsOf(gjson.Parse(out)), "transform-regenerator")

	out, _, err = execute(t, "catalog", "built-ins", "-C", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stringsOf(gjson.Parse(out)), "es6.promise")

	_, _, err = execute(t, "catalog", "presets", "-C", dir)
	require.Error(t, err)
}

func TestCatalogCmd_Overrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "support.toml"), []byte(`
[plugins."transform-custom"]
chrome = "70"
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "targetenv.toml"), []byte(`
[catalog]
overrides = "support.toml"
`), 0644))

	out, _, err := execute(t, "catalog", "plugins", "-C", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stringsOf(gjson.Parse(out)), "transform-custom")
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "targetenv version dev")
}

func TestHelpTopics(t *testing.T) {
	out, _, err := execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration")
	assert.Contains(t, out, "targeting")
	assert.Contains(t, out, "--include")

	out, _, err = execute(t, "help", "targeting")
	require.NoError(t, err)
	assert.Contains(t, out, "Browser queries")
	assert.Contains(t, out, "last 2 chrome versions")

	// topics do not shadow command help
	out, _, err = execute(t, "help", "targets")
	require.NoError(t, err)
	assert.Contains(t, out, MsgTargetsLong[:20])

	out, _, err = execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "Available help topics:")
}

func TestRootCmd_NoCommand(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
}

func TestParseTargetFlags(t *testing.T) {
	spec, err := parseTargetFlags([]string{"chrome=58", "node=false", "uglify=true", " ie = 11 "})
	require.NoError(t, err)
	assert.Equal(t, "58", spec["chrome"])
	assert.Equal(t, "false", spec["node"])
	assert.Equal(t, "true", spec["uglify"])
	assert.Equal(t, "11", spec["ie"])

	for _, bad := range []string{"chrome", "=58", "chrome="} {
		_, err := parseTargetFlags([]string{bad})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidSpecification), bad)
	}
}

func TestFormatTriggers(t *testing.T) {
	assert.Equal(t, "{}", formatTriggers(nil))
	assert.Equal(t, `{ "chrome":"54", "ie":"10.1" }`, formatTriggers(map[string]string{"ie": "10.1.0", "chrome": "54.0.0"}))
}
