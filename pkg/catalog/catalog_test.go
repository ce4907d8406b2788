package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	t.Run("plugin_tables_are_canonical", func(t *testing.T) {
		table, ok := c.Plugins["transform-es2015-arrow-functions"]
		require.True(t, ok)
		assert.Equal(t, "47.0.0", table["chrome"])
		assert.Equal(t, "6.0.0", table["node"])
	})

	t.Run("decimal_versions_keep_minor", func(t *testing.T) {
		assert.Equal(t, "6.5.0", c.Plugins["transform-es2015-destructuring"]["node"])
		assert.Equal(t, "8.10.0", c.Plugins["transform-dotall-regex"]["node"])
	})

	t.Run("built_ins_loaded", func(t *testing.T) {
		assert.Equal(t, "51.0.0", c.BuiltIns["es6.map"]["chrome"])
	})

	t.Run("metadata_loaded", func(t *testing.T) {
		assert.Equal(t, "transform-es2015-modules-commonjs", c.ModuleTransforms["commonjs"])
		assert.Contains(t, c.DefaultWebIncludes, "web.dom.iterable")
		assert.True(t, c.ShippedProposals["transform-object-rest-spread"])
		assert.True(t, c.ShippedProposals["es7.promise.finally"])
		assert.Equal(t, "tp", c.UnreleasedLabels["safari"])
	})

	t.Run("same_instance_each_call", func(t *testing.T) {
		again, err := Default()
		require.NoError(t, err)
		assert.Same(t, c, again)
	})
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	c := testCatalog(t)

	plugins, builtIns := c.Classify([]string{"transform-es2015-arrow-functions"})
	assert.Equal(t, []string{"transform-es2015-arrow-functions"}, plugins)
	assert.Empty(t, builtIns)

	plugins, builtIns = c.Classify([]string{"es6.map", "web.timers", "transform-es2015-modules-amd", "nope"})
	assert.Equal(t, []string{"transform-es2015-modules-amd"}, plugins)
	assert.Equal(t, []string{"es6.map", "web.timers"}, builtIns)
}

func TestIsValidIdentifier(t *testing.T) {
	c := testCatalog(t)

	assert.True(t, c.IsValidIdentifier("transform-regenerator"))
	assert.True(t, c.IsValidIdentifier("transform-es2015-modules-umd"))
	assert.True(t, c.IsValidIdentifier("es6.promise"))
	assert.True(t, c.IsValidIdentifier("web.immediate"))
	assert.False(t, c.IsValidIdentifier("asdf"))
}

func TestEnvironmentVersions(t *testing.T) {
	c := testCatalog(t)

	node := c.EnvironmentVersions("node", false)
	require.NotEmpty(t, node)
	assert.Equal(t, "0.12.0", node[0])
	assert.Contains(t, node, "6.5.0")
	assert.NotContains(t, node, "0.10.0", "0.10 only appears in built-in tables")

	withBuiltIns := c.EnvironmentVersions("node", true)
	assert.Equal(t, "0.10.0", withBuiltIns[0])

	for i := 1; i < len(withBuiltIns); i++ {
		assert.NotEqual(t, withBuiltIns[i-1], withBuiltIns[i])
	}
}

func TestChromiumForElectron(t *testing.T) {
	c := testCatalog(t)

	v, err := c.ChromiumForElectron("1.4")
	require.NoError(t, err)
	assert.Equal(t, "53.0.0", v)

	_, err = c.ChromiumForElectron("0.19")
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	base := testCatalog(t)

	t.Run("yaml_overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extra.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
plugins:
  transform-custom:
    chrome: 70
    node: "10.1"
built-ins:
  es6.map:
    chrome: 99
`), 0644))

		c, err := LoadOverrides(base, path)
		require.NoError(t, err)

		assert.Equal(t, "70.0.0", c.Plugins["transform-custom"]["chrome"])
		assert.Equal(t, "10.1.0", c.Plugins["transform-custom"]["node"])
		assert.Equal(t, SupportTable{"chrome": "99.0.0"}, c.BuiltIns["es6.map"])

		assert.Equal(t, "51.0.0", base.BuiltIns["es6.map"]["chrome"], "base must not change")
		_, leaked := base.Plugins["transform-custom"]
		assert.False(t, leaked)
	})

	t.Run("toml_overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extra.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[plugins."transform-custom"]
firefox = "60"
edge = false
`), 0644))

		c, err := LoadOverrides(base, path)
		require.NoError(t, err)
		assert.Equal(t, SupportTable{"firefox": "60.0.0"}, c.Plugins["transform-custom"])
	})

	t.Run("invalid_version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("plugins:\n  x:\n    chrome: latest\n"), 0644))

		_, err := LoadOverrides(base, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
	})

	t.Run("unsupported_extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extra.json")
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

		_, err := LoadOverrides(base, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadOverrides(base, filepath.Join(t.TempDir(), "missing.toml"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}
