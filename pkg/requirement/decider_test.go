package requirement

import (
	"testing"

	"github.com/arthur-debert/targetenv/pkg/catalog"
	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tgt(versions map[string]string) targets.Targets {
	return targets.Targets{Versions: versions}
}

func TestIsRequired(t *testing.T) {
	table := catalog.SupportTable{"chrome": "50.0.0", "node": "6.10.0"}

	tests := []struct {
		name    string
		targets targets.Targets
		want    bool
	}{
		{name: "older_target", targets: tgt(map[string]string{"chrome": "49.0.0"}), want: true},
		{name: "equal_target", targets: tgt(map[string]string{"chrome": "50.0.0"}), want: false},
		{name: "newer_target", targets: tgt(map[string]string{"chrome": "51.0.0"}), want: false},
		{name: "empty_targets", targets: tgt(map[string]string{}), want: true},
		{name: "missing_environment", targets: tgt(map[string]string{"ie": "11.0.0"}), want: true},
		{name: "integer_fields_not_decimal", targets: tgt(map[string]string{"node": "6.9.0"}), want: true},
		{name: "minor_ten_beats_minor_nine", targets: tgt(map[string]string{"node": "6.10.0"}), want: false},
		{name: "any_environment_suffices", targets: tgt(map[string]string{"chrome": "60.0.0", "node": "4.0.0"}), want: true},
		{
			name:    "uglify_forces",
			targets: targets.Targets{Versions: map[string]string{"chrome": "60.0.0"}, Uglify: true},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsRequired(tt.targets, table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRequired_InvalidTarget(t *testing.T) {
	_, err := IsRequired(tgt(map[string]string{"chrome": "fifty"}), catalog.SupportTable{"chrome": "50.0.0"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTargetVersion))

	details := errors.GetErrorDetails(err)
	assert.Equal(t, "chrome", details["target"])
	assert.Equal(t, "fifty", details["value"])

	for _, v := range []string{"50.0.0-beta.1", "52.0.0+build7"} {
		_, err := IsRequired(tgt(map[string]string{"chrome": v}), catalog.SupportTable{"chrome": "50.0.0"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidTargetVersion), v)
	}
}

func TestIsRequired_InvalidTable(t *testing.T) {
	_, err := IsRequired(tgt(map[string]string{"chrome": "49.0.0"}), catalog.SupportTable{"chrome": "50"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCatalogInvalid))
}

func TestExplain(t *testing.T) {
	table := catalog.SupportTable{"chrome": "50.0.0", "firefox": "45.0.0"}
	tg := tgt(map[string]string{"chrome": "49.0.0", "firefox": "52.0.0", "ie": "11.0.0"})

	d, err := Explain("transform-es2015-classes", tg, table)
	require.NoError(t, err)
	assert.True(t, d.Required)
	assert.Equal(t, ReasonTargets, d.Reason)
	assert.Equal(t, []Trigger{
		{Environment: "chrome", Target: "49.0.0", Implemented: "50.0.0"},
		{Environment: "ie", Target: "11.0.0"},
	}, d.Triggers)

	t.Run("uglify_reason", func(t *testing.T) {
		d, err := Explain("x", targets.Targets{Versions: map[string]string{"firefox": "52.0.0"}, Uglify: true}, table)
		require.NoError(t, err)
		assert.True(t, d.Required)
		assert.Equal(t, ReasonUglify, d.Reason)
		assert.Empty(t, d.Triggers)
	})

	t.Run("not_required", func(t *testing.T) {
		d, err := Explain("x", tgt(map[string]string{"firefox": "52.0.0"}), table)
		require.NoError(t, err)
		assert.False(t, d.Required)
		assert.Equal(t, ReasonNone, d.Reason)
	})
}

func TestDecide(t *testing.T) {
	tables := map[string]catalog.SupportTable{
		"b-feature": {"chrome": "60.0.0"},
		"a-feature": {"chrome": "40.0.0"},
		"c-feature": {"chrome": "55.0.0"},
	}

	got, err := Decide(tgt(map[string]string{"chrome": "55.0.0"}), tables, []string{"c-feature", "b-feature", "a-feature"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b-feature", got[0].Feature)
}

func TestDecide_DefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	got, err := Decide(tgt(map[string]string{"chrome": "49.0.0"}), cat.Plugins, cat.PluginNames())
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Feature)
	}
	assert.NotContains(t, names, "transform-es2015-arrow-functions")
	assert.Contains(t, names, "transform-async-to-generator")
}
