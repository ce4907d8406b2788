package targets

import (
	"sort"

	"github.com/arthur-debert/targetenv/pkg/versions"
)

// Reserved specification keys.
const (
	BrowsersKey = "browsers"
	NodeKey     = "node"
	UglifyKey   = "uglify"
	ElectronKey = "electron"
)

// Node sentinels.
const (
	SentinelCurrent    = "current"
	SentinelMaintained = "maintained"
)

// Spec is a raw target specification as written by a user.
type Spec map[string]interface{}

// Targets is the canonical target map. Every entry in Versions is a strict
// three-part version. Uglify records the legacy minifier flag, which is not a
// comparison target.
type Targets struct {
	Versions map[string]string `json:"versions"`
	Uglify   bool              `json:"uglify,omitempty"`
}

// Environments returns the targeted environment names in sorted order.
func (t Targets) Environments() []string {
	envs := make([]string, 0, len(t.Versions))
	for env := range t.Versions {
		envs = append(envs, env)
	}
	sort.Strings(envs)
	return envs
}

// IsEmpty reports whether no environment is targeted.
func (t Targets) IsEmpty() bool {
	return len(t.Versions) == 0
}

// OnlyNode reports whether node is the single targeted environment.
func (t Targets) OnlyNode() bool {
	_, ok := t.Versions[NodeKey]
	return ok && len(t.Versions) == 1
}

// Prettify returns the versions with trailing zero components dropped.
func (t Targets) Prettify() map[string]string {
	out := make(map[string]string, len(t.Versions))
	for env, v := range t.Versions {
		out[env] = versions.Prettify(v)
	}
	return out
}

// Warning is a non-fatal notice raised while normalizing.
type Warning struct {
	Target  string      `json:"target"`
	Value   interface{} `json:"value"`
	Message string      `json:"message"`
}

// Result is the output of Normalize.
type Result struct {
	Targets  Targets   `json:"targets"`
	Warnings []Warning `json:"warnings,omitempty"`
}
