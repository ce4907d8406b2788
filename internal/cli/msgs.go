package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Resolve the transforms and polyfills your targets need"
	MsgVersionShort  = "Print version information"
	MsgVersionLong   = "Print detailed version information including commit hash and build date"
	MsgResolveShort  = "Resolve the plugins and built-ins required by the configured targets"
	MsgTargetsShort  = "Print the normalized target versions"
	MsgCatalogShort  = "List the plugins, built-ins or module transforms known to the catalog"
	MsgCheckShort    = "Decide whether a single feature is required and show why"
	MsgTopicsShort   = "Display available documentation topics"
	MsgTopicsLong    = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionFormat = "targetenv version %s\n  commit: %s\n  built:  %s\n"

	// Debug output
	MsgDebugHeader     = "targetenv: using targets %s\n"
	MsgDebugModules    = "Modules transform: %s\n"
	MsgDebugPlugins    = "\nUsing plugins:\n"
	MsgDebugBuiltIns   = "\nUsing polyfills with `%s` option:\n"
	MsgDebugItem       = "  %s %s\n"
	MsgDebugNoBuiltIns = "\nBased on your targets, none were added.\n"

	// Error messages
	MsgErrTargetFlag   = "invalid --target %q: expected env=version"
	MsgErrWorkingDir   = "failed to determine the working directory: %w"
	MsgErrCatalogKind  = "unknown catalog listing %q: expected plugins, built-ins or modules"
	MsgErrNoCommand    = "no command specified"
	MsgErrUnknownCheck = "unknown feature %s"

	// Flag descriptions
	MsgFlagVerbose          = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat           = "Output format: auto, term, text or json"
	MsgFlagConfig           = "Configuration file (default: targetenv.toml or targetenv.yaml in the project directory)"
	MsgFlagDir              = "Project directory (default: current directory)"
	MsgFlagDebug            = "Print the targets that triggered each plugin and built-in"
	MsgFlagTarget           = "Target environment as env=version (repeatable)"
	MsgFlagBrowsers         = "Browser query, e.g. 'last 2 versions' (repeatable)"
	MsgFlagInclude          = "Always include these plugins or built-ins"
	MsgFlagExclude          = "Never include these plugins or built-ins"
	MsgFlagModules          = "Module transform: amd, commonjs, systemjs, umd or false"
	MsgFlagLoose            = "Enable loose mode on the selected plugins"
	MsgFlagUseBuiltIns      = "Built-ins mode: none, entry or usage"
	MsgFlagShippedProposals = "Consider proposals that shipped in browsers"
	MsgFlagForceAll         = "Require every transform, as if targeting uglify"
	MsgFlagUseSyntax        = "Select syntax plugins from the targets (--use-syntax=false keeps only includes and the module transform)"
	MsgFlagEngines          = "Use the lowest node allowed by package.json engines when node is not targeted"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimSpace(msgResolveExampleRaw)

	//go:embed msgs/targets-long.txt
	msgTargetsLongRaw string
	MsgTargetsLong    = strings.TrimSpace(msgTargetsLongRaw)

	//go:embed msgs/check-example.txt
	msgCheckExampleRaw string
	MsgCheckExample    = strings.TrimSpace(msgCheckExampleRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
