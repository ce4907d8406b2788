// Package targets turns a raw target specification into a canonical target
// map.
//
// A specification maps environment names to loosely typed values: version
// numbers or strings, booleans, the "current" and "maintained" sentinels for
// node, and a browser query under the "browsers" key. Normalize resolves the
// query through a browsers.Resolver, reduces it to the lowest version per
// environment, then lets every explicit key overwrite what the query produced.
// The result holds only strict "major.minor.patch" strings, ready for the
// requirement decider.
//
// Host facts (the running node version, the installed Electron, the current
// date) come from injected providers so normalization is deterministic under
// test.
package targets
