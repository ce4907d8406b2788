// Package catalog provides the read-only feature data the resolver decides
// against: per-environment minimum versions for syntax plugins and built-ins,
// the module transform names, and the small lookup tables used while
// normalizing targets.
//
// The default catalog is embedded in the binary and decoded once per process.
// Additional tables can be layered on top from a TOML or YAML file with
// LoadOverrides; the result is a new Catalog and the default is never mutated.
package catalog
