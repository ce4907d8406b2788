// Package browsers expands browser queries ("last 2 versions", "chrome > 50",
// "ie 11") into explicit agent/version pairs.
//
// The normalizer depends only on the Resolver interface. DatabaseResolver is
// the built-in implementation over an embedded agent database, and
// CachingResolver memoizes any Resolver.
package browsers
