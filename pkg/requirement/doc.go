// Package requirement decides whether a feature needs transforming or
// polyfilling for a canonical target map.
//
// A feature is required when any targeted environment either lacks an entry
// in the feature's support table or implements it only in a version strictly
// greater than the targeted one. An empty target map and the legacy uglify
// flag both force the feature.
package requirement
