// Package config provides configuration loading, merging, and validation
// facilities for the data-plane.
//
// Configuration is assembled from two sources (earlier sources win for
// non-zero fields):
//  1. Environment variables, canonical prefix DATAPLANE_ with a DP_ fallback
//     pass over the same fields for anything DATAPLANE_ left unset.
//  2. An optional JSON file, named by the CONFIG_FILE env key.
//
// The entry point is [GetConfig].
package config
