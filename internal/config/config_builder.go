// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial [Config] values from different sources
// and merges them into a single configuration on [build].
//
// The builder follows the fluent-interface pattern: each with* method
// appends a config source and returns the same *configBuilder so calls can
// be chained. Any error encountered during a with* step is stored in err
// and causes [build] to fail-fast without attempting to merge.
type configBuilder struct {
	// configs holds the ordered list of partial configurations to be
	// merged. Sources appended earlier take precedence over later ones for
	// non-zero fields (mergo.Merge semantics: the destination's non-zero
	// fields are never overwritten).
	configs []*Config

	// err accumulates errors from individual source-loading steps.
	// Multiple errors are joined via errors.Join so all failures are
	// visible at once when build() is called.
	err error
}

// newConfigBuilder creates and returns an empty *configBuilder ready for
// use.
func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Config, 0, 2),
	}
}

// build merges all accumulated partial configurations into a single
// [Config] and validates the result.
//
// Merge order follows the order in which sources were appended: the first
// source provides the base, and each subsequent source fills in only the
// zero-value fields of the accumulator (mergo.Merge default behaviour).
//
// Returns an error if:
//   - any with* step previously recorded an error (b.err != nil);
//   - mergo.Merge fails for any source;
//   - the final config fails [Config.validate].
func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	cfg := new(Config)
	for _, source := range b.configs {
		if err := mergo.Merge(cfg, source); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

// withEnv parses environment variables into a [Config] via [parseEnv] and
// appends the result to the builder.
//
// If parsing fails, the error is joined into b.err and the builder is
// returned unchanged so that subsequent steps are skipped gracefully.
//
// Returns the same *configBuilder to support method chaining.
func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

// withJSON looks for a non-empty JSONFilePath field across all configs
// accumulated so far, and if found, parses that JSON file via [parseJSON],
// appending the result to the builder.
//
// If no path is found, withJSON is a no-op. If parsing fails, the error is
// joined into b.err and the builder is returned unchanged.
//
// Returns the same *configBuilder to support method chaining.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}
