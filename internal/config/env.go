// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// parseEnv populates a [Config] from environment variables using the
// caarlos0/env library. Struct fields are mapped via their `env` and
// `envPrefix` tags defined on [Config] and its nested types.
//
// Two prefixes are read: DATAPLANE_ is canonical, DP_ is a fallback read
// of the same field set. A field set via DATAPLANE_* always wins; DP_*
// only fills whatever DATAPLANE_* left zero-valued (mergo.Merge
// semantics).
//
// Returns a wrapped error if either pass fails (e.g. a value cannot be
// converted to the target type).
func parseEnv() (*Config, error) {
	canonical := &Config{}
	if err := env.ParseWithOptions(canonical, env.Options{Prefix: "DATAPLANE_"}); err != nil {
		return nil, fmt.Errorf("error getting DATAPLANE_ env configs: %w", err)
	}

	fallback := &Config{}
	if err := env.ParseWithOptions(fallback, env.Options{Prefix: "DP_"}); err != nil {
		return nil, fmt.Errorf("error getting DP_ env configs: %w", err)
	}

	if err := mergo.Merge(canonical, fallback); err != nil {
		return nil, fmt.Errorf("error merging DATAPLANE_/DP_ env configs: %w", err)
	}

	return canonical, nil
}
