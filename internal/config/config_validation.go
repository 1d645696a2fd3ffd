// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [Config] satisfies the invariants
// required to start the data-plane.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Config) validate() error {
	if cfg.ComponentID == "" {
		return ErrInvalidComponentID
	}

	if cfg.Proxy.Issuer == "" {
		return ErrInvalidProxyConfig
	}

	if cfg.Proxy.Keys.PrivateKey == "" || cfg.Proxy.Keys.PublicKey == "" || cfg.Proxy.Keys.KID == "" {
		return ErrInvalidProxyKeys
	}

	if cfg.DB.Transfers.DSN == "" || cfg.DB.Tokens.DSN == "" {
		return ErrInvalidDBConfig
	}

	return nil
}
