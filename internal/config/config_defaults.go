// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"strconv"
)

// Paths the proxy advertises to consumers when an explicit override URL
// is not configured.
const (
	publicProxyPath  = "/api/v1/public"
	tokenRefreshPath = "/api/v1/token"
	jwksPath         = "/.well-known/jwks.json"
)

// applyDefaults fills in Proxy.ProxyURL/TokenURL/JWKSURL from the
// corresponding listener's Bind/Port whenever the operator has not set an
// explicit override, per the external-interface contract: these three
// URLs are either configured directly or derived.
func (cfg *Config) applyDefaults() {
	if cfg.Proxy.ProxyURL == "" {
		cfg.Proxy.ProxyURL = deriveURL(cfg.Proxy.Bind, cfg.Proxy.Port, publicProxyPath)
	}
	if cfg.Proxy.TokenURL == "" {
		cfg.Proxy.TokenURL = deriveURL(cfg.Proxy.Renewal.Bind, cfg.Proxy.Renewal.Port, tokenRefreshPath)
	}
	if cfg.Proxy.JWKSURL == "" {
		cfg.Proxy.JWKSURL = deriveURL(cfg.Proxy.Renewal.Bind, cfg.Proxy.Renewal.Port, jwksPath)
	}
}

func deriveURL(bind string, port uint16, path string) string {
	return fmt.Sprintf("http://%s%s", net.JoinHostPort(bind, strconv.Itoa(int(port))), path)
}
