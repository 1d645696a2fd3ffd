// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/dataspace-connector/dataplane/internal/logger"
)

// ServeHTTP authenticates the request and, on success, forwards it to the
// transfer's upstream data source. Defined directly on Handler (rather
// than a route-group method, as in the Signaling API) because every
// proxied request — regardless of method — runs the identical pipeline.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	auth, err := h.authenticate(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("proxy authorization failed")
		resp := responseFromError(err)
		http.Error(w, resp.message, resp.status)
		return
	}

	upstream := newReverseProxy(auth.source.BaseURL, log)
	upstream.ServeHTTP(w, r)
}

// newReverseProxy builds a one-shot httputil.ReverseProxy targeting base.
// Rewrite strips PublicPrefix from the inbound path, appends the
// remainder to base's own path, preserves the query string, drops the
// inbound Authorization header, and sets Host to the upstream host —
// exactly the request transformation the spec requires.
func newReverseProxy(base *url.URL, log *logger.Logger) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(base)
			pr.SetXForwarded()

			remainder := strings.TrimPrefix(pr.In.URL.Path, PublicPrefix)
			pr.Out.URL.Path = strings.TrimSuffix(base.Path, "/") + remainder
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery

			pr.Out.Header.Del("Authorization")
			pr.Out.Host = base.Host
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Err(err).Str("path", r.URL.Path).Msg("upstream request failed")
			http.Error(w, "Bad gateway", http.StatusBadGateway)
		},
	}
}
