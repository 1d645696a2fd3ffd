// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import (
	"errors"
	"net/url"
	"strconv"
)

// ErrUnsupportedEndpointType is returned by ParseTransferKind when a
// DataAddress's endpoint_type is not one this data-plane knows how to
// handle.
var ErrUnsupportedEndpointType = errors.New("unsupported endpoint type")

// HttpDataEndpointType is the bare literal accepted alongside the
// EDC-namespaced IRI for an HTTP-pull source.
const HttpDataEndpointType = "HttpData"

// HttpData is the sole TransferKind variant: a pull source reachable over
// HTTP. proxy_path/proxy_method/proxy_query_params are parsed but reserved
// for future policy (see spec §9); the minimum conformant proxy behaviour
// always strips the public prefix and forwards the remainder unchanged.
type HttpData struct {
	BaseURL          *url.URL
	ProxyPath        bool
	ProxyMethod      bool
	ProxyQueryParams bool
}

// TransferKind is the derived, typed view over a DataAddress. HttpData is
// the only variant today; adding a new kind means adding a case to
// ParseTransferKind.
type TransferKind struct {
	HTTP *HttpData
}

// ParseTransferKind converts a wire DataAddress into a TransferKind,
// rejecting any endpoint_type this data-plane does not implement.
func ParseTransferKind(addr DataAddress) (TransferKind, error) {
	switch addr.EndpointType {
	case HttpDataEndpointType, EDCNamespace.ToIRI(HttpDataEndpointType):
		http, err := parseHttpData(addr)
		if err != nil {
			return TransferKind{}, err
		}
		return TransferKind{HTTP: &http}, nil
	default:
		return TransferKind{}, ErrUnsupportedEndpointType
	}
}

func parseHttpData(addr DataAddress) (HttpData, error) {
	raw, ok := addr.GetProperty(EDCNamespace.ToIRI("baseUrl"))
	if !ok || raw == "" {
		return HttpData{}, errors.New("missing baseUrl")
	}

	base, err := url.Parse(raw)
	if err != nil || !base.IsAbs() {
		return HttpData{}, errors.New("baseUrl must be an absolute URL")
	}

	return HttpData{
		BaseURL:          base,
		ProxyPath:        boolProperty(addr, "proxyPath"),
		ProxyMethod:      boolProperty(addr, "proxyMethod"),
		ProxyQueryParams: boolProperty(addr, "proxyQueryParams"),
	}, nil
}

func boolProperty(addr DataAddress, name string) bool {
	raw, ok := addr.GetProperty(EDCNamespace.ToIRI(name))
	if !ok {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
