// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

// Namespace is a vocabulary prefix used to build fully-qualified IRIs for
// DataAddress endpoint types and property names.
type Namespace string

// ToIRI concatenates the namespace with term, producing a fully-qualified IRI.
func (n Namespace) ToIRI(term string) string {
	return string(n) + term
}

const (
	// EDCNamespace prefixes the endpoint-property names used on DataAddress
	// (endpoint, access_token, token_type, refresh_token, refresh_endpoint,
	// expires_in, jwks_url, baseUrl, proxyPath, proxyMethod, proxyQueryParams).
	EDCNamespace Namespace = "https://w3id.org/edc/v0.0.1/ns/"

	// DSpaceNamespace prefixes the wire field names of the signaling messages.
	DSpaceNamespace Namespace = "https://w3id.org/dspace/v0.8/"

	// IDSANamespace is used for the DataAddress endpoint_type of the minted EDR.
	IDSANamespace Namespace = "https://w3id.org/idsa/v4.1/"
)
