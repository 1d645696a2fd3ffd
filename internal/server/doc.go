// Package server wires and runs the data-plane's HTTP listeners.
//
// The data-plane exposes three independent listeners — the Signaling API,
// the token-renewal/JWKS endpoint, and the public proxy — each bound to
// its own address so the public data path never shares a listener (and
// its accept queue) with the control surface. This package owns their
// startup, signal handling, and graceful shutdown as one unit.
package server
