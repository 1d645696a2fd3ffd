// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret holds the small String wrapper used for every credential
// that must survive round-trips through logging, config dumps, and error
// messages without ever printing its value.
package secret

import "encoding/json"

// String wraps a secret value so that fmt, zerolog, and encoding/json all
// render it as the fixed redaction below instead of the real bytes. The
// wrapped value is recovered with Expose.
type String string

// redacted is what every formatting path sees instead of the real secret.
const redacted = "***REDACTED***"

// Expose returns the wrapped secret. Callers must not log or otherwise
// persist the returned value.
func (s String) Expose() string {
	return string(s)
}

// String implements fmt.Stringer.
func (s String) String() string {
	return redacted
}

// GoString implements fmt.GoStringer, covering %#v call sites.
func (s String) GoString() string {
	return redacted
}

// MarshalJSON implements json.Marshaler so config dumps and API error
// bodies never echo the key material back out.
func (s String) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting the raw secret value
// from a config file. Only the decode direction round-trips the real bytes;
// MarshalJSON never does.
func (s *String) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = String(raw)
	return nil
}
