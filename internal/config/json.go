// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dataspace-connector/dataplane/internal/secret"
)

// jsonConfig is the JSON-specific representation of the data-plane
// configuration. It mirrors [Config] but uses JSON struct tags and the
// custom [Duration] type so that duration values can be expressed as
// human-readable strings (e.g. "10m", "720h") in the config file.
//
// After decoding, the values are mapped into a [Config] by [parseJSON].
type jsonConfig struct {
	ComponentID string `json:"component_id"`

	Signaling struct {
		ControlPlaneURL string `json:"control_plane_url"`
		SignalingURL    string `json:"signaling_url"`
		Port            uint16 `json:"port"`
		Bind            string `json:"bind"`
	} `json:"signaling,omitempty"`

	Proxy struct {
		Port                 uint16   `json:"port"`
		Bind                 string   `json:"bind"`
		ProxyURL             string   `json:"proxy_url"`
		TokenDuration        Duration `json:"token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		TokenLeeway          Duration `json:"token_leeway"`
		Issuer               string   `json:"issuer"`
		Keys                 struct {
			PrivateKey secret.String `json:"private_key"`
			PublicKey  string        `json:"public_key"`
			KID        string        `json:"kid"`
		} `json:"keys,omitempty"`
		Renewal struct {
			Port uint16 `json:"port"`
			Bind string `json:"bind"`
		} `json:"renewal,omitempty"`
	} `json:"proxy,omitempty"`

	DB struct {
		Transfers struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"transfers,omitempty"`
		Tokens struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"tokens,omitempty"`
	} `json:"db,omitempty"`
}

// parseJSON opens the JSON file at jsonFilePath, decodes it into a
// [jsonConfig], and maps the result into a [Config].
//
// JSONFilePath is intentionally left empty in the returned config so that
// the path is not re-processed during subsequent merge steps.
//
// Returns a wrapped error if the file cannot be opened or its contents
// cannot be decoded as valid JSON.
func parseJSON(jsonFilePath string) (*Config, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var raw jsonConfig
	if err := json.NewDecoder(jsonFile).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &Config{
		ComponentID: raw.ComponentID,
		Signaling: Signaling{
			ControlPlaneURL: raw.Signaling.ControlPlaneURL,
			SignalingURL:    raw.Signaling.SignalingURL,
			Port:            raw.Signaling.Port,
			Bind:            raw.Signaling.Bind,
		},
		Proxy: Proxy{
			Port:                 raw.Proxy.Port,
			Bind:                 raw.Proxy.Bind,
			ProxyURL:             raw.Proxy.ProxyURL,
			TokenDuration:        time.Duration(raw.Proxy.TokenDuration),
			RefreshTokenDuration: time.Duration(raw.Proxy.RefreshTokenDuration),
			TokenLeeway:          time.Duration(raw.Proxy.TokenLeeway),
			Issuer:               raw.Proxy.Issuer,
			Keys: ProxyKeys{
				PrivateKey: raw.Proxy.Keys.PrivateKey,
				PublicKey:  raw.Proxy.Keys.PublicKey,
				KID:        raw.Proxy.Keys.KID,
			},
			Renewal: Renewal{
				Port: raw.Proxy.Renewal.Port,
				Bind: raw.Proxy.Renewal.Bind,
			},
		},
		DB: DBGroup{
			Transfers: DB{
				Driver: raw.DB.Transfers.Driver,
				DSN:    raw.DB.Transfers.DSN,
			},
			Tokens: DB{
				Driver: raw.DB.Tokens.Driver,
				DSN:    raw.DB.Tokens.DSN,
			},
		},
		JSONFilePath: "", // intentionally cleared to prevent re-processing
	}

	return cfg, nil
}

// Duration is a thin wrapper around [time.Duration] that adds JSON
// unmarshaling support for human-readable duration strings such as "10m",
// "720h", or "60s", in addition to raw nanosecond integers.
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler] for Duration.
//
// Supported JSON value types:
//   - string: parsed with [time.ParseDuration] (e.g. "10m", "720h").
//   - number: treated as a raw nanosecond count (same as time.Duration).
//
// Returns an error if the value is a string that cannot be parsed as a
// duration, or if the JSON value is of an unsupported type.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

// MarshalJSON implements [json.Marshaler] for Duration.
// The value is serialized as a human-readable string using
// [time.Duration.String] (e.g. "10m0s", "720h0m0s").
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
