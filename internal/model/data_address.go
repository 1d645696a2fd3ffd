// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import "encoding/json"

// EndpointProperty is a single named value inside a DataAddress's property
// bag, wire-encoded as "dspace:name"/"dspace:value".
type EndpointProperty struct {
	Name  string `json:"dspace:name"`
	Value string `json:"dspace:value"`
}

// DataAddress is a polymorphic descriptor of a data endpoint: an IRI
// identifying its kind and an ordered bag of name/value properties.
//
// EndpointProperties accepts either a single JSON object or a JSON array on
// the wire (see UnmarshalJSON) and always re-emits as an array.
type DataAddress struct {
	EndpointType       string             `json:"dspace:endpointType"`
	EndpointProperties []EndpointProperty `json:"dspace:endpointProperties"`
}

// dataAddressWire mirrors DataAddress but keeps EndpointProperties as raw
// JSON so UnmarshalJSON can distinguish an object from an array before
// decoding.
type dataAddressWire struct {
	EndpointType       string          `json:"dspace:endpointType"`
	EndpointProperties json.RawMessage `json:"dspace:endpointProperties"`
}

// UnmarshalJSON accepts endpointProperties as either a single object or an
// array of objects, normalizing both into a slice.
func (d *DataAddress) UnmarshalJSON(data []byte) error {
	var wire dataAddressWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	d.EndpointType = wire.EndpointType
	d.EndpointProperties = nil

	if len(wire.EndpointProperties) == 0 || string(wire.EndpointProperties) == "null" {
		return nil
	}

	var asArray []EndpointProperty
	if err := json.Unmarshal(wire.EndpointProperties, &asArray); err == nil {
		d.EndpointProperties = asArray
		return nil
	}

	var asObject EndpointProperty
	if err := json.Unmarshal(wire.EndpointProperties, &asObject); err != nil {
		return err
	}
	d.EndpointProperties = []EndpointProperty{asObject}
	return nil
}

// MarshalJSON always re-emits EndpointProperties as a JSON array, regardless
// of how it was originally decoded.
func (d DataAddress) MarshalJSON() ([]byte, error) {
	wire := struct {
		EndpointType       string             `json:"dspace:endpointType"`
		EndpointProperties []EndpointProperty `json:"dspace:endpointProperties"`
	}{
		EndpointType:       d.EndpointType,
		EndpointProperties: d.EndpointProperties,
	}
	if wire.EndpointProperties == nil {
		wire.EndpointProperties = []EndpointProperty{}
	}
	return json.Marshal(wire)
}

// GetProperty returns the value of the first property named name, or false
// if no such property exists.
func (d DataAddress) GetProperty(name string) (string, bool) {
	for _, p := range d.EndpointProperties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}
