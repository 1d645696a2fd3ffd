// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transfer

import "errors"

// ErrInvalidSourceDataAddress is returned by Start when the message's
// source_data_address names an endpoint_type this data-plane does not
// implement. Signaling handlers map this to HTTP 400.
var ErrInvalidSourceDataAddress = errors.New("transfer: invalid source data address")
