// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signaling

import (
	"errors"
	"net/http"

	"github.com/dataspace-connector/dataplane/internal/refresh"
	"github.com/dataspace-connector/dataplane/internal/transfer"
)

type errorResponse struct {
	message string
	status  int
}

// errorStatusMap maps domain-level sentinel errors to the wire-visible
// status and message from the error taxonomy (spec §7). Every entry that
// is not a recognized sentinel falls through to the generic 500 response.
var errorStatusMap = map[error]errorResponse{
	transfer.ErrInvalidSourceDataAddress: {message: "Invalid Source Data Address", status: http.StatusBadRequest},
	refresh.ErrWrongCredentials:          {message: "Wrong credentials", status: http.StatusBadRequest},
}

func responseFromError(err error) errorResponse {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return errorResponse{message: "Internal Server Error", status: http.StatusInternalServerError}
}
