// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import "time"

// TransferStatus is the lifecycle state of a TransferRecord.
type TransferStatus string

const (
	// TransferStarted is the state entered when a DataFlowStartMessage is
	// accepted. It is the only state from which proxying succeeds.
	TransferStarted TransferStatus = "Started"

	// TransferSuspended is entered on Suspend; proxying is denied while a
	// transfer is in this state, even with an unexpired access token.
	TransferSuspended TransferStatus = "Suspended"
)

// TransferRecord is the durable record of one agreed-upon transfer.
//
// ID is the control plane's process_id. Only Status and UpdatedAt are
// mutated after creation; deletion (Terminate) is the terminal transition.
type TransferRecord struct {
	ID            string
	Status        TransferStatus
	Source        DataAddress
	ParticipantID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
