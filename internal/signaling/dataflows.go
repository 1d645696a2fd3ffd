// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signaling

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/utils"
)

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handler) startDataflow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var msg model.DataFlowStartMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		log.Err(err).Str("func", "*Handler.startDataflow").Msg("invalid JSON body")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "Invalid Source Data Address"}, http.StatusBadRequest)
		return
	}

	resp, err := h.transfers.Start(r.Context(), msg)
	if err != nil {
		log.Err(err).Str("process_id", msg.ProcessID).Msg("starting transfer")
		respErr := responseFromError(err)
		_, _ = utils.WriteJSON(w, map[string]string{"error": respErr.message}, respErr.status)
		return
	}

	envelope := model.WrapDataFlowResponse(resp)
	if _, err := utils.WriteJSON(w, envelope, http.StatusOK); err != nil {
		log.Err(err).Msg("writing dataflow response")
	}
}

func (h *Handler) suspendDataflow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var body model.DataFlowSuspendMessage
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := h.transfers.Suspend(r.Context(), id); err != nil {
		log.Err(err).Str("process_id", id).Msg("suspending transfer")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) terminateDataflow(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var body model.DataFlowTerminateMessage
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := h.transfers.Terminate(r.Context(), id, body.Reason); err != nil {
		log.Err(err).Str("process_id", id).Msg("terminating transfer")
		_, _ = utils.WriteJSON(w, map[string]string{"error": "Internal Server Error"}, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
