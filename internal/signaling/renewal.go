// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signaling

import (
	"net/http"

	"github.com/dataspace-connector/dataplane/internal/logger"
	"github.com/dataspace-connector/dataplane/internal/model"
	"github.com/dataspace-connector/dataplane/internal/utils"
)

func (h *Handler) jwks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	keys := h.engine.Keys()
	if _, err := utils.WriteJSON(w, keys, http.StatusOK); err != nil {
		log.Err(err).Msg("writing jwks document")
	}
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		_, _ = utils.WriteJSON(w, map[string]string{"error": "Wrong credentials"}, http.StatusBadRequest)
		return
	}

	req := model.TokenRequest{
		RefreshToken: r.FormValue("refresh_token"),
		ClientID:     r.FormValue("client_id"),
	}

	resp, err := h.refresh.Refresh(r.Context(), req)
	if err != nil {
		log.Err(err).Msg("refreshing token")
		respErr := responseFromError(err)
		_, _ = utils.WriteJSON(w, map[string]string{"error": respErr.message}, respErr.status)
		return
	}

	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Msg("writing token response")
	}
}
