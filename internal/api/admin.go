package api

import (
	"encoding/json"
	"net/http"

	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/pkg"
)

// CallerAddressHeader carries the identity of the administrative caller.
// The access gate decides whether that identity is the owner.
const CallerAddressHeader = "X-Caller-Address"

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	if err := s.service.Pause(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"paused": true})
}

func (s *Server) handleUnpause(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	if err := s.service.Unpause(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"paused": false})
}

type custodialTransferRequest struct {
	ToAddress string `json:"to_address"`
	Amount    uint64 `json:"amount"`
}

func (s *Server) handleCustodialTransfer(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerAddress(w, r)
	if !ok {
		return
	}

	var req custodialTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewErrorWithMsg(types.ValidationError, "invalid request body"))
		return
	}
	if err := pkg.ValidateStakerAddress(req.ToAddress); err != nil {
		writeError(w, types.NewError(types.ValidationError, err))
		return
	}

	if err := s.service.TransferCustodialFunds(r.Context(), caller, req.ToAddress, req.Amount); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"to_address": req.ToAddress,
		"amount":     req.Amount,
	})
}

func callerAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := r.Header.Get(CallerAddressHeader)
	if caller == "" {
		writeError(w, types.NewErrorWithMsg(types.Unauthorized, "missing caller address header"))
		return "", false
	}
	return caller, true
}
