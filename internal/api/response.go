package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/types"
)

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, err *types.Error) {
	msg := err.Code.String()
	if unwrapped := errors.Unwrap(err); unwrapped != nil {
		msg = unwrapped.Error()
	}
	// internal details stay in the logs
	if err.Code == types.InternalServiceError {
		msg = "internal service error"
	}

	writeJSON(w, statusFor(err.Code), errorResponse{
		ErrorCode: err.Code.String(),
		Message:   msg,
	})
}

func statusFor(code types.ErrorCode) int {
	switch code {
	case types.InvalidAmount, types.ValidationError:
		return http.StatusBadRequest
	case types.Unauthorized:
		return http.StatusUnauthorized
	case types.InsufficientFunds:
		return http.StatusPaymentRequired
	case types.Paused, types.PlanClosed:
		return http.StatusForbidden
	case types.NotParticipant:
		return http.StatusNotFound
	case types.AlreadyStaked, types.AlreadyClaimed, types.NotMatured:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
