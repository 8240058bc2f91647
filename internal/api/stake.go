package api

import (
	"encoding/json"
	"net/http"

	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/pkg"
)

type stakeRequest struct {
	StakerAddress string `json:"staker_address"`
	Amount        uint64 `json:"amount"`
}

type stakeResponse struct {
	StakerAddress string `json:"staker_address"`
	Principal     uint64 `json:"principal"`
	MaturityTime  int64  `json:"maturity_time"`
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	var req stakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewErrorWithMsg(types.ValidationError, "invalid request body"))
		return
	}
	if err := pkg.ValidateStakerAddress(req.StakerAddress); err != nil {
		writeError(w, types.NewError(types.ValidationError, err))
		return
	}

	if stakeErr := s.service.Stake(r.Context(), req.StakerAddress, req.Amount); stakeErr != nil {
		writeError(w, stakeErr)
		return
	}

	record, infoErr := s.service.StakeInfoOf(r.Context(), req.StakerAddress)
	if infoErr != nil {
		writeError(w, infoErr)
		return
	}

	writeJSON(w, http.StatusCreated, stakeResponse{
		StakerAddress: record.StakerAddress,
		Principal:     record.Principal,
		MaturityTime:  record.MaturityTime,
	})
}

type claimRequest struct {
	StakerAddress string `json:"staker_address"`
}

type claimResponse struct {
	StakerAddress string `json:"staker_address"`
	Principal     uint64 `json:"principal"`
	Reward        uint64 `json:"reward"`
	Payout        uint64 `json:"payout"`
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, types.NewErrorWithMsg(types.ValidationError, "invalid request body"))
		return
	}
	if err := pkg.ValidateStakerAddress(req.StakerAddress); err != nil {
		writeError(w, types.NewError(types.ValidationError, err))
		return
	}

	if claimErr := s.service.ClaimReward(r.Context(), req.StakerAddress); claimErr != nil {
		writeError(w, claimErr)
		return
	}

	record, infoErr := s.service.StakeInfoOf(r.Context(), req.StakerAddress)
	if infoErr != nil {
		writeError(w, infoErr)
		return
	}

	writeJSON(w, http.StatusOK, claimResponse{
		StakerAddress: record.StakerAddress,
		Principal:     record.Principal,
		Reward:        record.Reward,
		Payout:        record.Principal + record.Reward,
	})
}
