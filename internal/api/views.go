package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stakelock-io/staking-ledger/internal/types"
	"github.com/stakelock-io/staking-ledger/pkg"
)

type stakeInfoResponse struct {
	StakerAddress string `json:"staker_address"`
	StartTime     int64  `json:"start_time"`
	MaturityTime  int64  `json:"maturity_time"`
	Principal     uint64 `json:"principal"`
	State         string `json:"state"`
	Reward        uint64 `json:"reward,omitempty"`
	ClaimedAt     int64  `json:"claimed_at,omitempty"`
}

func (s *Server) handleStakeInfo(w http.ResponseWriter, r *http.Request) {
	address, ok := stakerAddressParam(w, r)
	if !ok {
		return
	}

	record, err := s.service.StakeInfoOf(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stakeInfoResponse{
		StakerAddress: record.StakerAddress,
		StartTime:     record.StartTime,
		MaturityTime:  record.MaturityTime,
		Principal:     record.Principal,
		State:         record.State.String(),
		Reward:        record.Reward,
		ClaimedAt:     record.ClaimedAt,
	})
}

func (s *Server) handleTokenExpiry(w http.ResponseWriter, r *http.Request) {
	address, ok := stakerAddressParam(w, r)
	if !ok {
		return
	}

	expiry, err := s.service.GetTokenExpiry(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"maturity_time": expiry})
}

func (s *Server) handleHasStaked(w http.ResponseWriter, r *http.Request) {
	address, ok := stakerAddressParam(w, r)
	if !ok {
		return
	}

	staked, err := s.service.HasStaked(r.Context(), address)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"has_staked": staked})
}

type planResponse struct {
	PlanDurationSeconds int64  `json:"plan_duration_seconds"`
	InterestRatePercent uint64 `json:"interest_rate_percent"`
	EnrollmentDeadline  int64  `json:"enrollment_deadline"`
	TotalStakers        uint64 `json:"total_stakers"`
	Paused              bool   `json:"paused"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	totalStakers, err := s.service.TotalStakers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	paused, err := s.service.IsPaused(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		PlanDurationSeconds: s.service.PlanDuration(),
		InterestRatePercent: s.service.InterestRatePercent(),
		EnrollmentDeadline:  s.service.EnrollmentDeadline(),
		TotalStakers:        totalStakers,
		Paused:              paused,
	})
}

func stakerAddressParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	address := chi.URLParam(r, "address")
	if err := pkg.ValidateStakerAddress(address); err != nil {
		writeError(w, types.NewError(types.ValidationError, err))
		return "", false
	}
	return address, true
}
