package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/types"
)

// StakingService is the ledger surface the API exposes. Satisfied by
// services.Service.
type StakingService interface {
	Stake(ctx context.Context, stakerAddress string, amount uint64) *types.Error
	ClaimReward(ctx context.Context, stakerAddress string) *types.Error
	StakeInfoOf(ctx context.Context, stakerAddress string) (*model.StakeRecordDocument, *types.Error)
	GetTokenExpiry(ctx context.Context, stakerAddress string) (int64, *types.Error)
	HasStaked(ctx context.Context, stakerAddress string) (bool, *types.Error)
	TotalStakers(ctx context.Context) (uint64, *types.Error)
	IsPaused(ctx context.Context) (bool, *types.Error)
	PlanDuration() int64
	InterestRatePercent() uint64
	EnrollmentDeadline() int64
	Pause(ctx context.Context, caller string) *types.Error
	Unpause(ctx context.Context, caller string) *types.Error
	TransferCustodialFunds(ctx context.Context, caller, to string, amount uint64) *types.Error
}

type Server struct {
	httpServer *http.Server
	service    StakingService
}

func New(cfg *config.ServerConfig, service StakingService) *Server {
	srv := &Server{service: service}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/stake", srv.handleStake)
		r.Post("/claim", srv.handleClaim)
		r.Get("/plan", srv.handlePlan)
		r.Route("/stake/{address}", func(r chi.Router) {
			r.Get("/", srv.handleStakeInfo)
			r.Get("/expiry", srv.handleTokenExpiry)
			r.Get("/exists", srv.handleHasStaked)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Post("/pause", srv.handlePause)
			r.Post("/unpause", srv.handleUnpause)
			r.Post("/transfer", srv.handleCustodialTransfer)
		})
	})

	srv.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return srv
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	log.Info().Msgf("Starting staking ledger server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
