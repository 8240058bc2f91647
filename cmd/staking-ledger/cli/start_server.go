package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakelock-io/staking-ledger/internal/access"
	"github.com/stakelock-io/staking-ledger/internal/api"
	"github.com/stakelock-io/staking-ledger/internal/clients/assetledger"
	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db"
	dbmodel "github.com/stakelock-io/staking-ledger/internal/db/model"
	"github.com/stakelock-io/staking-ledger/internal/observability/metrics"
	"github.com/stakelock-io/staking-ledger/internal/observability/tracing"
	"github.com/stakelock-io/staking-ledger/internal/queue"
	"github.com/stakelock-io/staking-ledger/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up ledger db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var assetLedgerClient assetledger.AssetLedgerInterface
	assetLedgerClient = assetledger.NewClient(&cfg.AssetLedger)
	assetLedgerClient = assetledger.NewAssetLedgerWithMetrics(assetLedgerClient)

	gate := access.NewStaticOwnerGate(&cfg.Access, dbClient)

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating queue manager")
	}
	defer qm.Shutdown()

	service := services.NewService(cfg, dbClient, assetLedgerClient, gate, qm)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	if err := service.StartLedger(ctx); err != nil {
		log.Fatal().Err(err).Msg("error while starting the ledger")
	}

	apiServer := api.New(&cfg.Server, service)
	return apiServer.Start()
}
