package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakelock-io/staking-ledger/internal/config"
	"github.com/stakelock-io/staking-ledger/internal/db"
)

func DumpStakesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-stakes",
		Short: "Prints every stake record as JSON, one per line",
		Args:  cobra.ExactArgs(0),
		Run:   dumpStakes,
	}

	return cmd
}

func dumpStakes(cmd *cobra.Command, args []string) {
	if err := dumpStakesE(cmd, args); err != nil {
		log.Err(err).Msg("Failed to dump stake records")
		os.Exit(1)
	}

	os.Exit(0)
}

func dumpStakesE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return err
	}

	records, err := dbClient.GetAllStakeRecords(ctx)
	if err != nil {
		return err
	}
	defer func() {
		fmt.Fprintf(os.Stderr, "Dumped %d stake records\n", len(records))
	}()

	enc := json.NewEncoder(os.Stdout)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return err
		}
	}

	return nil
}
