package main

import (
	"crypto/rand"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/config"
	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	dbbadger "github.com/poolvault/poolvault-daemon/internal/infrastructure/storage/db/badger"
	"github.com/poolvault/poolvault-daemon/internal/infrastructure/transfer"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "poolvault operator CLI"
	app.Usage = "Command line interface for managing a pooled-fund vault"
	app.Commands = append(
		app.Commands,
		&createvault,
		&deposit,
		&withdraw,
		&balance,
		&listdeposits,
		&listwithdrawals,
		&faucet,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "[poolvault]", err)
	os.Exit(1)
}

// withServices opens the stores under the configured datadir, wires the
// operator service and runs fn, closing everything on return.
func withServices(
	fn func(svc application.OperatorService, ledger ports.TransferService) error,
) error {
	dbManager, err := dbbadger.NewDbManager(config.GetDbDir(), nil)
	if err != nil {
		return err
	}
	defer dbManager.Close()

	ledgerStore, err := transfer.NewLedgerStore(config.GetLedgerDir(), nil)
	if err != nil {
		return err
	}
	defer ledgerStore.Close()

	ledger := transfer.NewTokenLedger(
		ledgerStore, config.GetInt(config.TransferRateLimitKey),
	)
	return fn(application.NewOperatorService(dbManager, ledger), ledger)
}

func identityFlag(
	ctx *cli.Context, name string, required bool,
) (domain.Identity, error) {
	val := ctx.String(name)
	if val == "" {
		if required {
			return domain.Identity{}, fmt.Errorf("%s is required", name)
		}
		return domain.Identity{}, nil
	}
	return domain.IdentityFromHex(val)
}

func randomIdentity() (domain.Identity, error) {
	var id domain.Identity
	if _, err := rand.Read(id[:]); err != nil {
		return id, err
	}
	return id, nil
}
