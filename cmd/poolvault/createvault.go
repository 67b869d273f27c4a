package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

var createvault = cli.Command{
	Name:  "createvault",
	Usage: "initialize a new vault for a given asset",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "the hex identity of the vault creator",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the hex id of the asset the vault custodies",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "vault",
			Usage: "the hex address of the vault record, generated if missing",
		},
		&cli.StringFlag{
			Name:  "pool_account",
			Usage: "the hex address of the pool holding account, defaults to the vault authority",
		},
	},
	Action: createVaultAction,
}

func createVaultAction(ctx *cli.Context) error {
	requester, err := identityFlag(ctx, "identity", true)
	if err != nil {
		return err
	}
	asset, err := identityFlag(ctx, "asset", true)
	if err != nil {
		return err
	}
	poolAccount, err := identityFlag(ctx, "pool_account", false)
	if err != nil {
		return err
	}

	vaultAddress, err := identityFlag(ctx, "vault", false)
	if err != nil {
		return err
	}
	if vaultAddress.IsZero() {
		if vaultAddress, err = randomIdentity(); err != nil {
			return err
		}
	}

	return withServices(func(
		svc application.OperatorService, _ ports.TransferService,
	) error {
		if err := svc.CreateVault(
			ctx.Context, requester, vaultAddress, asset, poolAccount,
		); err != nil {
			return err
		}

		fmt.Println("vault address:", vaultAddress)
		return nil
	})
}
