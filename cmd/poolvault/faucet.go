package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

var faucet = cli.Command{
	Name:  "faucet",
	Usage: "credit a holding account with test funds",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "the hex identity of the holder to fund",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "asset",
			Usage:    "the hex identity of the asset",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to credit, in base units",
			Required: true,
		},
	},
	Action: faucetAction,
}

func faucetAction(ctx *cli.Context) error {
	holder, err := identityFlag(ctx, "identity", true)
	if err != nil {
		return err
	}
	asset, err := identityFlag(ctx, "asset", true)
	if err != nil {
		return err
	}
	amount := ctx.Uint64("amount")

	return withServices(func(
		_ application.OperatorService, ledger ports.TransferService,
	) error {
		if err := ledger.Fund(ctx.Context, asset, holder, amount); err != nil {
			return err
		}

		fmt.Printf("funded %s with %d of asset %s\n", holder, amount, asset)
		return nil
	})
}
