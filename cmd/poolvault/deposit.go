package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "deposit funds from your holding account into a vault",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "identity",
			Usage:    "the hex identity of the depositor",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "vault",
			Usage:    "the hex address of the vault record",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to deposit, in base units",
			Required: true,
		},
	},
	Action: depositAction,
}

func depositAction(ctx *cli.Context) error {
	requester, err := identityFlag(ctx, "identity", true)
	if err != nil {
		return err
	}
	vaultAddress, err := identityFlag(ctx, "vault", true)
	if err != nil {
		return err
	}
	amount := ctx.Uint64("amount")

	return withServices(func(
		svc application.OperatorService, _ ports.TransferService,
	) error {
		if err := svc.Deposit(ctx.Context, requester, vaultAddress, amount); err != nil {
			return err
		}

		fmt.Printf("deposited %d into vault %s\n", amount, vaultAddress)
		return nil
	})
}
