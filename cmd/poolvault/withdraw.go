package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

var withdraw = cli.Command{
	Name:  "withdraw",
	Usage: "withdraw funds from a vault back to a holding account",
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
			Usage:    "the amount to withdraw, in base units",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "destination",
			Usage: "the hex identity of the receiving holder, defaults to the depositor",
		},
	},
	Action: withdrawAction,
}

func withdrawAction(ctx *cli.Context) error {
	requester, err := identityFlag(ctx, "identity", true)
	if err != nil {
		return err
	}
	vaultAddress, err := identityFlag(ctx, "vault", true)
	if err != nil {
		return err
	}
	destination, err := identityFlag(ctx, "destination", false)
	if err != nil {
		return err
	}
	amount := ctx.Uint64("amount")

	return withServices(func(
		svc application.OperatorService, _ ports.TransferService,
	) error {
		if err := svc.Withdraw(
			ctx.Context, requester, vaultAddress, destination, amount,
		); err != nil {
			return err
		}

		target := destination
		if target.IsZero() {
			target = requester
		}
		fmt.Printf("withdrew %d from vault %s to %s\n", amount, vaultAddress, target)
		return nil
	})
}
