package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
	"github.com/poolvault/poolvault-daemon/pkg/mathutil"
)

var balance = cli.Command{
	Name:  "balance",
	Usage: "show the vault total and the claim of a depositor",
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
	},
	Action: balanceAction,
}

func balanceAction(ctx *cli.Context) error {
	requester, err := identityFlag(ctx, "identity", true)
	if err != nil {
		return err
	}
	vaultAddress, err := identityFlag(ctx, "vault", true)
	if err != nil {
		return err
	}

	return withServices(func(
		svc application.OperatorService, _ ports.TransferService,
	) error {
		info, err := svc.GetBalance(ctx.Context, requester, vaultAddress)
		if err != nil {
			return err
		}

		fmt.Println("asset:", info.Asset)
		fmt.Println("pool account:", info.PoolAccount)
		fmt.Println("total deposits:", mathutil.FormatAmount(info.TotalDeposits))
		fmt.Println("your claim:", mathutil.FormatAmount(info.UserAmount))
		return nil
	})
}
