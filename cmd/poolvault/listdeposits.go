package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolvault/poolvault-daemon/internal/core/application"
	"github.com/poolvault/poolvault-daemon/internal/core/domain"
	"github.com/poolvault/poolvault-daemon/internal/core/ports"
)

var listdeposits = cli.Command{
	Name:  "listdeposits",
	Usage: "list the deposits recorded for a vault",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "vault",
			Usage:    "the hex address of the vault record",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "the page number to fetch",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "size",
			Usage: "the number of records per page",
			Value: 10,
		},
	},
	Action: listDepositsAction,
}

func listDepositsAction(ctx *cli.Context) error {
	vaultAddress, err := identityFlag(ctx, "vault", true)
	if err != nil {
		return err
	}
	page := domain.NewPage(ctx.Int("page"), ctx.Int("size"))

	return withServices(func(
		svc application.OperatorService, _ ports.TransferService,
	) error {
		deposits, err := svc.ListDeposits(ctx.Context, vaultAddress, page)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(deposits, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	})
}
