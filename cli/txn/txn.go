/*
Package txn contains offline commands pricing transfers and expanding them
into implied balance changes.
*/
package txn

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/cli/cmdargs"
	"github.com/jankotek/hedera-services-sub001/cli/flags"
	"github.com/jankotek/hedera-services-sub001/cli/options"
	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/calc"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/usage"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/marshal"
	"github.com/urfave/cli"
)

// NewCommands returns 'fees' and 'transfer' commands.
func NewCommands() []cli.Command {
	feesFlags := append([]cli.Flag{
		cli.IntFlag{Name: "transfers", Usage: "number of native coin adjustments"},
		cli.IntFlag{Name: "tokens", Usage: "number of tokens involved"},
		cli.IntFlag{Name: "token-transfers", Usage: "number of fungible token adjustments"},
		cli.IntFlag{Name: "nft-transfers", Usage: "number of NFT ownership changes"},
		cli.IntFlag{Name: "custom-fees", Usage: "number of assessed custom fees"},
		cli.IntFlag{Name: "sigs", Value: 1, Usage: "number of signatures"},
		cli.IntFlag{Name: "sigs-size", Value: 64, Usage: "size of signatures in bytes"},
		cli.IntFlag{Name: "payer-keys", Value: 1, Usage: "number of payer keys"},
		cli.IntFlag{Name: "memo-bytes", Usage: "size of the memo in bytes"},
	}, options.ConfigFlags...)
	transferFlags := append([]cli.Flag{
		flags.AccountFlag{Name: "payer, p", Usage: "account paying transaction and custom fees"},
		cli.StringFlag{Name: "in, i", Usage: "JSON file with the transfer (stdin if not set)"},
	}, options.ConfigFlags...)
	return []cli.Command{
		{
			Name:   "fees",
			Usage:  "compute the fees of a crypto transfer",
			Action: computeFees,
			Flags:  feesFlags,
		},
		{
			Name:      "transfer",
			Usage:     "expand a crypto transfer into implied balance changes",
			UsageText: "transfer --payer <account> [--in <file>] [--config-path path]",
			Description: `Validates the transfer and assesses its custom fees using the genesis
   token schedules from the configuration. The transfer is read as JSON:

   {"transfers": [{"account": "0.0.1001", "amount": -10}, ...],
    "tokenTransfers": [{"token": "0.0.5001", "transfers": [...],
                        "nftTransfers": [{"sender": "0.0.1001", "receiver": "0.0.1002", "serial": 1}]}]}
`,
			Action: expandTransfer,
			Flags:  transferFlags,
		},
	}
}

type feesResult struct {
	fee.Object
	Total string `json:"totalHbar"`
}

func computeFees(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	p := cfg.ProtocolConfiguration

	var acc usage.Accumulator
	usage.CryptoTransferUsage(usage.SigUsage{
		NumSigs:      ctx.Int("sigs"),
		SigsSize:     ctx.Int("sigs-size"),
		NumPayerKeys: ctx.Int("payer-keys"),
	}, usage.CryptoTransferMeta{
		TokenMultiplier:        p.TokenTransferUsageMultiplier,
		NumTokensInvolved:      ctx.Int("tokens"),
		NumFungibleTransfers:   ctx.Int("token-transfers"),
		NumNftOwnershipChanges: ctx.Int("nft-transfers"),
		NumAssessedCustomFees:  ctx.Int("custom-fees"),
	}, usage.BaseTransactionMeta{
		MemoUtf8Bytes:        ctx.Int("memo-bytes"),
		NumExplicitTransfers: ctx.Int("transfers"),
	}, &acc)

	fees, err := calc.Fees(&acc, p.FeeSchedule, p.ExchangeRate, p.CongestionMultiplier)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return cmdargs.WriteJSON(ctx, feesResult{Object: fees, Total: flags.FormatHbar(fees.Total())})
}

// genesisSchedules looks up custom fees of the tokens created at genesis.
type genesisSchedules map[ledger.TokenID][]customfee.Fee

func newGenesisSchedules(g config.Genesis) genesisSchedules {
	s := make(genesisSchedules, len(g.Tokens))
	for _, tok := range g.Tokens {
		s[tok.ID] = tok.CustomFees
	}
	return s
}

// Lookup implements customfee.Schedules interface.
func (s genesisSchedules) Lookup(id ledger.TokenID) ([]customfee.Fee, error) {
	return s[id], nil
}

func expandTransfer(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	payer := flags.AccountFromContext(ctx, "payer")
	if !payer.IsSet {
		return cli.NewExitError("payer is not set", 1)
	}
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	var xfer ledger.CryptoTransfer
	if err := cmdargs.ReadJSON(ctx.String("in"), &xfer); err != nil {
		return cli.NewExitError(fmt.Errorf("can't read transfer: %w", err), 1)
	}
	m := marshal.New(cfg.ProtocolConfiguration.TransferProps(), newGenesisSchedules(cfg.ProtocolConfiguration.Genesis))
	it, err := m.Unmarshal(xfer, payer.AccountID())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return cmdargs.WriteJSON(ctx, it)
}
