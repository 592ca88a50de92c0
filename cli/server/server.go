/*
Package server contains commands settling transactions against the
configured DB.
*/
package server

import (
	"fmt"
	"sort"

	"github.com/jankotek/hedera-services-sub001/cli/cmdargs"
	"github.com/jankotek/hedera-services-sub001/cli/flags"
	"github.com/jankotek/hedera-services-sub001/cli/options"
	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/jankotek/hedera-services-sub001/pkg/core/settlement"
	"github.com/jankotek/hedera-services-sub001/pkg/core/storage"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/services/metrics"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// Submission is a transaction together with the node that submitted it.
type Submission struct {
	Node        uint32                 `json:"node"`
	Transaction settlement.Transaction `json:"transaction"`
}

// NewCommands returns 'process' and 'balance' commands.
func NewCommands() []cli.Command {
	cfgFlags := append([]cli.Flag{options.Debug}, options.ConfigFlags...)
	processFlags := append([]cli.Flag{
		cli.StringFlag{Name: "in, i", Usage: "JSON file with an array of submissions (stdin if not set)"},
		cli.BoolFlag{Name: "prefetch", Usage: "compute implied transfers of the whole batch before processing"},
	}, cfgFlags...)
	balanceFlags := append([]cli.Flag{
		flags.AccountFlag{Name: "account, a", Usage: "account to show balances of"},
	}, cfgFlags...)
	return []cli.Command{
		{
			Name:      "process",
			Usage:     "settle a batch of transactions",
			UsageText: "process [--in <file>] [--prefetch] [--config-path path] [-d]",
			Description: `Processes the submitted transactions in order, persists the resulting
   state to the configured DB and prints the receipts as JSON. Submissions
   are read as a JSON array:

   [{"node": 0, "transaction": {"id": {"payer": "0.0.1001", "validStart": 1},
     "node": "0.0.3", "maxFee": 100000000, "numSigs": 1, "sigsSize": 64,
     "numPayerKeys": 1, "transfer": {"transfers": [...]}}}]
`,
			Action: processTxns,
			Flags:  processFlags,
		},
		{
			Name:      "balance",
			Usage:     "show persisted balances of an account",
			UsageText: "balance --account <account> [--config-path path]",
			Action:    showBalance,
			Flags:     balanceFlags,
		},
	}
}

// initProcessor opens the configured DB and creates a settlement processor
// over it. The returned closer must be called when the processor is no
// longer needed.
func initProcessor(ctx *cli.Context) (*settlement.Processor, config.Config, *zap.Logger, func(), error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return nil, cfg, nil, nil, cli.NewExitError(err, 1)
	}
	log, _, logCloser, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.ApplicationConfiguration)
	if err != nil {
		return nil, cfg, nil, nil, cli.NewExitError(err, 1)
	}
	closeLog := func() {
		_ = log.Sync()
		if logCloser != nil {
			_ = logCloser()
		}
	}
	store, err := storage.NewStore(cfg.ApplicationConfiguration.DBConfiguration)
	if err != nil {
		closeLog()
		return nil, cfg, nil, nil, cli.NewExitError(fmt.Errorf("could not initialize storage: %w", err), 1)
	}
	p, err := settlement.New(cfg.ProtocolConfiguration, cfg.ApplicationConfiguration, store, log)
	if err != nil {
		_ = store.Close()
		closeLog()
		return nil, cfg, nil, nil, cli.NewExitError(fmt.Errorf("could not initialize settlement: %w", err), 1)
	}
	return p, cfg, log, func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close the DB", zap.Error(err))
		}
		closeLog()
	}, nil
}

func processTxns(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	var subs []Submission
	if err := cmdargs.ReadJSON(ctx.String("in"), &subs); err != nil {
		return cli.NewExitError(fmt.Errorf("can't read submissions: %w", err), 1)
	}
	p, cfg, log, closer, err := initProcessor(ctx)
	if err != nil {
		return err
	}
	defer closer()

	prometheus := metrics.NewPrometheusService(cfg.ApplicationConfiguration.Prometheus, log)
	if err := prometheus.Start(); err != nil {
		return cli.NewExitError(fmt.Errorf("failed to start Prometheus service: %w", err), 1)
	}
	defer prometheus.ShutDown()

	if ctx.Bool("prefetch") {
		for i := range subs {
			if err := p.Prefetch(&subs[i].Transaction); err != nil {
				return cli.NewExitError(err, 1)
			}
		}
	}
	receipts := make([]*settlement.Receipt, 0, len(subs))
	for i := range subs {
		r, err := p.Process(&subs[i].Transaction, subs[i].Node)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("submission #%d: %w", i, err), 1)
		}
		receipts = append(receipts, r)
	}
	n, err := p.Persist()
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to persist: %w", err), 1)
	}
	log.Info("batch processed", zap.Int("transactions", len(receipts)), zap.Int("keys", n))
	return cmdargs.WriteJSON(ctx, receipts)
}

type tokenBalance struct {
	Token   ledger.TokenID `json:"token"`
	Balance int64          `json:"balance"`
}

type accountBalances struct {
	Account  ledger.AccountID `json:"account"`
	Tinybars int64            `json:"tinybars"`
	Hbar     string           `json:"hbar"`
	Tokens   []tokenBalance   `json:"tokens,omitempty"`
}

func showBalance(ctx *cli.Context) error {
	if err := cmdargs.EnsureNone(ctx); err != nil {
		return err
	}
	acc := flags.AccountFromContext(ctx, "account")
	if !acc.IsSet {
		return cli.NewExitError("account is not set", 1)
	}
	p, _, _, closer, err := initProcessor(ctx)
	if err != nil {
		return err
	}
	defer closer()

	b, err := p.Balance(acc.Value)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	tokens, err := p.TokenBalances(acc.Value)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	res := accountBalances{
		Account:  acc.Value,
		Tinybars: b,
		Hbar:     flags.FormatHbar(b),
	}
	for tok, balance := range tokens {
		res.Tokens = append(res.Tokens, tokenBalance{Token: tok, Balance: balance})
	}
	sort.Slice(res.Tokens, func(i, j int) bool {
		a, b := res.Tokens[i].Token, res.Tokens[j].Token
		if a.Shard != b.Shard {
			return a.Shard < b.Shard
		}
		if a.Realm != b.Realm {
			return a.Realm < b.Realm
		}
		return a.Num < b.Num
	})
	return cmdargs.WriteJSON(ctx, res)
}
