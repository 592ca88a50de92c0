package app

import (
	"strings"
	"testing"

	"github.com/jankotek/hedera-services-sub001/pkg/config"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	config.Version = "0.1.0-test"
	e := newExecutor(t)
	e.Run(t, "--version")
	require.True(t, strings.HasPrefix(e.Out.String(), "Settler\nVersion: 0.1.0-test\n"))
}

func TestFees(t *testing.T) {
	e := newExecutor(t)
	e.Run(t, "fees", "--config-file", e.ConfigFile, "--transfers", "2")
	var res struct {
		NodeFee    int64  `json:"nodeFee"`
		NetworkFee int64  `json:"networkFee"`
		ServiceFee int64  `json:"serviceFee"`
		Total      string `json:"totalHbar"`
	}
	e.DecodeOut(t, &res)
	require.EqualValues(t, 1, res.NodeFee)
	require.EqualValues(t, 10, res.NetworkFee)
	require.EqualValues(t, 100, res.ServiceFee)
	require.Equal(t, "0.00000111", res.Total)

	t.Run("sample config", func(t *testing.T) {
		e.Run(t, "fees", "--config-path", "../../config", "--transfers", "2", "--sigs", "2")
		e.DecodeOut(t, &res)
		require.Positive(t, res.NodeFee)
		require.Positive(t, res.NetworkFee)
	})

	t.Run("extra arguments", func(t *testing.T) {
		e.RunWithError(t, "fees", "--config-file", e.ConfigFile, "something")
	})
}

func TestTransfer(t *testing.T) {
	e := newExecutor(t)
	in := e.WriteFile(t, "transfer.json", `{"tokenTransfers": [{"token": "0.0.5001", "transfers": [
		{"account": "0.0.1001", "amount": -10},
		{"account": "0.0.1002", "amount": 10}
	]}]}`)

	e.RunWithError(t, "transfer", "--config-file", e.ConfigFile, "--in", in)

	e.Run(t, "transfer", "--config-file", e.ConfigFile, "--in", in, "--payer", "0.0.1001")
	type impliedTransfers struct {
		Meta struct {
			Status status.Code `json:"status"`
		} `json:"meta"`
		Changes      []ledger.BalanceChange  `json:"changes"`
		AssessedFees []customfee.AssessedFee `json:"assessedCustomFees"`
	}
	var res impliedTransfers
	e.DecodeOut(t, &res)
	require.Equal(t, status.Success, res.Meta.Status)
	require.Equal(t, []customfee.AssessedFee{{
		Collector: ledger.NewAccountID(99),
		Token:     ledger.NewTokenID(5001),
		Units:     2,
	}}, res.AssessedFees)
	require.Len(t, res.Changes, 3)
	require.EqualValues(t, -12, res.Changes[0].Units)

	bad := e.WriteFile(t, "bad.json", `{"transfers": [{"account": "0.0.1001", "amount": -10}]}`)
	e.Run(t, "transfer", "--config-file", e.ConfigFile, "--in", bad, "--payer", "0.0.1001")
	res = impliedTransfers{}
	e.DecodeOut(t, &res)
	require.Equal(t, status.InvalidAccountAmounts, res.Meta.Status)
	require.Empty(t, res.Changes)
}

func TestProcessAndBalance(t *testing.T) {
	e := newExecutor(t)
	in := e.WriteFile(t, "batch.json", `[
		{"node": 0, "transaction": {"id": {"payer": "0.0.1001", "validStart": 1}, "node": "0.0.3",
		 "maxFee": 1000, "numSigs": 1,
		 "transfer": {"transfers": [{"account": "0.0.1001", "amount": -100}, {"account": "0.0.1002", "amount": 100}]}}},
		{"node": 0, "transaction": {"id": {"payer": "0.0.1001", "validStart": 2}, "node": "0.0.3",
		 "maxFee": 1000, "numSigs": 1,
		 "transfer": {"tokenTransfers": [{"token": "0.0.5001", "transfers": [
			{"account": "0.0.1001", "amount": -50}, {"account": "0.0.1002", "amount": 50}]}]}}},
		{"node": 0, "transaction": {"id": {"payer": "0.0.1001", "validStart": 1}, "node": "0.0.3",
		 "maxFee": 1000, "numSigs": 1,
		 "transfer": {"transfers": [{"account": "0.0.1001", "amount": -100}, {"account": "0.0.1002", "amount": 100}]}}}
	]`)
	e.Run(t, "process", "--config-file", e.ConfigFile, "--in", in, "--prefetch")
	var receipts []struct {
		Status  status.Code `json:"status"`
		Charged struct {
			NodeFee int64 `json:"nodeFee"`
		} `json:"charged"`
		AssessedFees []customfee.AssessedFee `json:"assessedCustomFees"`
	}
	e.DecodeOut(t, &receipts)
	require.Len(t, receipts, 3)
	require.Equal(t, status.Success, receipts[0].Status)
	require.EqualValues(t, 1, receipts[0].Charged.NodeFee)
	require.Equal(t, status.Success, receipts[1].Status)
	require.Len(t, receipts[1].AssessedFees, 1)
	require.EqualValues(t, 5, receipts[1].AssessedFees[0].Units)
	require.Equal(t, status.DuplicateTransaction, receipts[2].Status)

	var balances struct {
		Account  ledger.AccountID `json:"account"`
		Tinybars int64            `json:"tinybars"`
		Hbar     string           `json:"hbar"`
		Tokens   []struct {
			Token   ledger.TokenID `json:"token"`
			Balance int64          `json:"balance"`
		} `json:"tokens"`
	}
	e.Run(t, "balance", "--config-file", e.ConfigFile, "--account", "0.0.1002")
	e.DecodeOut(t, &balances)
	require.Equal(t, ledger.NewAccountID(1002), balances.Account)
	require.EqualValues(t, 100, balances.Tinybars)
	require.Equal(t, "0.000001", balances.Hbar)
	require.Len(t, balances.Tokens, 1)
	require.Equal(t, ledger.NewTokenID(5001), balances.Tokens[0].Token)
	require.EqualValues(t, 50, balances.Tokens[0].Balance)

	e.Run(t, "balance", "--config-file", e.ConfigFile, "--account", "0.0.1001")
	e.DecodeOut(t, &balances)
	require.EqualValues(t, 10000-100-2*111, balances.Tinybars)
	require.EqualValues(t, 1000-55, balances.Tokens[0].Balance)

	t.Run("unknown account", func(t *testing.T) {
		e.RunWithError(t, "balance", "--config-file", e.ConfigFile, "--account", "0.0.7777")
	})
	t.Run("no account", func(t *testing.T) {
		e.RunWithError(t, "balance", "--config-file", e.ConfigFile)
	})
	t.Run("bad input", func(t *testing.T) {
		e.RunWithError(t, "process", "--config-file", e.ConfigFile, "--in", e.WriteFile(t, "bad.json", "{"))
	})
}
