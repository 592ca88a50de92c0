package charging

import (
	"testing"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
	"github.com/stretchr/testify/require"
)

func TestExemptAccounts(t *testing.T) {
	s := NewExemptAccounts(DefaultExemptAccounts...)
	require.True(t, s.IsExempt(exempt))
	require.False(t, s.IsExempt(payer))
	require.False(t, NewExemptAccounts().IsExempt(exempt))
}

func TestPolicyApply(t *testing.T) {
	testCases := []struct {
		name     string
		balance  int64
		offered  int64
		code     status.Code
		payer    int64
		node     int64
		expected fee.Object
	}{
		{"success", 1000, 1000, status.Success, 889, 1, fees},
		{"unwilling to pay network fee", 1000, 9, status.InsufficientTxFee, 1000, -10, fee.Object{}},
		{"can't afford network fee", 9, 1000, status.InsufficientPayerBalance, 9, -10, fee.Object{}},
		{"unwilling to pay all fees", 1000, 110, status.InsufficientTxFee, 989, 1, fee.Object{NodeFee: 1, NetworkFee: 10}},
		{"can't afford all fees", 110, 1000, status.InsufficientPayerBalance, 99, 1, fee.Object{NodeFee: 1, NetworkFee: 10}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, l := newTestCharging(t, tc.balance, 1000)
			c.ResetForTxn(accessorStub{payer: payer, offered: tc.offered}, 0)

			code, err := NewPolicy(c).Apply(fees)
			require.NoError(t, err)
			require.Equal(t, tc.code, code)
			require.Equal(t, tc.payer, l.balances[payer])
			require.Equal(t, 1000+tc.node, l.balances[node])
			require.Equal(t, tc.expected, c.ChargedFees())
			require.Equal(t, tc.balance+1000-l.balances[payer]-l.balances[node], l.balances[funding])
		})
	}
}

func TestPolicyApplyForDuplicate(t *testing.T) {
	c, l := newTestCharging(t, 1000, 0)
	c.ResetForTxn(accessorStub{payer: payer, offered: 1000}, 0)

	code, err := NewPolicy(c).ApplyForDuplicate(fees)
	require.NoError(t, err)
	require.Equal(t, status.DuplicateTransaction, code)
	require.EqualValues(t, 989, l.balances[payer])
	require.EqualValues(t, 10, l.balances[funding])
	require.Zero(t, c.Fees().ServiceFee)

	// Unwilling payer: the node pays up to the network fee, the status is
	// still the duplicate one.
	c.ResetForTxn(accessorStub{payer: payer, offered: 1}, 0)
	code, err = NewPolicy(c).ApplyForDuplicate(fees)
	require.NoError(t, err)
	require.Equal(t, status.DuplicateTransaction, code)
	require.EqualValues(t, 989, l.balances[payer])
	require.Zero(t, c.TotalFeesChargedToPayer())

	// Insolvent payer.
	c, l = newTestCharging(t, 5, 0)
	c.ResetForTxn(accessorStub{payer: payer, offered: 1000}, 0)
	code, err = NewPolicy(c).ApplyForDuplicate(fees)
	require.NoError(t, err)
	require.Equal(t, status.DuplicateTransaction, code)
	require.EqualValues(t, 5, l.balances[payer])
}

func TestPolicyApplyForIgnoredDueDiligence(t *testing.T) {
	c, l := newTestCharging(t, 1000, 1000)
	c.ResetForTxn(accessorStub{payer: payer, offered: 1000}, 0)

	require.NoError(t, NewPolicy(c).ApplyForIgnoredDueDiligence(fees))
	require.EqualValues(t, 1000, l.balances[payer])
	require.EqualValues(t, 990, l.balances[node])
	require.EqualValues(t, 10, l.balances[funding])
	require.Zero(t, c.TotalFeesChargedToPayer())
}
