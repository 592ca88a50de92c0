package calc

import (
	"math"
	"math/big"
	"testing"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/usage"
	"github.com/stretchr/testify/require"
)

// usageStub is a fixed Usage implementation.
type usageStub struct {
	bpt, networkVpt, networkRbh, nodeBpr, nodeSbpr, nodeVpt, serviceRbh, serviceSbh int64
}

func (u usageStub) UniversalBpt() int64 { return u.bpt }
func (u usageStub) NetworkVpt() int64   { return u.networkVpt }
func (u usageStub) NetworkRbh() int64   { return u.networkRbh }
func (u usageStub) NodeBpr() int64      { return u.nodeBpr }
func (u usageStub) NodeSbpr() int64     { return u.nodeSbpr }
func (u usageStub) NodeVpt() int64      { return u.nodeVpt }
func (u usageStub) ServiceRbh() int64   { return u.serviceRbh }
func (u usageStub) ServiceSbh() int64   { return u.serviceSbh }

var (
	testRate  = fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 12}
	testUsage = usageStub{
		bpt: 256, networkVpt: 2, networkRbh: 2160, nodeBpr: 4,
		nodeSbpr: 0, nodeVpt: 1, serviceRbh: 2160, serviceSbh: 0,
	}
	testPrices = fee.Data{
		Network: fee.Components{Min: 0, Max: 1_000_000_000_000, Constant: 100_000, Bpt: 100, Vpt: 20_000, Rbh: 7},
		Node:    fee.Components{Min: 0, Max: 1_000_000_000_000, Constant: 20_000, Bpt: 100, Vpt: 20_000, Bpr: 8, Sbpr: 2},
		Service: fee.Components{Min: 0, Max: 1_000_000_000_000, Constant: 50_000, Rbh: 7, Sbh: 1},
	}
)

func TestSafeAccumulate(t *testing.T) {
	v, err := SafeAccumulate(1, 1, 1)
	require.NoError(t, err)
	require.EqualValues(t, 3, v)

	v, err = SafeAccumulate(1, 1, 1, 1, 1)
	require.NoError(t, err)
	require.EqualValues(t, 5, v)

	_, err = SafeAccumulate(1, math.MaxInt64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = SafeAccumulate(-1, 1, 1)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = SafeAccumulate(1, 1, -1)
	require.ErrorIs(t, err, ErrOverflow)

	// Sum is positive again after wrapping twice, still an overflow.
	_, err = SafeAccumulate(math.MaxInt64, math.MaxInt64, 2)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestFees(t *testing.T) {
	res, err := Fees(testUsage, testPrices, testRate, 1)
	require.NoError(t, err)

	network := (int64(100_000) + 256*100 + 2*20_000 + 2160*7) / 1000
	node := (int64(20_000) + 256*100 + 4*8 + 0*2 + 1*20_000) / 1000
	service := (int64(50_000) + 2160*7 + 0) / 1000
	require.Equal(t, fee.Object{
		NetworkFee: network / 12,
		NodeFee:    node / 12,
		ServiceFee: service / 12,
	}, res)

	multiplied, err := Fees(testUsage, testPrices, testRate, 3)
	require.NoError(t, err)
	require.Equal(t, 3*res.NetworkFee, multiplied.NetworkFee)
	require.Equal(t, 3*res.NodeFee, multiplied.NodeFee)
	require.Equal(t, 3*res.ServiceFee, multiplied.ServiceFee)
}

func TestFeesWithAccumulator(t *testing.T) {
	var acc usage.Accumulator
	acc.ResetForTransaction(usage.BaseTransactionMeta{MemoUtf8Bytes: 10, NumExplicitTransfers: 2},
		usage.SigUsage{NumSigs: 1, SigsSize: 64, NumPayerKeys: 1})

	res, err := Fees(&acc, testPrices, fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 1}, 1)
	require.NoError(t, err)
	require.True(t, res.NetworkFee > 0)
	require.True(t, res.NodeFee > 0)
	require.True(t, res.ServiceFee > 0)

	again, err := Fees(&acc, testPrices, fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 1}, 1)
	require.NoError(t, err)
	require.Equal(t, res, again)
}

func TestFeesClampToMax(t *testing.T) {
	prices := testPrices
	prices.Network = fee.Components{Min: 0, Max: 1_234_567, Constant: 1_000_000_000, Bpt: 1_000_000}

	res, err := Fees(testUsage, prices, fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 1}, 1)
	require.NoError(t, err)
	require.EqualValues(t, 1_234_567/fee.FeeDivisorFactor, res.NetworkFee)
}

func TestFeesClampToMin(t *testing.T) {
	prices := testPrices
	prices.Service = fee.Components{Min: 5_000_000, Max: 10_000_000}

	res, err := Fees(testUsage, prices, fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 1}, 1)
	require.NoError(t, err)
	require.EqualValues(t, 5_000, res.ServiceFee)
}

func TestFeesOverflow(t *testing.T) {
	t.Run("accumulation", func(t *testing.T) {
		prices := testPrices
		prices.Node.Constant = math.MaxInt64 - 1
		_, err := Fees(testUsage, prices, testRate, 1)
		require.ErrorIs(t, err, ErrOverflow)
	})
	t.Run("product", func(t *testing.T) {
		prices := testPrices
		prices.Network.Bpt = math.MaxInt64 / 2
		_, err := Fees(testUsage, prices, testRate, 1)
		require.ErrorIs(t, err, ErrOverflow)
	})
	t.Run("multiplier", func(t *testing.T) {
		prices := testPrices
		prices.Service = fee.Components{Min: math.MaxInt64, Max: math.MaxInt64}
		_, err := Fees(testUsage, prices, fee.ExchangeRate{HbarEquiv: 1, CentEquiv: 1}, 1001)
		require.ErrorIs(t, err, ErrOverflow)
	})
	t.Run("negative price", func(t *testing.T) {
		prices := testPrices
		prices.Service.Rbh = -1
		_, err := Fees(testUsage, prices, testRate, 1)
		require.ErrorIs(t, err, ErrOverflow)
	})
}

func TestTinycentsToTinybars(t *testing.T) {
	rate := fee.ExchangeRate{HbarEquiv: 1001, CentEquiv: 1000}

	v, err := TinycentsToTinybars(1000, rate)
	require.NoError(t, err)
	require.EqualValues(t, 1001, v)

	amount := int64(math.MaxInt64 / 1000)
	expected := new(big.Int).Mul(big.NewInt(amount), big.NewInt(1001))
	expected.Quo(expected, big.NewInt(1000))

	v, err = TinycentsToTinybars(amount, rate)
	require.NoError(t, err)
	require.Equal(t, expected.Int64(), v)

	_, err = TinycentsToTinybars(math.MaxInt64, fee.ExchangeRate{HbarEquiv: 2, CentEquiv: 1})
	require.ErrorIs(t, err, ErrOverflow)

	_, err = TinycentsToTinybars(1, fee.ExchangeRate{HbarEquiv: 1})
	require.ErrorIs(t, err, ErrOverflow)
}
