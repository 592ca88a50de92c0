package usage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testBaseMeta = BaseTransactionMeta{MemoUtf8Bytes: 100, NumExplicitTransfers: 2}
	testSigUsage = SigUsage{NumSigs: 3, SigsSize: 100, NumPayerKeys: 2}
)

func TestAccumulatorReset(t *testing.T) {
	var a Accumulator

	a.AddGas(10)
	a.AddSbs(10)
	a.AddSbpr(10)
	a.ResetForTransaction(testBaseMeta, testSigUsage)

	require.EqualValues(t, 0, a.Gas())
	require.EqualValues(t, 0, a.NodeSbpr())
	require.EqualValues(t, 0, a.ServiceSbh())
	require.EqualValues(t, 4, a.NodeBpr())
	require.EqualValues(t, 3, a.NetworkVpt())
	require.EqualValues(t, 272, a.UniversalBpt())
	require.EqualValues(t, 2, a.NodeVpt())
	require.EqualValues(t, 180*296, a.rbs)
	require.EqualValues(t, 180*36, a.networkRbs)
	require.EqualValues(t, 1, a.NetworkRbh())
	require.EqualValues(t, 14, a.ServiceRbh())
}

func TestAccumulatorAdders(t *testing.T) {
	var a Accumulator
	a.ResetForTransaction(testBaseMeta, testSigUsage)

	a.AddBpt(8)
	a.AddBpr(6)
	a.AddSbpr(5)
	a.AddVpt(1)
	a.AddGas(1000)
	a.AddRbs(3600 * 10)
	a.AddNetworkRbs(3600)
	a.AddSbs(7199)

	require.EqualValues(t, 280, a.UniversalBpt())
	require.EqualValues(t, 10, a.NodeBpr())
	require.EqualValues(t, 5, a.NodeSbpr())
	require.EqualValues(t, 4, a.NetworkVpt())
	require.EqualValues(t, 1000, a.Gas())
	require.EqualValues(t, 24, a.ServiceRbh())
	require.EqualValues(t, 2, a.NetworkRbh())
	require.EqualValues(t, 1, a.ServiceSbh())

	a.AddSbs(1)
	require.EqualValues(t, 2, a.ServiceSbh())

	a.SetNumPayerKeys(7)
	require.EqualValues(t, 7, a.NodeVpt())
}

func TestAccumulatorProjectionsAreIdempotent(t *testing.T) {
	var a Accumulator
	a.ResetForTransaction(testBaseMeta, testSigUsage)
	a.AddSbs(12345)

	first := a.String()
	require.Equal(t, a.ServiceSbh(), a.ServiceSbh())
	require.Equal(t, a.ServiceRbh(), a.ServiceRbh())
	require.Equal(t, a.NetworkRbh(), a.NetworkRbh())
	require.Equal(t, first, a.String())
}

func TestCryptoTransferUsage(t *testing.T) {
	var (
		a        Accumulator
		baseMeta = BaseTransactionMeta{NumExplicitTransfers: 2}
		sigUsage = SigUsage{NumSigs: 1, SigsSize: 64, NumPayerKeys: 1}
		xferMeta = CryptoTransferMeta{
			NumTokensInvolved:      1,
			NumFungibleTransfers:   2,
			NumNftOwnershipChanges: 1,
			NumAssessedCustomFees:  1,
		}
	)
	a.AddBpt(1 << 20)

	CryptoTransferUsage(sigUsage, xferMeta, baseMeta, &a)

	require.EqualValues(t, 344, a.UniversalBpt())
	require.EqualValues(t, 82800, a.rbs)
	require.EqualValues(t, 23, a.ServiceRbh())
	require.EqualValues(t, 1, a.NodeVpt())

	xferMeta.TokenMultiplier = 2
	CryptoTransferUsage(sigUsage, xferMeta, baseMeta, &a)
	require.EqualValues(t, 344+24+2*32, a.UniversalBpt())
}
