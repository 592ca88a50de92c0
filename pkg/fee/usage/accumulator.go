/*
Package usage estimates the resources consumed by a single operation.
*/
package usage

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
)

// BaseTransactionMeta describes the parts of any transaction that affect
// its usage independently of its type.
type BaseTransactionMeta struct {
	MemoUtf8Bytes        int
	NumExplicitTransfers int
}

// SigUsage describes signatures attached to a transaction.
type SigUsage struct {
	NumSigs      int
	SigsSize     int
	NumPayerKeys int
}

// Accumulator gathers raw resource usage counters of one operation and
// exposes them as network, node and service scoped projections. Storage
// resources are kept in byte-seconds and projected into byte-hours.
type Accumulator struct {
	// numPayerKeys is the signature verification work done only by the
	// submitting node.
	numPayerKeys int64

	bpt        int64
	bpr        int64
	sbpr       int64
	vpt        int64
	gas        int64
	rbs        int64
	sbs        int64
	networkRbs int64
}

// ResetForTransaction reinitializes all counters from the base transaction
// metadata and signature usage.
func (a *Accumulator) ResetForTransaction(baseMeta BaseTransactionMeta, sigUsage SigUsage) {
	memoBytes := int64(baseMeta.MemoUtf8Bytes)
	numTransfers := int64(baseMeta.NumExplicitTransfers)

	a.gas, a.sbs, a.sbpr = 0, 0, 0

	a.bpr = fee.IntSize
	a.vpt = int64(sigUsage.NumSigs)
	a.bpt = fee.BasicTxBodySize + memoBytes + int64(sigUsage.SigsSize)
	a.rbs = fee.ReceiptStorageTimeSec * (fee.BasicTxRecordSize + memoBytes + fee.BasicAccountAmtSize*numTransfers)

	a.networkRbs = fee.ReceiptStorageTimeSec * fee.BasicReceiptSize
	a.numPayerKeys = int64(sigUsage.NumPayerKeys)
}

// AddBpt adds bytes per transaction.
func (a *Accumulator) AddBpt(amount int64) { a.bpt += amount }

// AddBpr adds bytes per response.
func (a *Accumulator) AddBpr(amount int64) { a.bpr += amount }

// AddSbpr adds storage bytes per response.
func (a *Accumulator) AddSbpr(amount int64) { a.sbpr += amount }

// AddVpt adds signature verifications.
func (a *Accumulator) AddVpt(amount int64) { a.vpt += amount }

// AddGas adds gas.
func (a *Accumulator) AddGas(amount int64) { a.gas += amount }

// AddRbs adds RAM byte-seconds.
func (a *Accumulator) AddRbs(amount int64) { a.rbs += amount }

// AddSbs adds storage byte-seconds.
func (a *Accumulator) AddSbs(amount int64) { a.sbs += amount }

// AddNetworkRbs adds receipt byte-seconds kept by the network.
func (a *Accumulator) AddNetworkRbs(amount int64) { a.networkRbs += amount }

// SetNumPayerKeys overrides the number of payer keys.
func (a *Accumulator) SetNumPayerKeys(n int64) { a.numPayerKeys = n }

// UniversalBpt is charged by both the network and the node.
func (a *Accumulator) UniversalBpt() int64 { return a.bpt }

// NetworkVpt returns network signature verifications.
func (a *Accumulator) NetworkVpt() int64 { return a.vpt }

// NetworkRbh returns network receipt byte-hours.
func (a *Accumulator) NetworkRbh() int64 {
	return fee.NonDegenerateDiv(a.networkRbs, fee.HrsDivisor)
}

// NodeBpr returns node response bytes.
func (a *Accumulator) NodeBpr() int64 { return a.bpr }

// NodeSbpr returns node storage response bytes.
func (a *Accumulator) NodeSbpr() int64 { return a.sbpr }

// NodeVpt returns the verifications done by the submitting node only.
func (a *Accumulator) NodeVpt() int64 { return a.numPayerKeys }

// ServiceRbh returns service RAM byte-hours.
func (a *Accumulator) ServiceRbh() int64 {
	return fee.NonDegenerateDiv(a.rbs, fee.HrsDivisor)
}

// ServiceSbh returns service storage byte-hours.
func (a *Accumulator) ServiceSbh() int64 {
	return fee.NonDegenerateDiv(a.sbs, fee.HrsDivisor)
}

// Gas returns the accumulated gas.
func (a *Accumulator) Gas() int64 { return a.gas }

// String implements fmt.Stringer.
func (a *Accumulator) String() string {
	return fmt.Sprintf("universalBpt=%d networkVpt=%d networkRbh=%d nodeBpr=%d nodeSbpr=%d nodeVpt=%d serviceSbh=%d serviceRbh=%d",
		a.UniversalBpt(), a.NetworkVpt(), a.NetworkRbh(), a.NodeBpr(), a.NodeSbpr(),
		a.NodeVpt(), a.ServiceSbh(), a.ServiceRbh())
}
