package settlement

import (
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/fee"
	"github.com/jankotek/hedera-services-sub001/pkg/fee/usage"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/status"
)

// TxnID identifies a transaction, it's unique per payer and valid start.
type TxnID struct {
	Payer ledger.AccountID `json:"payer"`
	// ValidStart is the transaction valid start time in nanoseconds.
	ValidStart int64 `json:"validStart"`
}

// String implements the fmt.Stringer interface.
func (id TxnID) String() string {
	return fmt.Sprintf("%s@%d", id.Payer, id.ValidStart)
}

// Transaction is a signed crypto transfer submitted via some node.
type Transaction struct {
	ID TxnID `json:"id"`
	// Node is the account of the node the payer designated to submit the
	// transaction.
	Node ledger.AccountID `json:"node"`
	// MaxFee is the maximum fee in tinybars the payer is willing to pay.
	MaxFee int64  `json:"maxFee"`
	Memo   string `json:"memo,omitempty"`

	NumSigs      int `json:"numSigs"`
	SigsSize     int `json:"sigsSize"`
	NumPayerKeys int `json:"numPayerKeys"`

	Transfer ledger.CryptoTransfer `json:"transfer"`
}

// Payer implements charging.Accessor interface.
func (t *Transaction) Payer() ledger.AccountID {
	return t.ID.Payer
}

// OfferedFee implements charging.Accessor interface.
func (t *Transaction) OfferedFee() int64 {
	return t.MaxFee
}

func (t *Transaction) sigUsage() usage.SigUsage {
	return usage.SigUsage{
		NumSigs:      t.NumSigs,
		SigsSize:     t.SigsSize,
		NumPayerKeys: t.NumPayerKeys,
	}
}

func (t *Transaction) baseMeta() usage.BaseTransactionMeta {
	return usage.BaseTransactionMeta{
		MemoUtf8Bytes:        len(t.Memo),
		NumExplicitTransfers: len(t.Transfer.HbarTransfers),
	}
}

// Receipt is the outcome of transaction processing.
type Receipt struct {
	ID     TxnID       `json:"id"`
	Status status.Code `json:"status"`
	// Fees are the fees due, Charged are the ones actually charged to the
	// payer.
	Fees         fee.Object              `json:"fees"`
	Charged      fee.Object              `json:"charged"`
	AssessedFees []customfee.AssessedFee `json:"assessedCustomFees,omitempty"`
}
