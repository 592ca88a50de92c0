package state

import (
	"github.com/jankotek/hedera-services-sub001/pkg/io"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
)

// Account is the native coin state of an account.
type Account struct {
	Balance int64
}

// EncodeBinary implements io.Serializable interface.
func (a *Account) EncodeBinary(w *io.BinWriter) {
	w.WriteI64LE(a.Balance)
}

// DecodeBinary implements io.Serializable interface.
func (a *Account) DecodeBinary(r *io.BinReader) {
	a.Balance = r.ReadI64LE()
}

// TokenBalance is the balance an account holds of some fungible token.
type TokenBalance struct {
	Balance int64
}

// EncodeBinary implements io.Serializable interface.
func (b *TokenBalance) EncodeBinary(w *io.BinWriter) {
	w.WriteI64LE(b.Balance)
}

// DecodeBinary implements io.Serializable interface.
func (b *TokenBalance) DecodeBinary(r *io.BinReader) {
	b.Balance = r.ReadI64LE()
}

// NFT is the state of a single unique token.
type NFT struct {
	Owner ledger.AccountID
}

// EncodeBinary implements io.Serializable interface.
func (n *NFT) EncodeBinary(w *io.BinWriter) {
	WriteAccountID(w, n.Owner)
}

// DecodeBinary implements io.Serializable interface.
func (n *NFT) DecodeBinary(r *io.BinReader) {
	n.Owner = ReadAccountID(r)
}
