package state

import (
	"github.com/jankotek/hedera-services-sub001/pkg/io"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
)

// EntitySize is the size of an encoded AccountID or TokenID.
const EntitySize = 24

// WriteAccountID writes id to w.
func WriteAccountID(w *io.BinWriter, id ledger.AccountID) {
	w.WriteI64LE(id.Shard)
	w.WriteI64LE(id.Realm)
	w.WriteI64LE(id.Num)
}

// ReadAccountID reads AccountID from r.
func ReadAccountID(r *io.BinReader) ledger.AccountID {
	return ledger.AccountID{Shard: r.ReadI64LE(), Realm: r.ReadI64LE(), Num: r.ReadI64LE()}
}

// WriteTokenID writes id to w.
func WriteTokenID(w *io.BinWriter, id ledger.TokenID) {
	w.WriteI64LE(id.Shard)
	w.WriteI64LE(id.Realm)
	w.WriteI64LE(id.Num)
}

// ReadTokenID reads TokenID from r.
func ReadTokenID(r *io.BinReader) ledger.TokenID {
	return ledger.TokenID{Shard: r.ReadI64LE(), Realm: r.ReadI64LE(), Num: r.ReadI64LE()}
}
