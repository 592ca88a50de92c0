package state

import (
	"errors"
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/io"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	json "github.com/nspcc-dev/go-ordered-json"
)

// Token kinds.
const (
	FungibleCommon    TokenType = 0
	NonFungibleUnique TokenType = 1
)

// MaxSymbolLen is the maximum length of the token symbol.
const MaxSymbolLen = 100

// MaxFeeScheduleSize is the maximum size of the encoded custom fee schedule.
const MaxFeeScheduleSize = 0x10000

// TokenType distinguishes fungible tokens from unique ones.
type TokenType byte

// Token is the state of a token entity.
type Token struct {
	Type       TokenType
	Symbol     string
	Treasury   ledger.AccountID
	CustomFees []customfee.Fee
}

// EncodeBinary implements io.Serializable interface. The fee schedule is
// stored as JSON.
func (t *Token) EncodeBinary(w *io.BinWriter) {
	w.WriteB(byte(t.Type))
	w.WriteString(t.Symbol)
	WriteAccountID(w, t.Treasury)
	if w.Err != nil {
		return
	}
	if len(t.CustomFees) == 0 {
		w.WriteVarBytes(nil)
		return
	}
	fees, err := json.Marshal(t.CustomFees)
	if err != nil {
		w.Err = fmt.Errorf("custom fees: %w", err)
		return
	}
	w.WriteVarBytes(fees)
}

// DecodeBinary implements io.Serializable interface.
func (t *Token) DecodeBinary(r *io.BinReader) {
	t.Type = TokenType(r.ReadB())
	if t.Type != FungibleCommon && t.Type != NonFungibleUnique {
		if r.Err == nil {
			r.Err = fmt.Errorf("unknown token type %d", t.Type)
		}
		return
	}
	t.Symbol = r.ReadString(MaxSymbolLen)
	t.Treasury = ReadAccountID(r)
	fees := r.ReadVarBytes(MaxFeeScheduleSize)
	if r.Err != nil {
		return
	}
	t.CustomFees = nil
	if len(fees) == 0 {
		return
	}
	if err := json.Unmarshal(fees, &t.CustomFees); err != nil {
		r.Err = fmt.Errorf("custom fees: %w", err)
	}
}

// Validate checks token invariants.
func (t *Token) Validate() error {
	if t.Symbol == "" {
		return errors.New("empty symbol")
	}
	if len(t.Symbol) > MaxSymbolLen {
		return fmt.Errorf("symbol is too long: %d", len(t.Symbol))
	}
	if !t.Treasury.IsSet() {
		return errors.New("no treasury")
	}
	for i, f := range t.CustomFees {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("custom fee #%d: %w", i, err)
		}
		if t.Type == NonFungibleUnique && f.Fractional != nil {
			return fmt.Errorf("custom fee #%d: fractional fee for a unique token", i)
		}
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (t TokenType) String() string {
	switch t {
	case FungibleCommon:
		return "fungible"
	case NonFungibleUnique:
		return "unique"
	default:
		return fmt.Sprintf("TokenType(%d)", byte(t))
	}
}
