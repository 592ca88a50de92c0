/*
Package dao provides typed access to the ledger state kept in a storage.Store.
*/
package dao

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jankotek/hedera-services-sub001/pkg/core/state"
	"github.com/jankotek/hedera-services-sub001/pkg/core/storage"
	"github.com/jankotek/hedera-services-sub001/pkg/io"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger"
	"github.com/jankotek/hedera-services-sub001/pkg/ledger/customfee"
	"github.com/jankotek/hedera-services-sub001/pkg/util/bigmath"
)

// ErrBalanceOverflow is returned when a balance adjustment would overflow.
var ErrBalanceOverflow = errors.New("balance overflow")

// Simple is memCached wrapper around DB, simple DAO implementation.
type Simple struct {
	Store *storage.MemCachedStore
}

// NewSimple creates new simple dao using provided backend store.
func NewSimple(backend storage.Store) *Simple {
	return &Simple{Store: storage.NewMemCachedStore(backend)}
}

// GetBatch returns currently accumulated DB changeset.
func (dao *Simple) GetBatch() *storage.MemBatch {
	return dao.Store.GetBatch()
}

// GetWrapped returns new DAO instance with another layer of wrapped
// MemCachedStore around the current DAO Store.
func (dao *Simple) GetWrapped() *Simple {
	return NewSimple(dao.Store)
}

// Persist flushes all the changes made into the underlying Store.
func (dao *Simple) Persist() (int, error) {
	return dao.Store.Persist()
}

// GetAndDecode performs get operation and decoding with serializable structures.
func (dao *Simple) GetAndDecode(entity io.Serializable, key []byte) error {
	entityBytes, err := dao.Store.Get(key)
	if err != nil {
		return err
	}
	reader := io.NewBinReaderFromBuf(entityBytes)
	entity.DecodeBinary(reader)
	return reader.Err
}

// Put performs put operation with serializable structures.
func (dao *Simple) Put(entity io.Serializable, key []byte) error {
	return dao.putWithBuffer(entity, key, io.NewBufBinWriter())
}

// putWithBuffer performs put operation using buf as a pre-allocated buffer for serialization.
func (dao *Simple) putWithBuffer(entity io.Serializable, key []byte, buf *io.BufBinWriter) error {
	entity.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return buf.Err
	}
	dao.Store.Put(key, buf.Bytes())
	return nil
}

// -- start version.

// GetVersion attempts to get the current version stored in the
// underlying store.
func (dao *Simple) GetVersion() (string, error) {
	version, err := dao.Store.Get(storage.SYSVersion.Bytes())
	return string(version), err
}

// PutVersion stores the given version in the underlying store.
func (dao *Simple) PutVersion(v string) {
	dao.Store.Put(storage.SYSVersion.Bytes(), []byte(v))
}

// -- end version.

// -- start accounts.

// GetAccount returns Account from the given Store if it's present there,
// storage.ErrKeyNotFound is returned otherwise.
func (dao *Simple) GetAccount(id ledger.AccountID) (*state.Account, error) {
	account := &state.Account{}
	err := dao.GetAndDecode(account, makeAccountKey(id))
	if err != nil {
		return nil, err
	}
	return account, nil
}

// PutAccount saves the given Account in the given Store.
func (dao *Simple) PutAccount(id ledger.AccountID, acc *state.Account) error {
	return dao.Put(acc, makeAccountKey(id))
}

// HasAccount checks whether the account exists.
func (dao *Simple) HasAccount(id ledger.AccountID) (bool, error) {
	_, err := dao.Store.Get(makeAccountKey(id))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Balance returns the native coin balance of an existing account.
func (dao *Simple) Balance(id ledger.AccountID) (int64, error) {
	acc, err := dao.GetAccount(id)
	if err != nil {
		return 0, fmt.Errorf("account %s: %w", id, err)
	}
	return acc.Balance, nil
}

// AdjustBalance adds delta to the native coin balance of an existing account.
// The resulting balance is not checked for being non-negative.
func (dao *Simple) AdjustBalance(id ledger.AccountID, delta int64) error {
	acc, err := dao.GetAccount(id)
	if err != nil {
		return fmt.Errorf("account %s: %w", id, err)
	}
	if bigmath.AddOverflows(acc.Balance, delta) {
		return fmt.Errorf("account %s: %w", id, ErrBalanceOverflow)
	}
	acc.Balance += delta
	return dao.PutAccount(id, acc)
}

// ForEachAccount iterates over all accounts in ascending order until f
// returns false.
func (dao *Simple) ForEachAccount(f func(ledger.AccountID, *state.Account) bool) error {
	var err error
	dao.Store.Seek(storage.SeekRange{Prefix: storage.STAccount.Bytes()}, func(k, v []byte) bool {
		acc := new(state.Account)
		if err = io.FromBytes(v, acc); err != nil {
			return false
		}
		return f(decodeAccountKey(k[1:]), acc)
	})
	return err
}

// -- end accounts.

// -- start tokens.

// GetToken returns Token from the given Store if it's present there,
// storage.ErrKeyNotFound is returned otherwise.
func (dao *Simple) GetToken(id ledger.TokenID) (*state.Token, error) {
	tok := &state.Token{}
	err := dao.GetAndDecode(tok, makeTokenKey(storage.STToken, id))
	if err != nil {
		return nil, err
	}
	return tok, nil
}

// PutToken saves the given Token in the given Store.
func (dao *Simple) PutToken(id ledger.TokenID, tok *state.Token) error {
	return dao.Put(tok, makeTokenKey(storage.STToken, id))
}

// Lookup implements customfee.Schedules interface. Unknown tokens have no
// custom fees.
func (dao *Simple) Lookup(id ledger.TokenID) ([]customfee.Fee, error) {
	tok, err := dao.GetToken(id)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tok.CustomFees, nil
}

// GetTokenBalance returns the balance of the token held by the account. The
// second result is false if the account has no relationship with the token.
func (dao *Simple) GetTokenBalance(acc ledger.AccountID, tok ledger.TokenID) (int64, bool, error) {
	b := &state.TokenBalance{}
	err := dao.GetAndDecode(b, makeTokenRelKey(acc, tok))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return b.Balance, true, nil
}

// PutTokenBalance saves the balance of the token held by the account.
func (dao *Simple) PutTokenBalance(acc ledger.AccountID, tok ledger.TokenID, balance int64) error {
	return dao.Put(&state.TokenBalance{Balance: balance}, makeTokenRelKey(acc, tok))
}

// ForEachTokenBalance iterates over all token balances of the account in
// ascending token order until f returns false.
func (dao *Simple) ForEachTokenBalance(acc ledger.AccountID, f func(ledger.TokenID, int64) bool) error {
	var (
		err    error
		prefix = makeAccountKeyWithPrefix(storage.STTokenRel, acc)
	)
	dao.Store.Seek(storage.SeekRange{Prefix: prefix}, func(k, v []byte) bool {
		b := new(state.TokenBalance)
		if err = io.FromBytes(v, b); err != nil {
			return false
		}
		return f(decodeTokenKey(k[len(prefix):]), b.Balance)
	})
	return err
}

// GetNFT returns the unique token with the given serial number.
func (dao *Simple) GetNFT(tok ledger.TokenID, serial int64) (*state.NFT, error) {
	nft := &state.NFT{}
	err := dao.GetAndDecode(nft, makeNFTKey(tok, serial))
	if err != nil {
		return nil, err
	}
	return nft, nil
}

// PutNFT saves the unique token with the given serial number.
func (dao *Simple) PutNFT(tok ledger.TokenID, serial int64, nft *state.NFT) error {
	return dao.Put(nft, makeNFTKey(tok, serial))
}

// -- end tokens.

// IsEmpty reports whether there are no accounts in the store.
func (dao *Simple) IsEmpty() bool {
	empty := true
	dao.Store.Seek(storage.SeekRange{Prefix: storage.STAccount.Bytes()}, func(k, v []byte) bool {
		empty = false
		return false
	})
	return empty
}

// Entity numbers are stored big-endian with the sign bit flipped for keys
// to follow the numeric order.
func putEntityNum(b []byte, n int64) {
	binary.BigEndian.PutUint64(b, uint64(n)^(1<<63))
}

func getEntityNum(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63))
}

func putEntity(b []byte, shard, realm, num int64) {
	putEntityNum(b, shard)
	putEntityNum(b[8:], realm)
	putEntityNum(b[16:], num)
}

func makeAccountKey(id ledger.AccountID) []byte {
	return makeAccountKeyWithPrefix(storage.STAccount, id)
}

func makeAccountKeyWithPrefix(p storage.KeyPrefix, id ledger.AccountID) []byte {
	key := make([]byte, 1+state.EntitySize)
	key[0] = byte(p)
	putEntity(key[1:], id.Shard, id.Realm, id.Num)
	return key
}

func makeTokenKey(p storage.KeyPrefix, id ledger.TokenID) []byte {
	key := make([]byte, 1+state.EntitySize)
	key[0] = byte(p)
	putEntity(key[1:], id.Shard, id.Realm, id.Num)
	return key
}

func makeTokenRelKey(acc ledger.AccountID, tok ledger.TokenID) []byte {
	key := make([]byte, 1+2*state.EntitySize)
	key[0] = byte(storage.STTokenRel)
	putEntity(key[1:], acc.Shard, acc.Realm, acc.Num)
	putEntity(key[1+state.EntitySize:], tok.Shard, tok.Realm, tok.Num)
	return key
}

func makeNFTKey(tok ledger.TokenID, serial int64) []byte {
	key := make([]byte, 1+state.EntitySize+8)
	key[0] = byte(storage.STNft)
	putEntity(key[1:], tok.Shard, tok.Realm, tok.Num)
	putEntityNum(key[1+state.EntitySize:], serial)
	return key
}

func decodeAccountKey(b []byte) ledger.AccountID {
	return ledger.AccountID{Shard: getEntityNum(b), Realm: getEntityNum(b[8:]), Num: getEntityNum(b[16:])}
}

func decodeTokenKey(b []byte) ledger.TokenID {
	return ledger.TokenID{Shard: getEntityNum(b), Realm: getEntityNum(b[8:]), Num: getEntityNum(b[16:])}
}
