package io

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	a int64
	b string
}

func (p *pair) EncodeBinary(w *BinWriter) {
	w.WriteI64LE(p.a)
	w.WriteString(p.b)
}

func (p *pair) DecodeBinary(r *BinReader) {
	p.a = r.ReadI64LE()
	p.b = r.ReadString()
}

type badEncodable struct{}

func (*badEncodable) EncodeBinary(w *BinWriter) { w.Err = errors.New("bad") }
func (*badEncodable) DecodeBinary(r *BinReader) { r.Err = errors.New("bad") }

func TestWriteReadPrimitives(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteU64LE(math.MaxUint64)
	w.WriteU32LE(0xdeadbeef)
	w.WriteU16LE(0xbeef)
	w.WriteI64LE(math.MinInt64)
	w.WriteB(7)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteVarBytes([]byte{1, 2, 3})
	w.WriteString("settle")
	require.NoError(t, w.Err)

	data := w.Bytes()
	require.Nil(t, w.Bytes())

	r := NewBinReaderFromBuf(data)
	require.EqualValues(t, uint64(math.MaxUint64), r.ReadU64LE())
	require.EqualValues(t, 0xdeadbeef, r.ReadU32LE())
	require.EqualValues(t, 0xbeef, r.ReadU16LE())
	require.EqualValues(t, int64(math.MinInt64), r.ReadI64LE())
	require.EqualValues(t, 7, r.ReadB())
	require.True(t, r.ReadBool())
	require.False(t, r.ReadBool())
	require.Equal(t, []byte{1, 2, 3}, r.ReadVarBytes())
	require.Equal(t, "settle", r.ReadString())
	require.NoError(t, r.Err)

	r.ReadB()
	require.Error(t, r.Err)
}

func TestVarUint(t *testing.T) {
	for _, v := range []uint64{0, 0xfc, 0xfd, 0xfffe, 0xffff, 0xfffffffe, 0xffffffff, math.MaxUint64} {
		w := NewBufBinWriter()
		w.WriteVarUint(v)
		require.NoError(t, w.Err)

		r := NewBinReaderFromBuf(w.Bytes())
		require.Equal(t, v, r.ReadVarUint())
		require.NoError(t, r.Err)
	}
}

func TestReadVarBytesTooBig(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteVarBytes(make([]byte, 10))
	r := NewBinReaderFromBuf(w.Bytes())
	r.ReadVarBytes(5)
	require.Error(t, r.Err)
}

func TestArray(t *testing.T) {
	arr := []*pair{{1, "a"}, {-2, "bb"}}
	w := NewBufBinWriter()
	WriteArray(w.BinWriter, arr)
	require.NoError(t, w.Err)
	data := w.Bytes()

	r := NewBinReaderFromBuf(data)
	actual := ReadArray[pair](r)
	require.NoError(t, r.Err)
	require.Equal(t, []pair{{1, "a"}, {-2, "bb"}}, actual)

	r = NewBinReaderFromBuf(data)
	require.Nil(t, ReadArray[pair](r, 1))
	require.Error(t, r.Err)
}

func TestToFromBytes(t *testing.T) {
	p := &pair{a: 42, b: "x"}
	data, err := ToBytes(p)
	require.NoError(t, err)

	var actual pair
	require.NoError(t, FromBytes(data, &actual))
	require.Equal(t, *p, actual)

	require.ErrorIs(t, FromBytes(append(data, 0), &actual), ErrTrailingData)
	require.Error(t, FromBytes(data[:3], &actual))

	_, err = ToBytes(&badEncodable{})
	require.Error(t, err)
	require.Error(t, FromBytes(data, &badEncodable{}))
}

func TestBufBinWriterReset(t *testing.T) {
	w := NewBufBinWriter()
	w.WriteB(1)
	require.Equal(t, 1, w.Len())
	_ = w.Bytes()
	w.WriteB(2)
	require.Error(t, w.Err)

	w.Reset()
	require.NoError(t, w.Err)
	require.Equal(t, 0, w.Len())
}
