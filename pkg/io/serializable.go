package io

import (
	"errors"
	"io"
)

// ErrTrailingData is returned by FromBytes when the data is not entirely
// consumed.
var ErrTrailingData = errors.New("trailing data")

// Serializable defines the binary encoding/decoding interface. Errors are
// returned via BinReader/BinWriter Err field.
type Serializable interface {
	DecodeBinary(*BinReader)
	EncodeBinary(*BinWriter)
}

// ToBytes serializes s into a new byte slice.
func ToBytes(s Serializable) ([]byte, error) {
	w := NewBufBinWriter()
	s.EncodeBinary(w.BinWriter)
	if w.Err != nil {
		return nil, w.Err
	}
	return w.Bytes(), nil
}

// FromBytes deserializes s from data, all of data must be consumed.
func FromBytes(data []byte, s Serializable) error {
	r := NewBinReaderFromBuf(data)
	s.DecodeBinary(r)
	if r.Err != nil {
		return r.Err
	}
	var b [1]byte
	if _, err := r.r.Read(b[:]); err != io.EOF {
		return ErrTrailingData
	}
	return nil
}
