/*
Package testserdes contains round-trip helpers for serializable types.
*/
package testserdes

import (
	"testing"

	"github.com/jankotek/hedera-services-sub001/pkg/io"
	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/stretchr/testify/require"
)

// MarshalUnmarshalJSON checks if expected stays the same after
// marshal/unmarshal via JSON.
func MarshalUnmarshalJSON(t *testing.T, expected, actual any) {
	data, err := json.Marshal(expected)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, actual))
	require.Equal(t, expected, actual)
}

// EncodeDecodeBinary checks if expected stays the same after
// serializing/deserializing via io.Serializable methods.
func EncodeDecodeBinary(t *testing.T, expected, actual io.Serializable) {
	data, err := io.ToBytes(expected)
	require.NoError(t, err)
	require.NoError(t, io.FromBytes(data, actual))
	require.Equal(t, expected, actual)
}
