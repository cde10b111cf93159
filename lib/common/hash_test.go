package common

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

type hashableInt uint64

type hashableStruct struct {
	I uint64
}

func TestUintHashableRLP(t *testing.T) {
	i := hashableInt(10)
	_, err := rlp.EncodeToBytes(i)
	require.NoError(t, err)
}

func TestStructHashableRLP(t *testing.T) {
	CheckRoundTripRLP(t, hashableStruct{I: 64})
}

// the object hash must be stable for the same input and change with it
func TestMakeObjectHash(t *testing.T) {
	a := MustMakeObjectHash(hashableStruct{I: 1})
	b := MustMakeObjectHash(hashableStruct{I: 1})
	require.Equal(t, a, b)

	c := MustMakeObjectHash(hashableStruct{I: 2})
	require.NotEqual(t, a, c)
}
