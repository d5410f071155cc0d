package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-ledger/codec"
	"github.com/spacemeshos/go-ledger/common/types"
)

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	to := types.Address{2}
	contents := types.TxContents{Type: types.TxSend, From: types.Address{1}, To: &to, Amount: 10}
	buf := codec.MustEncode(&contents)

	var decoded types.TxContents
	require.NoError(t, codec.Decode(buf, &decoded))
	require.Equal(t, contents, decoded)

	require.ErrorContains(t, codec.Decode(append(buf, 0), &decoded), "trailing bytes")
}

func TestDecodeTruncated(t *testing.T) {
	contents := types.TxContents{Type: types.TxMint, From: types.Address{1}, Amount: 1 << 40}
	buf := codec.MustEncode(&contents)

	var decoded types.TxContents
	require.Error(t, codec.Decode(buf[:len(buf)-1], &decoded))
}

func TestEncodeReturnsIndependentBuffers(t *testing.T) {
	first := codec.MustEncode(&types.TxContents{Type: types.TxCheck, From: types.Address{1}})
	second := codec.MustEncode(&types.TxContents{Type: types.TxCheck, From: types.Address{2}})
	require.NotEqual(t, first, second)
	require.Equal(t, byte(1), first[1])
}
