package cm256

import (
	"bytes"
	"crypto/md5"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	assert.NoError(t, Init())
}

// checkedRandBytes fills p with random bytes followed by an md5 checksum
// of those bytes, so later corruption/mismatch can be detected without
// keeping a second copy of the original data around.
func checkedRandBytes(p []byte) {
	if len(p) <= md5.Size {
		panic("provided slice is too small")
	}
	raw := make([]byte, len(p)-md5.Size)
	rand.Read(raw)
	chksm := md5.Sum(raw)
	copy(p, raw)
	copy(p[len(p)-md5.Size:], chksm[:])
}

func checkBytes(p []byte) bool {
	if len(p) <= md5.Size {
		panic("provided slice is too small")
	}
	data := p[:len(p)-md5.Size]
	readChksm := p[len(p)-md5.Size:]
	chksm := md5.Sum(data)
	return bytes.Equal(readChksm, chksm[:])
}

func TestEncodeShardsDecodeRoundtrip(t *testing.T) {
	const originalCount = 64
	const bufferBytes = 640

	original := make([][]byte, originalCount)
	for i := range original {
		original[i] = make([]byte, bufferBytes)
		checkedRandBytes(original[i])
	}

	recovery, err := EncodeShards(original)
	require.NoError(t, err)
	require.Equal(t, originalCount, len(recovery))

	shards := make([][]byte, originalCount+len(recovery))
	copy(shards, original)
	copy(shards[originalCount:], recovery)

	// Erase every original block; keep every recovery block.
	for i := 0; i < originalCount; i++ {
		shards[i] = nil
	}

	require.NoError(t, ReconstructShards(shards, originalCount))
	for i := 0; i < originalCount; i++ {
		assert.True(t, checkBytes(shards[i]))
	}
}

func TestEncodeShardsMixedLoss(t *testing.T) {
	const originalCount = 32
	const bufferBytes = 256

	original := make([][]byte, originalCount)
	for i := range original {
		original[i] = make([]byte, bufferBytes)
		checkedRandBytes(original[i])
	}
	recovery, err := EncodeShards(original)
	require.NoError(t, err)

	shards := make([][]byte, originalCount+len(recovery))
	copy(shards, original)
	copy(shards[originalCount:], recovery)

	lost := map[int]struct{}{}
	r := rand.New(rand.NewSource(1))
	for len(lost) < originalCount {
		idx := r.Intn(len(shards))
		if _, ok := lost[idx]; ok {
			continue
		}
		lost[idx] = struct{}{}
		shards[idx] = nil
	}

	require.NoError(t, ReconstructShards(shards, originalCount))
	for i := 0; i < originalCount; i++ {
		assert.True(t, checkBytes(shards[i]), "original %d not recovered", i)
	}
}

func TestOriginalAndRecoveryBlockIndex(t *testing.T) {
	params := Params{BlockBytes: 16, OriginalCount: 5, RecoveryCount: 3}
	for i := 0; i < params.OriginalCount; i++ {
		assert.Equal(t, i, OriginalBlockIndex(params, i))
	}
	for j := 0; j < params.RecoveryCount; j++ {
		assert.Equal(t, params.OriginalCount+j, RecoveryBlockIndex(params, j))
	}
}
