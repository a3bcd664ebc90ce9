package cm256

import (
	"fmt"
	"sync"
)

const version = 1

var featuresInit sync.Once

// Params describes one encode/decode call. It is immutable for the
// duration of that call.
type Params struct {
	// BlockBytes is the size in bytes of every block, original or
	// recovery.
	BlockBytes int
	// OriginalCount (k) is the number of original data blocks, 1..255.
	OriginalCount int
	// RecoveryCount (m) is the number of recovery blocks, 1..255.
	RecoveryCount int
}

// Validate checks the parameter triple per the rules of section 4.4:
// non-positive fields are rejected and OriginalCount+RecoveryCount must
// not exceed 256.
func (p Params) Validate() error {
	if p.OriginalCount <= 0 || p.RecoveryCount <= 0 || p.BlockBytes <= 0 {
		return statusToErr(StatusInvalidParameter)
	}
	if p.OriginalCount+p.RecoveryCount > 256 {
		return statusToErr(StatusSizeExceeded)
	}
	return nil
}

// Block is a descriptor pairing a buffer with a canonical block index.
// Index < OriginalCount identifies an original block at that logical
// position; Index >= OriginalCount identifies recovery block
// Index-OriginalCount. The buffer is owned by the caller; this package
// only reads and writes through it for the duration of one call.
type Block struct {
	Data  []byte
	Index int
}

func init() {
	MustInit()
}

// Init builds the GF(256) tables and detects CPU features used to select
// the bulk-op stride. It is idempotent after the first successful call and
// safe to call from multiple goroutines; the table build and the feature
// probe each use sync.Once so concurrent callers block on the first caller
// rather than racing.
func Init() error {
	if version != 1 {
		return statusToErr(StatusVersionMismatch)
	}
	if err := initTables(); err != nil {
		return err
	}
	featuresInit.Do(func() {
		features = detectFeatures()
	})
	return nil
}

// MustInit calls Init and panics on failure, for callers that want
// fail-fast-at-import-time behavior.
func MustInit() {
	if err := Init(); err != nil {
		panic(fmt.Sprintf("cm256: initialization failed: %v", err))
	}
}

// OriginalBlockIndex returns the canonical index of original block i,
// i in [0, k). Provided for symmetry with RecoveryBlockIndex.
func OriginalBlockIndex(params Params, i int) int {
	return i
}

// RecoveryBlockIndex returns the canonical index of recovery block j,
// j in [0, m).
func RecoveryBlockIndex(params Params, j int) int {
	return params.OriginalCount + j
}

// EncodeShards is a convenience wrapper over Encode: it infers m =
// len(original) and allocates and returns the recovery blocks rather than
// requiring the caller to pre-size an output region.
func EncodeShards(original [][]byte) (recovery [][]byte, err error) {
	if len(original) == 0 {
		return nil, statusToErr(StatusNullInput)
	}
	blockBytes := len(original[0])
	blocks := make([]Block, len(original))
	for i, d := range original {
		if len(d) != blockBytes {
			return nil, statusToErr(StatusInvalidParameter)
		}
		blocks[i] = Block{Data: d, Index: i}
	}

	params := Params{
		BlockBytes:    blockBytes,
		OriginalCount: len(original),
		RecoveryCount: len(original),
	}
	out := make([]byte, params.RecoveryCount*blockBytes)
	if err := Encode(params, blocks, out); err != nil {
		return nil, err
	}

	recovery = make([][]byte, params.RecoveryCount)
	for j := range recovery {
		recovery[j] = out[j*blockBytes : (j+1)*blockBytes]
	}
	return recovery, nil
}

// ReconstructShards reconstructs missing entries of shards in place.
// shards has length originalCount+recoveryCount and is indexed by
// canonical block index; a nil entry means that block is missing. Every
// present entry must be exactly blockBytes long, inferred from the first
// non-nil entry. On success every original-block slot (index <
// originalCount) holds the reconstructed data.
func ReconstructShards(shards [][]byte, originalCount int) error {
	recoveryCount := len(shards) - originalCount
	if recoveryCount <= 0 {
		return statusToErr(StatusInvalidParameter)
	}

	blockBytes := 0
	for _, s := range shards {
		if s != nil {
			blockBytes = len(s)
			break
		}
	}
	if blockBytes == 0 {
		return statusToErr(StatusNullInput)
	}

	params := Params{
		BlockBytes:    blockBytes,
		OriginalCount: originalCount,
		RecoveryCount: recoveryCount,
	}

	blocks := make([]Block, 0, originalCount)
	for i, s := range shards {
		if s == nil {
			continue
		}
		blocks = append(blocks, Block{Data: s, Index: i})
	}
	if len(blocks) < originalCount {
		return statusToErr(StatusInvalidParameter)
	}
	// Decode consumes exactly originalCount descriptors; if more than
	// originalCount are present (extra recovery blocks beyond what is
	// needed), only keep the first originalCount so the fast paths and
	// erasure accounting in decoder.go match section 4.5.1 exactly.
	blocks = blocks[:originalCount]

	if err := Decode(params, blocks); err != nil {
		return err
	}
	for _, b := range blocks {
		shards[b.Index] = b.Data
	}
	return nil
}
