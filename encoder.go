package cm256

// Encode produces params.RecoveryCount recovery blocks from
// params.OriginalCount original blocks into recovery, a flat byte region
// of length RecoveryCount*BlockBytes holding the recovery blocks
// concatenated in ordinal order. originals must be OriginalCount long,
// ordered 0..k-1, with Index matching position (this package does not
// re-sort them).
func Encode(params Params, originals []Block, recovery []byte) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if originals == nil || recovery == nil {
		return statusToErr(StatusNullInput)
	}
	if len(originals) != params.OriginalCount {
		return statusToErr(StatusInvalidParameter)
	}
	if len(recovery) != params.RecoveryCount*params.BlockBytes {
		return statusToErr(StatusInvalidParameter)
	}

	n := params.BlockBytes

	// Degenerate case: a single original block. Every Cauchy row
	// collapses to 1, so every recovery block is a byte-for-byte copy.
	if params.OriginalCount == 1 {
		for b := 0; b < params.RecoveryCount; b++ {
			copy(recovery[b*n:(b+1)*n], originals[0].Data)
		}
		return nil
	}

	x0 := byte(params.OriginalCount)

	for b := 0; b < params.RecoveryCount; b++ {
		rec := recovery[b*n : (b+1)*n]
		xi := byte(params.OriginalCount + b)

		if xi == x0 {
			// Row 0: the all-ones parity row, pure XOR of all originals.
			xorXorInto(rec, originals[0].Data, originals[1].Data)
			for j := 2; j < params.OriginalCount; j++ {
				xorInto(rec, originals[j].Data)
			}
			continue
		}

		elem0 := matrixElement(xi, x0, 0)
		mulInto(rec, originals[0].Data, elem0)
		for j := 1; j < params.OriginalCount; j++ {
			elem := matrixElement(xi, x0, byte(j))
			muladdInto(rec, elem, originals[j].Data)
		}
	}

	return nil
}
