package cm256

// Decode reconstructs original block data in place from an array of
// exactly params.OriginalCount block descriptors, each pointing at either
// a surviving original or a recovery block. On success every descriptor's
// Index is rewritten to its logical original position in [0, k).
func Decode(params Params, blocks []Block) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if blocks == nil {
		return statusToErr(StatusNullInput)
	}
	if len(blocks) != params.OriginalCount {
		return statusToErr(StatusInvalidParameter)
	}

	k := params.OriginalCount

	if k == 1 {
		blocks[0].Index = 0
		return nil
	}

	originals, recovery, erasures, err := classify(params, blocks)
	if err != nil {
		return err
	}

	r := len(recovery)
	if r == 0 {
		return nil
	}

	if r == 1 && params.RecoveryCount == 1 {
		decodeM1(params, originals, recovery[0], erasures[0])
		return nil
	}

	decodeGeneral(params, originals, recovery, erasures)
	return nil
}

// classify walks the k input descriptors, splitting them into originals
// and recoveries present, and computes the parallel list of erasure
// positions: the first r original positions not covered by a surviving
// original, in ascending order, where r = len(recovery). Section 4.5.1.
func classify(params Params, blocks []Block) (originals, recovery []*Block, erasures []byte, err error) {
	k := params.OriginalCount
	m := params.RecoveryCount

	erased := make([]bool, k)
	for i := range erased {
		erased[i] = true
	}

	originals = make([]*Block, 0, k)
	recovery = make([]*Block, 0, m)

	for i := range blocks {
		b := &blocks[i]
		row := b.Index
		if row < 0 || row >= k+m {
			return nil, nil, nil, statusToErr(StatusMalformedInput)
		}
		if row < k {
			if !erased[row] {
				return nil, nil, nil, statusToErr(StatusMalformedInput)
			}
			erased[row] = false
			originals = append(originals, b)
		} else {
			recovery = append(recovery, b)
		}
	}

	r := len(recovery)
	erasures = make([]byte, 0, r)
	for i := 0; i < k && len(erasures) < r; i++ {
		if erased[i] {
			erasures = append(erasures, byte(i))
		}
	}

	return originals, recovery, erasures, nil
}

// decodeM1 handles the single-erasure, single-recovery-defined case
// (section 4.5.2): the lone recovery block is the all-ones parity row, so
// the missing original is simply the recovery XORed with every surviving
// original. The result is written back into the recovery descriptor's own
// buffer, which becomes the output for the recovered position.
func decodeM1(params Params, originals []*Block, recovery *Block, erasedIndex byte) {
	out := recovery.Data
	for _, orig := range originals {
		xorInto(out, orig.Data)
	}
	recovery.Index = int(erasedIndex)
}

// decodeGeneral implements the general LDU-based solver of section 4.5.3
// for r >= 1 erasures (used whenever the m=1 fast path does not apply,
// including r=1 with m>1).
func decodeGeneral(params Params, originals, recovery []*Block, erasures []byte) {
	x0 := byte(params.OriginalCount)
	r := len(recovery)

	// Step 1: eliminate the contribution of every known original from
	// every recovery row.
	for _, orig := range originals {
		row := byte(orig.Index)
		for _, rec := range recovery {
			xi := byte(rec.Index)
			elem := matrixElement(xi, x0, row)
			muladdInto(rec.Data, elem, orig.Data)
		}
	}

	// Step 2: LDU-decompose the r x r submatrix selecting the erased
	// columns and the provided recovery rows. Total scratch is r*r bytes,
	// laid out as [U (r(r-1)/2)] [diag (r)] [L (r(r-1)/2)] per section
	// 4.5.4; small systems use an inline array, larger ones the heap.
	uSize := r * (r - 1) / 2
	required := r * r
	var matrix []byte
	const stackAllocSize = 2048
	if required <= stackAllocSize {
		var inline [stackAllocSize]byte
		matrix = inline[:required]
	} else {
		matrix = make([]byte, required)
	}
	matrixU := matrix[:uSize]
	diagD := matrix[uSize : uSize+r]
	matrixL := matrix[uSize+r:]

	generateLDU(recovery, erasures, x0, matrixU, diagD, matrixL)

	// Step 3: solve. Forward substitution applies L.
	for t := 0; t < r-1; t++ {
		for s := t + 1; s < r; s++ {
			c := matrixL[lpos(s, t, r)]
			muladdInto(recovery[s].Data, c, recovery[t].Data)
		}
	}

	// Diagonal.
	for t := 0; t < r; t++ {
		divInto(recovery[t].Data, recovery[t].Data, diagD[t])
		recovery[t].Index = int(erasures[t])
	}

	// Back substitution applies U.
	for t := r - 1; t >= 1; t-- {
		for s := 0; s < t; s++ {
			c := matrixU[upos(s, t)]
			muladdInto(recovery[s].Data, c, recovery[t].Data)
		}
	}
}

// upos returns the packed offset of upper-triangular element (s, t) with
// s < t, in a buffer where column t's entries (rows 0..t-1) are stored
// contiguously in ascending column order.
func upos(s, t int) int {
	return t*(t-1)/2 + s
}

// lposPrefix returns the offset of pivot row k's first entry in the
// packed strictly-lower-triangular buffer for an r x r matrix.
func lposPrefix(k, r int) int {
	return k*(r-1) - k*(k-1)/2
}

// lpos returns the packed offset of lower-triangular element (s, t) with
// t < s, generated at pivot t.
func lpos(s, t, r int) int {
	return lposPrefix(t, r) + (s - t - 1)
}

// generateLDU computes the Schur-complement Cauchy LDU decomposition of
// the r x r matrix M[t][s] = matrixElement(recovery[t].Index, x0,
// erasures[s]), per section 4.5.3's "Algorithm 2.5" (Boros, Kailath,
// Olshevsky) with the diagonal folded into L and U so their diagonals
// never need to be materialized.
func generateLDU(recovery []*Block, erasures []byte, x0 byte, matrixU, diagD, matrixL []byte) {
	r := len(recovery)

	g := make([]byte, r)
	b := make([]byte, r)
	for i := range g {
		g[i] = 1
		b[i] = 1
	}

	urow := make([]byte, r)

	for k := 0; k < r-1; k++ {
		xk := byte(recovery[k].Index)
		yk := erasures[k]

		dkk := gfAdd(xk, yk)
		lkk := gfDiv(g[k], dkk)
		ukk := gfMul(gfDiv(b[k], dkk), gfAdd(x0, yk))
		diagD[k] = gfMul(dkk, gfMul(lkk, ukk))

		count := r - k - 1
		lrow := matrixL[lposPrefix(k, r) : lposPrefix(k, r)+count]
		row := urow[:count]

		for idx, j := 0, k+1; j < r; idx, j = idx+1, j+1 {
			xj := byte(recovery[j].Index)
			yj := erasures[j]

			lrow[idx] = gfDiv(g[j], gfAdd(xj, yk))
			row[idx] = gfDiv(b[j], gfAdd(xk, yj))

			g[j] = gfMul(g[j], gfDiv(gfAdd(xj, xk), gfAdd(xj, yk)))
			b[j] = gfMul(b[j], gfDiv(gfAdd(yj, yk), gfAdd(yj, xk)))
		}

		divInto(lrow, lrow, lkk)
		divInto(row, row, ukk)

		for idx, j := 0, k+1; j < r; idx, j = idx+1, j+1 {
			matrixU[upos(k, j)] = row[idx]
		}
	}

	// Fold the (x0 + y_j) factor into U so its diagonal is implicitly 1.
	for j := 1; j < r; j++ {
		col := matrixU[upos(0, j):upos(0, j)+j]
		factor := gfAdd(x0, erasures[j])
		mulInto(col, col, factor)
	}

	// Final pivot, closed form (section 4.5.3).
	xn := byte(recovery[r-1].Index)
	yn := erasures[r-1]
	lnn := g[r-1]
	unn := gfMul(b[r-1], gfAdd(x0, yn))
	diagD[r-1] = gfDiv(gfMul(lnn, unn), gfAdd(xn, yn))
}
