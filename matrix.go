package cm256

// matrixElement returns a_ij of the normalized Cauchy matrix:
//
//	a_ij = (y_j + x_0) / (x_i + y_j)
//
// Row 0 (x_i == x_0) is all-ones by construction; callers that special
// case row 0 should skip this function and use plain XOR directly rather
// than pay for the (correct, but wasteful) division by one.
func matrixElement(xi, x0, yj byte) byte {
	return gfDiv(gfAdd(yj, x0), gfAdd(xi, yj))
}
