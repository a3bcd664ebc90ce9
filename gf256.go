package cm256

import "sync"

// GF(256) arithmetic using the standard 0x11D primitive polynomial
// (x^8 + x^4 + x^3 + x^2 + 1), the same convention used by CCITT/QR-code
// Reed-Solomon codes. All multiply/divide operations in this package route
// through the log/exp tables built here.

const (
	fieldSize            = 256
	fieldOrder           = fieldSize - 1
	primitivePolynomial  = 0x11D
	generatorRoot   byte = 2
)

var (
	expTable [fieldSize * 2]byte
	logTable [fieldSize]uint16

	// mulTable[a][b] = a*b in GF(256), fully materialized so the bulk ops
	// in gf256_bulk.go can do a single table lookup per byte instead of
	// two log lookups, an add mod 255, and an exp lookup.
	mulTable [fieldSize][fieldSize]byte

	tablesInit sync.Once
	initErr    error
)

// initTables builds the log/exp/mul tables. It is idempotent and safe to
// call from Init any number of times; only the first call does any work.
func initTables() error {
	tablesInit.Do(func() {
		x := 1
		for i := 0; i < fieldOrder; i++ {
			expTable[i] = byte(x)
			logTable[byte(x)] = uint16(i)

			x <<= 1
			if x >= fieldSize {
				x ^= primitivePolynomial
			}
		}
		// Mirror the table past 255 so mulTable construction below can add
		// two log values without a modulo on every lookup.
		for i := fieldOrder; i < len(expTable); i++ {
			expTable[i] = expTable[i-fieldOrder]
		}
		logTable[0] = 0

		for a := 0; a < fieldSize; a++ {
			for b := 0; b < fieldSize; b++ {
				mulTable[a][b] = mulGeneric(byte(a), byte(b))
			}
		}
	})
	return initErr
}

// mulGeneric computes a*b directly from the log/exp tables, bypassing
// mulTable. Used only while building mulTable itself.
func mulGeneric(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// gfAdd returns a+b in GF(256): plain XOR.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfMul returns a*b in GF(256). Zero if either operand is zero.
func gfMul(a, b byte) byte {
	return mulTable[a][b]
}

// gfDiv returns a/b in GF(256). b must be non-zero; callers are expected
// to have validated this per the invertibility of the Cauchy submatrices
// they draw divisors from (spec section 4.1, 7).
func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	diff := int(logTable[a]) - int(logTable[b])
	if diff < 0 {
		diff += fieldOrder
	}
	return expTable[diff]
}

// gfInv returns the multiplicative inverse of a. a must be non-zero.
func gfInv(a byte) byte {
	return expTable[fieldOrder-int(logTable[a])]
}
