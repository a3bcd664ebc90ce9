// Package cm256 (see cm256.go) is a from-scratch reimplementation of the
// CM256 GF(256) Cauchy Reed-Solomon block erasure codec in pure Go: no
// cgo, no external C library, one process-wide GF(256) table built once
// via Init.
package cm256
