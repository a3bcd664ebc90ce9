package cm256

import "github.com/pkg/errors"

// Status is the stable numeric result code, kept for callers that persist
// or compare against the exact integers used by the reference codec.
type Status int32

const (
	StatusSuccess          Status = 0
	StatusInvalidParameter Status = -1
	StatusSizeExceeded     Status = -2
	StatusNullInput        Status = -3
	StatusMalformedInput   Status = -5
	StatusVersionMismatch  Status = -10
)

var (
	// ErrInvalidParameter: non-positive k, m, or blockBytes.
	ErrInvalidParameter = errors.New("cm256: invalid parameter")
	// ErrSizeExceeded: k+m > 256.
	ErrSizeExceeded = errors.New("cm256: original+recovery count exceeds 256")
	// ErrNullInput: a required array reference is nil.
	ErrNullInput = errors.New("cm256: required input is nil")
	// ErrMalformedInput: duplicate original index, or index >= k+m.
	ErrMalformedInput = errors.New("cm256: malformed block index")
	// ErrVersionMismatch: Init found an unrecognized package version.
	ErrVersionMismatch = errors.New("cm256: version mismatch")
)

// CodecError pairs a stable Status with the sentinel error it corresponds
// to, so callers can either errors.Is against a sentinel or read the
// numeric Status off the wire-stable contract in spec section 6.
type CodecError struct {
	status Status
	err    error
}

func (e *CodecError) Error() string { return e.err.Error() }
func (e *CodecError) Unwrap() error { return e.err }
func (e *CodecError) Status() Status { return e.status }

func newError(status Status, err error) *CodecError {
	return &CodecError{status: status, err: err}
}

func statusToErr(status Status) error {
	switch status {
	case StatusSuccess:
		return nil
	case StatusInvalidParameter:
		return newError(status, ErrInvalidParameter)
	case StatusSizeExceeded:
		return newError(status, ErrSizeExceeded)
	case StatusNullInput:
		return newError(status, ErrNullInput)
	case StatusMalformedInput:
		return newError(status, ErrMalformedInput)
	case StatusVersionMismatch:
		return newError(status, ErrVersionMismatch)
	default:
		panic("cm256: unexpected status code")
	}
}
