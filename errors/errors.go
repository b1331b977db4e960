package errors

// Error is a trivial implementation of error that can be declared
// as a constant, so error values shared across packages stay immutable.
type Error string

func (e Error) Error() string {
	return string(e)
}

// Error kinds used across the storage and execution layers.
const (
	ErrInvalidArgument = Error("invalid argument")
	ErrNotFound        = Error("not found")
	ErrInvalidPage     = Error("invalid page number")
	ErrIO              = Error("I/O failure")
	ErrUnsupportedType = Error("unsupported column type")
	ErrTxnAborted      = Error("transaction aborted")
)
