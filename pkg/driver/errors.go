package driver

import "fmt"

// ErrorCode is a driver-specific numeric error code.
type ErrorCode int32

// Driver error codes, modeled on the numeric error space of embedded
// radio SDKs.
const (
	CodeOK           ErrorCode = 0
	CodeFail         ErrorCode = -1
	CodeNoMem        ErrorCode = 0x101
	CodeInvalidArg   ErrorCode = 0x102
	CodeInvalidState ErrorCode = 0x103
	CodeTimeout      ErrorCode = 0x107
	CodeNotStarted   ErrorCode = 0x3002
	CodeNotStopped   ErrorCode = 0x3003
	CodeConnFail     ErrorCode = 0x300B
)

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeFail:
		return "FAIL"
	case CodeNoMem:
		return "NO_MEM"
	case CodeInvalidArg:
		return "INVALID_ARG"
	case CodeInvalidState:
		return "INVALID_STATE"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeNotStarted:
		return "NOT_STARTED"
	case CodeNotStopped:
		return "NOT_STOPPED"
	case CodeConnFail:
		return "CONN_FAIL"
	default:
		return fmt.Sprintf("CODE_0x%X", int32(c))
	}
}

// Error is a driver operation failure carrying the driver error code.
type Error struct {
	// Op names the driver operation that failed.
	Op string

	// Code is the driver-specific error code.
	Code ErrorCode
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("driver %s: %s", e.Op, e.Code)
}

// NewError creates a driver error for the given operation and code.
func NewError(op string, code ErrorCode) *Error {
	return &Error{Op: op, Code: code}
}
