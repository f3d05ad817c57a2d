// Package misc holds the error type and logger shared by the signature
// packages.
package misc

import (
	"fmt"
	goLog "log"
)

// Error is returned by all operations of the signature schemes.
type Error interface {
	error

	// Usage returns true if the caller passed malformed input, such as
	// a key of the wrong length or a context string that is too long.
	Usage() bool

	// Locked returns true if the error is caused by a key file that is
	// locked by another process.
	Locked() bool

	// Inner returns the wrapped error, if any.
	Inner() error
}

type errorImpl struct {
	msg    string
	usage  bool
	locked bool
	inner  error
}

func (err *errorImpl) Usage() bool { return err.usage }
func (err *errorImpl) Locked() bool { return err.locked }
func (err *errorImpl) Inner() error { return err.inner }
func (err *errorImpl) Unwrap() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return fmt.Sprintf("%s: %s", err.msg, err.inner.Error())
	}
	return err.msg
}

// Errorf formats a new Error.
func Errorf(format string, a ...interface{}) Error {
	return &errorImpl{msg: fmt.Sprintf(format, a...)}
}

// WrapErrorf formats a new Error that wraps another.
func WrapErrorf(err error, format string, a ...interface{}) Error {
	return &errorImpl{msg: fmt.Sprintf(format, a...), inner: err}
}

// Usagef formats a new Error caused by bad input from the caller.
func Usagef(format string, a ...interface{}) Error {
	return &errorImpl{msg: fmt.Sprintf(format, a...), usage: true}
}

// Lockedf formats a new Error for a key file held by someone else.
func Lockedf(format string, a ...interface{}) Error {
	return &errorImpl{msg: fmt.Sprintf(format, a...), locked: true}
}

// ErrInvalidSignature is returned by the verification functions for
// any signature that does not verify, malformed or not.
var ErrInvalidSignature Error = &errorImpl{msg: "Signature is not valid"}

// MaxContextLen is the longest context string the pure and pre-hash
// signing modes accept.
const MaxContextLen = 255

// CheckContext returns a usage error if ctx is too long.
func CheckContext(ctx []byte) Error {
	if len(ctx) > MaxContextLen {
		return Usagef("Context string is %d bytes; at most %d allowed",
			len(ctx), MaxContextLen)
	}
	return nil
}

type dummyLogger struct{}
type stdlibLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

// Log is the current logger.  Use SetLogger to change it.
var Log Logger = &dummyLogger{}

// Logger is satisfied by *testing.T, among others.
type Logger interface {
	Logf(format string, a ...interface{})
}

// EnableLogging logs to the log package.  For more flexibility, see
// SetLogger().
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger enables logging.  Disable logging by passing nil.
func SetLogger(logger Logger) {
	if logger == nil {
		Log = &dummyLogger{}
		return
	}
	Log = logger
}
