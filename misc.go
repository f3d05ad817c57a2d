package pqc

import (
	"github.com/bwesterb/go-pqc/internal/misc"
)

// Error is returned by all operations in this module.
//
// Usage() reports errors caused by the caller, such as keys of the wrong
// length or a context string longer than 255 bytes.  Locked() is set when
// a key file is in use by another process.
type Error = misc.Error

// Returned when a signature does not verify.
var ErrInvalidSignature = misc.ErrInvalidSignature

type Logger = misc.Logger

// Enables logging to log package.  For more flexibility, see SetLogger().
func EnableLogging() {
	misc.EnableLogging()
}

// Enables logging.  Disable logging by passing nil.
//
// Use EnableLogging if you want to log to the log package.
func SetLogger(logger Logger) {
	misc.SetLogger(logger)
}
