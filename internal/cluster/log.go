package cluster

import "log"

// Logf is the package-level diagnostic logger used by the grid-search
// driver. It defaults to log.Printf but may be replaced with SetLogger so
// callers (and tests) can redirect or silence it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
