// Package monitoring provides the package-level diagnostic logger shared by
// the post-processing pipeline. Workers report per-file progress through it,
// and quiet mode swaps in a no-op.
package monitoring

import "log"

// Logf is the package-level progress logger. It defaults to log.Printf but
// may be replaced by SetLogger. The batch runner mutes it in quiet mode.
var Logf func(format string, v ...interface{}) = log.Printf

// Errorf reports per-file data-quality conditions. It stays active in quiet
// mode so skipped recordings are never silent.
var Errorf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the progress logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetErrorLogger replaces the error logger. Passing nil will set a no-op
// logger; tests use this to capture or silence skip reports.
func SetErrorLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Errorf = func(string, ...interface{}) {}
		return
	}
	Errorf = f
}
