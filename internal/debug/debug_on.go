//go:build debug

package debug

import (
	"github.com/lestrrat-go/pdebug"
)

const Enabled = true

// Printf prints debug messages through pdebug. Only available if compiled
// with the "debug" tag
func Printf(f string, args ...any) {
	pdebug.Printf(f, args...)
}

func Dump(v ...any) {
	pdebug.Dump(v...)
}
