//go:build atlasdebug

package atlas

import "fmt"

// debugChecks enables internal consistency checks.
const debugChecks = true

// assertf panics when cond is false. Only compiled in with the atlasdebug tag.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic("atlas: assertion failed: " + fmt.Sprintf(format, args...))
	}
}
