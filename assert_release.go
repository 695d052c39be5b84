//go:build !atlasdebug

package atlas

const debugChecks = false

func assertf(bool, string, ...any) {}
