package atlas

// PlotEvictionCallback is notified when a non-empty plot is about to be
// cleared. Implementations drop any cached locators that point into the
// plot. The callback runs synchronously, before the plot's generation
// changes, and must not call back into the atlas.
type PlotEvictionCallback interface {
	Evict(loc PlotLocator)
}

// EvictionFunc adapts a function to PlotEvictionCallback.
type EvictionFunc func(loc PlotLocator)

// Evict calls f(loc).
func (f EvictionFunc) Evict(loc PlotLocator) { f(loc) }
