package atlas

type plotData struct {
	pageIndex int
	plotIndex int
}

// BulkUsePlotUpdater collects the plots touched by a batch of draws so they
// can be stamped with one SetLastUseTokenBulk call. Each plot is recorded
// once regardless of how many locators point into it.
type BulkUsePlotUpdater struct {
	plots   []plotData
	updated [MaxMultitexturePages]uint32
}

// Add records the plot holding loc. It returns false if the plot was
// already recorded.
func (u *BulkUsePlotUpdater) Add(loc AtlasLocator) bool {
	page, plot := loc.PageIndex(), loc.PlotIndex()
	if u.find(page, plot) {
		return false
	}
	u.set(page, plot)
	return true
}

// Count returns the number of distinct plots recorded.
func (u *BulkUsePlotUpdater) Count() int { return len(u.plots) }

// Reset forgets every recorded plot.
func (u *BulkUsePlotUpdater) Reset() {
	u.plots = u.plots[:0]
	u.updated = [MaxMultitexturePages]uint32{}
}

func (u *BulkUsePlotUpdater) find(page, plot int) bool {
	return u.updated[page]&(1<<plot) != 0
}

func (u *BulkUsePlotUpdater) set(page, plot int) {
	u.updated[page] |= 1 << plot
	u.plots = append(u.plots, plotData{pageIndex: page, plotIndex: plot})
}
