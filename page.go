// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package atlas

// plotList is an intrusive most-recently-used list over a page's plots.
// Links are plot indices stored in the plots themselves, so moving a plot
// to the front and reading the tail are O(1) without extra allocation.
type plotList struct {
	plots      []*Plot
	head, tail int
}

func (l *plotList) reset() {
	for _, p := range l.plots {
		if p != nil {
			p.prev, p.next = -1, -1
		}
	}
	l.head, l.tail = -1, -1
}

// addToHead links p at the front.
func (l *plotList) addToHead(p *Plot) {
	p.prev = -1
	p.next = l.head
	if l.head >= 0 {
		l.plots[l.head].prev = p.plotIndex
	}
	l.head = p.plotIndex
	if l.tail < 0 {
		l.tail = p.plotIndex
	}
}

func (l *plotList) remove(p *Plot) {
	if p.prev >= 0 {
		l.plots[p.prev].next = p.next
	} else {
		l.head = p.next
	}
	if p.next >= 0 {
		l.plots[p.next].prev = p.prev
	} else {
		l.tail = p.prev
	}
	p.prev, p.next = -1, -1
}

// moveToHead makes p the most recently used plot.
func (l *plotList) moveToHead(p *Plot) {
	if l.head == p.plotIndex {
		return
	}
	l.remove(p)
	l.addToHead(p)
}

func (l *plotList) front() *Plot {
	if l.head < 0 {
		return nil
	}
	return l.plots[l.head]
}

func (l *plotList) back() *Plot {
	if l.tail < 0 {
		return nil
	}
	return l.plots[l.tail]
}

// each calls fn for every plot from most to least recently used, stopping
// early when fn returns false.
func (l *plotList) each(fn func(*Plot) bool) {
	for i := l.head; i >= 0; {
		p := l.plots[i]
		next := p.next
		if !fn(p) {
			return
		}
		i = next
	}
}

// page is one texture of a DrawAtlas together with its plots.
type page struct {
	list  plotList
	proxy *TextureProxy
}

func (pg *page) plots() []*Plot { return pg.list.plots }
