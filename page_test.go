package atlas

import "testing"

func newTestList(n int) *plotList {
	gen := NewGenerationCounter()
	l := &plotList{plots: make([]*Plot, n)}
	l.reset()
	for i := range l.plots {
		l.plots[i] = newPlot(0, i, gen, 0, 0, 16, 16, MaskFormatA8)
		l.addToHead(l.plots[i])
	}
	return l
}

func order(l *plotList) []int {
	var out []int
	l.each(func(p *Plot) bool {
		out = append(out, p.PlotIndex())
		return true
	})
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPlotList_MoveToHead(t *testing.T) {
	l := newTestList(4)
	if got := order(l); !equalInts(got, []int{3, 2, 1, 0}) {
		t.Fatalf("initial order = %v", got)
	}

	tests := []struct {
		move int
		want []int
	}{
		{1, []int{1, 3, 2, 0}},
		{1, []int{1, 3, 2, 0}},
		{0, []int{0, 1, 3, 2}},
		{2, []int{2, 0, 1, 3}},
		{3, []int{3, 2, 0, 1}},
	}

	for _, tt := range tests {
		l.moveToHead(l.plots[tt.move])
		if got := order(l); !equalInts(got, tt.want) {
			t.Errorf("after moveToHead(%d) order = %v, want %v", tt.move, got, tt.want)
		}
		if l.front().PlotIndex() != tt.want[0] || l.back().PlotIndex() != tt.want[len(tt.want)-1] {
			t.Errorf("front/back = %d/%d, want %d/%d", l.front().PlotIndex(), l.back().PlotIndex(),
				tt.want[0], tt.want[len(tt.want)-1])
		}
	}
}

func TestPlotList_Reset(t *testing.T) {
	l := newTestList(3)
	l.reset()
	if l.front() != nil || l.back() != nil {
		t.Fatal("list not empty after reset")
	}
	for _, p := range l.plots {
		l.addToHead(p)
	}
	if got := order(l); !equalInts(got, []int{2, 1, 0}) {
		t.Errorf("rebuilt order = %v", got)
	}
}

func TestPlotList_Single(t *testing.T) {
	l := newTestList(1)
	l.moveToHead(l.plots[0])
	if l.front() != l.plots[0] || l.back() != l.plots[0] {
		t.Error("single-element list broken")
	}
}

func TestPlotList_EachStops(t *testing.T) {
	l := newTestList(5)
	n := 0
	l.each(func(*Plot) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d plots, want 2", n)
	}
}

func TestPlotList_ResetBeforePlotsExist(t *testing.T) {
	l := &plotList{plots: make([]*Plot, 4)}
	l.reset()
	if l.front() != nil || l.back() != nil {
		t.Errorf("front/back = %v/%v, want nil", l.front(), l.back())
	}
}
