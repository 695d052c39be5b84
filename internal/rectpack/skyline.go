// Package rectpack provides the rectangle packer used inside atlas plots.
//
// The packer keeps a "skyline": the upper envelope of everything placed so
// far, stored as a list of horizontal segments ordered by x. A new rectangle
// is placed on the segment that yields the lowest resulting top edge, with
// ties broken by the narrowest segment, which keeps the skyline flat and the
// wasted area small for glyph-sized rectangles.
//
// Packers are not safe for concurrent use; each one is owned by a single
// plot and mutated from the recording goroutine.
package rectpack

import "image"

// segment is one horizontal run of the skyline.
type segment struct {
	x     int // left edge
	y     int // height of the skyline over this run
	width int // run width
}

// Skyline packs rectangles into a fixed width x height area.
type Skyline struct {
	width  int
	height int

	skyline []segment

	// usedArea is the sum of all placed rectangle areas.
	usedArea int
}

// NewSkyline creates an empty packer for the given area.
func NewSkyline(width, height int) *Skyline {
	s := &Skyline{
		width:   width,
		height:  height,
		skyline: make([]segment, 0, 16),
	}
	s.Reset()
	return s
}

// Width returns the width of the packing area.
func (s *Skyline) Width() int { return s.width }

// Height returns the height of the packing area.
func (s *Skyline) Height() int { return s.height }

// Reset discards every placed rectangle.
func (s *Skyline) Reset() {
	s.skyline = append(s.skyline[:0], segment{x: 0, y: 0, width: s.width})
	s.usedArea = 0
}

// Add finds a position for a width x height rectangle.
// It returns the top-left corner and true on success, or false when the
// rectangle does not fit anywhere.
func (s *Skyline) Add(width, height int) (image.Point, bool) {
	if width <= 0 || height <= 0 || width > s.width || height > s.height {
		return image.Point{}, false
	}

	bestWidth := s.width + 1
	bestX, bestY := 0, s.height+1
	bestIndex := -1

	for i := range s.skyline {
		y, ok := s.fits(i, width, height)
		if !ok {
			continue
		}
		// Lowest top edge first, then the narrowest supporting segment.
		if y < bestY || (y == bestY && s.skyline[i].width < bestWidth) {
			bestIndex = i
			bestWidth = s.skyline[i].width
			bestX = s.skyline[i].x
			bestY = y
		}
	}

	if bestIndex < 0 {
		return image.Point{}, false
	}

	s.addLevel(bestIndex, bestX, bestY, width, height)
	s.usedArea += width * height
	return image.Point{X: bestX, Y: bestY}, true
}

// fits reports whether a rectangle whose left edge sits on segment index
// fits in the area, and at what y.
func (s *Skyline) fits(index, width, height int) (int, bool) {
	x := s.skyline[index].x
	if x+width > s.width {
		return 0, false
	}

	widthLeft := width
	y := s.skyline[index].y
	for i := index; widthLeft > 0; i++ {
		y = max(y, s.skyline[i].y)
		if y+height > s.height {
			return 0, false
		}
		widthLeft -= s.skyline[i].width
	}
	return y, true
}

// addLevel raises the skyline under a newly placed rectangle.
func (s *Skyline) addLevel(index, x, y, width, height int) {
	newSeg := segment{x: x, y: y + height, width: width}
	s.skyline = append(s.skyline, segment{})
	copy(s.skyline[index+1:], s.skyline[index:])
	s.skyline[index] = newSeg

	// Shrink or drop the segments now covered by the new one.
	for i := index + 1; i < len(s.skyline); i++ {
		prev := s.skyline[i-1]
		cur := &s.skyline[i]
		if cur.x >= prev.x+prev.width {
			break
		}
		shrink := prev.x + prev.width - cur.x
		cur.x += shrink
		cur.width -= shrink
		if cur.width > 0 {
			break
		}
		s.skyline = append(s.skyline[:i], s.skyline[i+1:]...)
		i--
	}

	// Merge neighbours at equal height.
	for i := 0; i < len(s.skyline)-1; i++ {
		if s.skyline[i].y == s.skyline[i+1].y {
			s.skyline[i].width += s.skyline[i+1].width
			s.skyline = append(s.skyline[:i+1], s.skyline[i+2:]...)
			i--
		}
	}
}

// UsedArea returns the total area of placed rectangles.
func (s *Skyline) UsedArea() int {
	return s.usedArea
}

// Utilization returns the fraction of the area used (0.0 to 1.0).
func (s *Skyline) Utilization() float64 {
	total := s.width * s.height
	if total <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(total)
}

// Empty reports whether nothing has been placed since the last Reset.
func (s *Skyline) Empty() bool {
	return s.usedArea == 0
}
