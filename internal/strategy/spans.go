package strategy

import "sort"

// spanSet is a union of half-open byte ranges kept sorted and merged.
type spanSet struct {
	spans [][2]int
}

// add inserts [start, end) and merges it with any range it touches.
func (s *spanSet) add(start, end int) {
	if end <= start {
		end = start + 1
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i][1] >= start })
	j := i
	for j < len(s.spans) && s.spans[j][0] <= end {
		if s.spans[j][0] < start {
			start = s.spans[j][0]
		}
		if s.spans[j][1] > end {
			end = s.spans[j][1]
		}
		j++
	}
	merged := append([][2]int{{start, end}}, s.spans[j:]...)
	s.spans = append(s.spans[:i], merged...)
}

// contains reports whether pos lies inside a stored range.
func (s *spanSet) contains(pos int) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i][1] > pos })
	return i < len(s.spans) && s.spans[i][0] <= pos
}

// overlaps reports whether [start, end) intersects a stored range.
func (s *spanSet) overlaps(start, end int) bool {
	if end <= start {
		return s.contains(start)
	}
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i][1] > start })
	return i < len(s.spans) && s.spans[i][0] < end
}

func (s *spanSet) reset() { s.spans = s.spans[:0] }
