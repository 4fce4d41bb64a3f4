// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Run containers store disjoint, non-contiguous inclusive intervals as
// flat pairs (start, end) in s.data: s.data[2*i], s.data[2*i+1].

// runFind locates the run containing value, or the insertion index if none
// does.
func (s *store) runFind(value uint16) (idx int, found bool) {
	n := len(s.data) / 2
	switch {
	case n == 0:
		return 0, false
	case value < s.data[0]:
		return 0, false
	case value > s.data[(n-1)*2+1]:
		return n, false
	}

	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) >> 1
		switch {
		case value < s.data[mid*2]:
			hi = mid
		case value > s.data[mid*2+1]:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return lo, false
}

func (s *store) runInsertAt(index int, start, end uint16) {
	n := len(s.data) / 2
	s.data = append(s.data, 0, 0)
	copy(s.data[(index+1)*2:], s.data[index*2:n*2])
	s.data[index*2] = start
	s.data[index*2+1] = end
}

func (s *store) runRemoveAt(index int) {
	n := len(s.data) / 2
	copy(s.data[index*2:], s.data[(index+1)*2:n*2])
	s.data = s.data[:(n-1)*2]
}

// runInsert inserts value, merging with adjacent runs as needed.
func (s *store) runInsert(value uint16) bool {
	idx, found := s.runFind(value)
	if found {
		return false
	}

	n := len(s.data) / 2
	mergeLeft := idx > 0 && s.data[(idx-1)*2+1]+1 == value
	mergeRight := idx < n && s.data[idx*2]-1 == value

	switch {
	case mergeLeft && mergeRight:
		s.data[(idx-1)*2+1] = s.data[idx*2+1]
		s.runRemoveAt(idx)
	case mergeLeft:
		s.data[(idx-1)*2+1] = value
	case mergeRight:
		s.data[idx*2] = value
	default:
		s.runInsertAt(idx, value, value)
	}

	s.card++
	return true
}

// runInsertRange merges [a,b] into the run sequence, returning the count of
// newly-covered values.
func (s *store) runInsertRange(a, b uint16) uint32 {
	if a > b {
		return 0
	}
	n := len(s.data) / 2
	if n == 0 {
		s.data = append(s.data, a, b)
		added := uint32(b-a) + 1
		s.card += added
		return added
	}

	ia, ib := int(a), int(b)

	startIdx := 0
	for startIdx < n && int(s.data[startIdx*2]) < ia {
		startIdx++
	}
	endIdx := startIdx
	for endIdx < n && int(s.data[endIdx*2]) <= ib {
		endIdx++
	}

	mergedStart, mergedEnd := ia, ib
	if startIdx > 0 && int(s.data[(startIdx-1)*2+1])+1 >= ia {
		startIdx--
		mergedStart = int(s.data[startIdx*2])
	}
	if endIdx < n && int(s.data[endIdx*2]) <= ib+1 {
		if int(s.data[endIdx*2+1]) > mergedEnd {
			mergedEnd = int(s.data[endIdx*2+1])
		}
		endIdx++
	} else if endIdx > startIdx && int(s.data[(endIdx-1)*2+1]) > mergedEnd {
		mergedEnd = int(s.data[(endIdx-1)*2+1])
	}

	var replaced uint32
	for i := startIdx; i < endIdx; i++ {
		replaced += uint32(s.data[i*2+1]-s.data[i*2]) + 1
	}

	tail := append([]uint16{}, s.data[endIdx*2:]...)
	s.data = append(s.data[:startIdx*2], uint16(mergedStart), uint16(mergedEnd))
	s.data = append(s.data, tail...)

	total := uint32(mergedEnd-mergedStart) + 1
	added := total - replaced
	s.card += added
	return added
}

// runRemove removes value, splitting or trimming the owning run as needed.
func (s *store) runRemove(value uint16) bool {
	idx, found := s.runFind(value)
	if !found {
		return false
	}

	start, end := s.data[idx*2], s.data[idx*2+1]
	switch {
	case start == end:
		s.runRemoveAt(idx)
	case value == start:
		s.data[idx*2] = value + 1
	case value == end:
		s.data[idx*2+1] = value - 1
	default:
		s.data[idx*2+1] = value - 1
		s.runInsertAt(idx+1, value+1, end)
	}
	s.card--
	return true
}

// runRemoveRange deletes every value in [a,b], returning the count removed.
func (s *store) runRemoveRange(a, b uint16) uint32 {
	if a > b {
		return 0
	}

	var removed uint32
	i := 0
	for i < len(s.data)/2 {
		start, end := s.data[i*2], s.data[i*2+1]
		switch {
		case end < a || start > b:
			i++
			continue
		case start >= a && end <= b:
			removed += uint32(end-start) + 1
			s.runRemoveAt(i)
			continue
		case start < a && end > b:
			removed += uint32(b-a) + 1
			s.data[i*2+1] = a - 1
			s.runInsertAt(i+1, b+1, end)
			i += 2
			continue
		case start < a:
			removed += uint32(end-a) + 1
			s.data[i*2+1] = a - 1
			i++
			continue
		default: // end > b
			removed += uint32(b-start) + 1
			s.data[i*2] = b + 1
			i++
		}
	}

	s.card -= removed
	return removed
}

func (s *store) runContains(value uint16) bool {
	_, found := s.runFind(value)
	return found
}

func (s *store) runContainsRange(a, b uint16) bool {
	if a > b {
		return false
	}
	idxA, found := s.runFind(a)
	if !found {
		return false
	}
	idxB, found := s.runFind(b)
	return found && idxA == idxB
}

func runIsDisjoint(a, b []uint16) bool {
	i, j := 0, 0
	na, nb := len(a)/2, len(b)/2
	for i < na && j < nb {
		s1, e1 := a[i*2], a[i*2+1]
		s2, e2 := b[j*2], b[j*2+1]
		switch {
		case e1 < s2:
			i++
		case e2 < s1:
			j++
		default:
			return false
		}
	}
	return true
}

func runIntersectionLen(a, b []uint16) int {
	i, j, n := 0, 0, 0
	na, nb := len(a)/2, len(b)/2
	for i < na && j < nb {
		s1, e1 := uint32(a[i*2]), uint32(a[i*2+1])
		s2, e2 := uint32(b[j*2]), uint32(b[j*2+1])

		lo := s1
		if s2 > lo {
			lo = s2
		}
		hi := e1
		if e2 < hi {
			hi = e2
		}
		if lo <= hi {
			n += int(hi-lo) + 1
		}

		switch {
		case e1 < e2:
			i++
		case e2 < e1:
			j++
		default:
			i++
			j++
		}
	}
	return n
}

// runRank returns the number of values ≤ x.
func (s *store) runRank(x uint16) uint32 {
	var n uint32
	for i := 0; i+1 < len(s.data); i += 2 {
		start, end := s.data[i], s.data[i+1]
		if end < x {
			n += uint32(end-start) + 1
			continue
		}
		if start <= x {
			n += uint32(x-start) + 1
		}
		break
	}
	return n
}

// runSelect returns the (n+1)-th smallest value.
func (s *store) runSelect(n uint32) (uint16, bool) {
	for i := 0; i+1 < len(s.data); i += 2 {
		start, end := s.data[i], s.data[i+1]
		runLen := uint32(end-start) + 1
		if runLen > n {
			return start + uint16(n), true
		}
		n -= runLen
	}
	return 0, false
}

func (s *store) runMin() (uint16, bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	return s.data[0], true
}

func (s *store) runMax() (uint16, bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	return s.data[len(s.data)-1], true
}

// runToArray expands every run into individual sorted values.
func (s *store) runToArray() {
	out := make([]uint16, 0, s.card)
	for i := 0; i+1 < len(s.data); i += 2 {
		for v := uint32(s.data[i]); v <= uint32(s.data[i+1]); v++ {
			out = append(out, uint16(v))
		}
	}
	s.data = out
	s.kind = kindArray
}

// runToBitmap sets every run's range in a freshly-allocated bitmap store.
func (s *store) runToBitmap() {
	runs := s.data
	s.data = newBitmapData()
	s.kind = kindBitmap
	words := s.words()
	for i := 0; i+1 < len(runs); i += 2 {
		words.insertRange(runs[i], runs[i+1])
	}
}

func runCardinality(data []uint16) uint32 {
	var n uint32
	for i := 0; i+1 < len(data); i += 2 {
		n += uint32(data[i+1]-data[i]) + 1
	}
	return n
}
