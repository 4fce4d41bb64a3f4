// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// arrayMaxSize is the cardinality above which a container stops being
// represented as a sorted array.
const arrayMaxSize = 4096

// arrInsert inserts value into a sorted array store, returning whether it
// was newly added.
func (s *store) arrInsert(value uint16) bool {
	idx, exists := find16(s.data, value)
	if exists {
		return false
	}

	s.data = append(s.data, 0)
	copy(s.data[idx+1:], s.data[idx:len(s.data)-1])
	s.data[idx] = value
	s.card++
	return true
}

// arrInsertRange replaces the spanned slice [a,b] with the full run a..=b,
// returning the count of newly-present values.
func (s *store) arrInsertRange(a, b uint16) uint32 {
	if a > b {
		return 0
	}

	lo, _ := find16(s.data, a)
	hi, found := find16(s.data, b)
	if found {
		hi++
	}

	overwritten := hi - lo
	span := int(b-a) + 1

	run := make([]uint16, span)
	for i := range run {
		run[i] = a + uint16(i)
	}

	s.data = append(s.data[:lo], append(run, s.data[hi:]...)...)
	added := uint32(span - overwritten)
	s.card += added
	return added
}

// arrRemove removes value from the array, returning whether it was present.
func (s *store) arrRemove(value uint16) bool {
	idx, exists := find16(s.data, value)
	if !exists {
		return false
	}

	copy(s.data[idx:], s.data[idx+1:])
	s.data = s.data[:len(s.data)-1]
	s.card--
	return true
}

// arrRemoveRange deletes every value in [a,b], returning the count removed.
func (s *store) arrRemoveRange(a, b uint16) uint32 {
	if a > b {
		return 0
	}

	lo, _ := find16(s.data, a)
	hi, found := find16(s.data, b)
	if found {
		hi++
	}
	if lo >= hi {
		return 0
	}

	removed := uint32(hi - lo)
	s.data = append(s.data[:lo], s.data[hi:]...)
	s.card -= removed
	return removed
}

// arrPush appends value only if it is strictly greater than the current max.
func (s *store) arrPush(value uint16) bool {
	if len(s.data) > 0 && value <= s.data[len(s.data)-1] {
		return false
	}
	s.data = append(s.data, value)
	s.card++
	return true
}

// arrContains reports whether value is present.
func (s *store) arrContains(value uint16) bool {
	_, exists := find16(s.data, value)
	return exists
}

// arrContainsRange reports whether every value in [a,b] is present: the
// element range_count-1 positions after a's index must equal b.
func (s *store) arrContainsRange(a, b uint16) bool {
	if a > b {
		return false
	}
	idx, exists := find16(s.data, a)
	if !exists {
		return false
	}
	count := int(b-a) + 1
	end := idx + count - 1
	return end < len(s.data) && s.data[end] == b
}

// arrIsDisjoint reports whether no value is shared between two array stores.
func arrIsDisjoint(a, b []uint16) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return false
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return true
}

// arrIsSubset reports whether every value of a is present in b.
func arrIsSubset(a, b []uint16) bool {
	i, j := 0, 0
	for i < len(a) {
		for j < len(b) && b[j] < a[i] {
			j++
		}
		if j >= len(b) || b[j] != a[i] {
			return false
		}
		i++
		j++
	}
	return true
}

// arrIntersectionLen counts values present in both sorted arrays.
func arrIntersectionLen(a, b []uint16) int {
	i, j, n := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return n
}

// arrRank returns the number of values ≤ x.
func (s *store) arrRank(x uint16) uint32 {
	idx, found := find16(s.data, x)
	if found {
		return uint32(idx) + 1
	}
	return uint32(idx)
}

// arrSelect returns the (n+1)-th smallest value.
func (s *store) arrSelect(n uint32) (uint16, bool) {
	if n >= uint32(len(s.data)) {
		return 0, false
	}
	return s.data[n], true
}

// arrMin returns the smallest value.
func (s *store) arrMin() (uint16, bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	return s.data[0], true
}

// arrMax returns the largest value.
func (s *store) arrMax() (uint16, bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	return s.data[len(s.data)-1], true
}

// arrRemoveSmallest drops the n smallest values.
func (s *store) arrRemoveSmallest(n uint32) {
	if n >= uint32(len(s.data)) {
		s.data = s.data[:0]
		s.card = 0
		return
	}
	s.data = append(s.data[:0], s.data[n:]...)
	s.card -= n
}

// arrRemoveBiggest drops the n largest values.
func (s *store) arrRemoveBiggest(n uint32) {
	if n >= uint32(len(s.data)) {
		s.data = s.data[:0]
		s.card = 0
		return
	}
	s.data = s.data[:uint32(len(s.data))-n]
	s.card -= n
}

// arrToBitmap converts an array store into a bitmap store.
func (s *store) arrToBitmap() {
	src := s.data
	s.data = newBitmapData()
	s.kind = kindBitmap
	dst := s.bmp()
	for _, v := range src {
		dst.Set(uint32(v))
	}
}

// arrToRun converts an array store into a run store, one run per maximal
// sequence of consecutive values. It does not check whether Run is the more
// compact representation.
func (s *store) arrToRun() {
	if len(s.data) == 0 {
		s.kind = kindRun
		return
	}

	runs := make([]uint16, 0, 16)
	start, end := s.data[0], s.data[0]
	for _, v := range s.data[1:] {
		if v == end+1 {
			end = v
			continue
		}
		runs = append(runs, start, end)
		start, end = v, v
	}
	runs = append(runs, start, end)

	s.data = runs
	s.kind = kindRun
}

// arrCountRuns counts the maximal runs of consecutive values in the array.
func arrCountRuns(a []uint16) int {
	if len(a) == 0 {
		return 0
	}
	runs := 1
	for i := 1; i < len(a); i++ {
		if a[i] != a[i-1]+1 {
			runs++
		}
	}
	return runs
}
