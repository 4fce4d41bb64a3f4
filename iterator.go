// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Iterator walks the values of a Bitmap32 in ascending order from the
// front and descending order from the back simultaneously, the two ends
// meeting in the middle once every value has been consumed exactly once.
type Iterator struct {
	rb *Bitmap32

	frontContainer int
	frontValues    []uint16
	frontPos       int

	backContainer int
	backValues    []uint16
	backPos       int // index one past the next value to emit

	remaining uint64
}

// Iterator returns a fresh Iterator positioned before the first value.
func (rb *Bitmap32) Iterator() *Iterator {
	it := &Iterator{
		rb:             rb,
		frontContainer: 0,
		backContainer:  len(rb.containers) - 1,
		remaining:      rb.Cardinality(),
	}
	return it
}

func materialize(c *store) []uint16 {
	if c.kind == kindArray {
		return c.data
	}
	out := make([]uint16, 0, c.cardinality())
	c.rangeValues(func(v uint16) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Next returns the next value in ascending order, or (0,false) when the
// iterator is exhausted.
func (it *Iterator) Next() (uint32, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	for it.frontValues == nil || it.frontPos >= len(it.frontValues) {
		if it.frontContainer >= len(it.rb.containers) || it.frontContainer > it.backContainer {
			return 0, false
		}
		it.frontValues = materialize(&it.rb.containers[it.frontContainer])
		it.frontPos = 0
		if it.frontContainer == it.backContainer && it.backValues != nil {
			// The back cursor already consumed from this same container;
			// trim the materialized slice to what the back hasn't taken.
			it.frontValues = it.frontValues[:it.backPos]
		}
		if len(it.frontValues) == 0 {
			it.frontContainer++
		}
	}

	base := uint32(it.rb.keys[it.frontContainer]) << 16
	v := base | uint32(it.frontValues[it.frontPos])
	it.frontPos++
	it.remaining--

	if it.frontPos >= len(it.frontValues) {
		it.frontContainer++
		it.frontValues = nil
	}
	return v, true
}

// NextBack returns the next value in descending order, or (0,false) when
// the iterator is exhausted.
func (it *Iterator) NextBack() (uint32, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	for it.backValues == nil || it.backPos == 0 {
		if it.backContainer < 0 || it.backContainer < it.frontContainer {
			return 0, false
		}
		it.backValues = materialize(&it.rb.containers[it.backContainer])
		if it.backContainer == it.frontContainer && it.frontValues != nil {
			it.backValues = it.backValues[it.frontPos:]
		}
		it.backPos = len(it.backValues)
		if it.backPos == 0 {
			it.backContainer--
		}
	}

	base := uint32(it.rb.keys[it.backContainer]) << 16
	it.backPos--
	v := base | uint32(it.backValues[it.backPos])
	it.remaining--

	if it.backPos == 0 {
		it.backContainer--
		it.backValues = nil
	}
	return v, true
}

// AdvanceTo skips the forward cursor directly to the first value ≥ n,
// dropping any containers strictly below n's container entirely.
func (it *Iterator) AdvanceTo(n uint32) {
	hi, lo := keyLo(n)
	for it.frontContainer <= it.backContainer && it.frontContainer < len(it.rb.containers) {
		if it.rb.keys[it.frontContainer] > hi {
			it.frontValues = nil
			it.frontPos = 0
			return
		}
		if it.rb.keys[it.frontContainer] == hi {
			vals := materialize(&it.rb.containers[it.frontContainer])
			if it.frontContainer == it.backContainer && it.backValues != nil {
				vals = vals[:it.backPos]
			}
			pos := 0
			for pos < len(vals) && vals[pos] < lo {
				pos++
			}
			it.remaining -= uint64(pos)
			if pos == len(vals) {
				it.frontContainer++
				it.frontValues = nil
				return
			}
			it.frontValues = vals
			it.frontPos = pos
			return
		}
		it.remaining -= uint64(it.rb.containers[it.frontContainer].cardinality())
		it.frontContainer++
		it.frontValues = nil
	}
}

// AdvanceBackTo skips the backward cursor directly to the last value ≤ n,
// dropping any containers strictly above n's container entirely.
func (it *Iterator) AdvanceBackTo(n uint32) {
	hi, lo := keyLo(n)
	for it.backContainer >= it.frontContainer && it.backContainer >= 0 {
		if it.rb.keys[it.backContainer] < hi {
			return
		}
		if it.rb.keys[it.backContainer] == hi {
			vals := materialize(&it.rb.containers[it.backContainer])
			if it.backContainer == it.frontContainer && it.frontValues != nil {
				vals = vals[it.frontPos:]
			}
			pos := len(vals)
			for pos > 0 && vals[pos-1] > lo {
				pos--
			}
			dropped := len(vals) - pos
			it.remaining -= uint64(dropped)
			if pos == 0 {
				it.backContainer--
				it.backValues = nil
				return
			}
			it.backValues = vals
			it.backPos = pos
			return
		}
		it.remaining -= uint64(it.rb.containers[it.backContainer].cardinality())
		it.backContainer--
		it.backValues = nil
	}
}

// SizeHint returns the number of values not yet consumed.
func (it *Iterator) SizeHint() uint64 {
	return it.remaining
}

// NextRange returns the next maximal run of contiguous values starting at
// or after the current forward position, as an inclusive [start, end] pair.
func (it *Iterator) NextRange() (start, end uint32, ok bool) {
	first, has := it.Next()
	if !has {
		return 0, 0, false
	}
	start, end = first, first
	for {
		saveContainer, savePos := it.frontContainer, it.frontPos
		saveValues := it.frontValues
		v, has := it.Next()
		if !has || v != end+1 {
			it.frontContainer, it.frontPos, it.frontValues = saveContainer, savePos, saveValues
			if has {
				it.remaining++
			}
			return start, end, true
		}
		end = v
	}
}
