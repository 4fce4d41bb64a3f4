// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package roaring64 implements Bitmap64, a keyed map of 32-bit roaring
// bitmaps that extends the addressable universe to the full 64-bit range.
// A uint64 value v splits as hi = v >> 32, lo = v & 0xFFFFFFFF: hi selects
// which Bitmap32 partition holds the value, lo is the value inserted into
// it. Every operation trivially reduces to the core 32-bit package; this
// package is a thin, ordered-map wrapper around it.
package roaring64

import (
	"sort"

	"github.com/arrowgrid/roaring"
)

// Bitmap64 is an ordered keyed map of Bitmap32 partitions, indexed by the
// high 32 bits of a uint64 value.
type Bitmap64 struct {
	keys       []uint32
	partitions []*roaring.Bitmap32
}

// New creates a new, empty Bitmap64.
func New() *Bitmap64 {
	return &Bitmap64{}
}

func split(v uint64) (hi uint32, lo uint32) {
	return uint32(v >> 32), uint32(v)
}

func join(hi, lo uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}

func (bm *Bitmap64) find(hi uint32) (int, bool) {
	idx := sort.Search(len(bm.keys), func(i int) bool { return bm.keys[i] >= hi })
	return idx, idx < len(bm.keys) && bm.keys[idx] == hi
}

func (bm *Bitmap64) partitionOrAdd(hi uint32) *roaring.Bitmap32 {
	idx, exists := bm.find(hi)
	if exists {
		return bm.partitions[idx]
	}
	p := roaring.NewBitmap32()
	bm.keys = append(bm.keys, 0)
	copy(bm.keys[idx+1:], bm.keys[idx:len(bm.keys)-1])
	bm.keys[idx] = hi

	bm.partitions = append(bm.partitions, nil)
	copy(bm.partitions[idx+1:], bm.partitions[idx:len(bm.partitions)-1])
	bm.partitions[idx] = p
	return p
}

// Insert adds v to the set, returning whether it was newly added.
func (bm *Bitmap64) Insert(v uint64) bool {
	hi, lo := split(v)
	return bm.partitionOrAdd(hi).Insert(lo)
}

// Remove removes v from the set, returning whether it was present.
func (bm *Bitmap64) Remove(v uint64) bool {
	hi, lo := split(v)
	idx, exists := bm.find(hi)
	if !exists {
		return false
	}
	removed := bm.partitions[idx].Remove(lo)
	if removed && bm.partitions[idx].IsEmpty() {
		bm.keys = append(bm.keys[:idx], bm.keys[idx+1:]...)
		bm.partitions = append(bm.partitions[:idx], bm.partitions[idx+1:]...)
	}
	return removed
}

// Contains reports whether v is a member of the set.
func (bm *Bitmap64) Contains(v uint64) bool {
	hi, lo := split(v)
	idx, exists := bm.find(hi)
	return exists && bm.partitions[idx].Contains(lo)
}

// Cardinality returns the total number of values in the set.
func (bm *Bitmap64) Cardinality() uint64 {
	var n uint64
	for _, p := range bm.partitions {
		n += p.Cardinality()
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (bm *Bitmap64) IsEmpty() bool {
	return len(bm.partitions) == 0
}

// Clear removes every value from the set.
func (bm *Bitmap64) Clear() {
	bm.keys = bm.keys[:0]
	bm.partitions = bm.partitions[:0]
}

// Min returns the smallest member of the set.
func (bm *Bitmap64) Min() (uint64, bool) {
	if len(bm.partitions) == 0 {
		return 0, false
	}
	lo, ok := bm.partitions[0].Min()
	if !ok {
		return 0, false
	}
	return join(bm.keys[0], lo), true
}

// Max returns the largest member of the set.
func (bm *Bitmap64) Max() (uint64, bool) {
	if len(bm.partitions) == 0 {
		return 0, false
	}
	last := len(bm.partitions) - 1
	lo, ok := bm.partitions[last].Max()
	if !ok {
		return 0, false
	}
	return join(bm.keys[last], lo), true
}

// Range calls fn for every member of the set in ascending order, stopping
// early if fn returns false.
func (bm *Bitmap64) Range(fn func(v uint64) bool) {
	for i, hi := range bm.keys {
		stop := false
		bm.partitions[i].Range(func(lo uint32) bool {
			if !fn(join(hi, lo)) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

// Clone returns a deep copy of bm.
func (bm *Bitmap64) Clone() *Bitmap64 {
	out := &Bitmap64{
		keys:       append([]uint32(nil), bm.keys...),
		partitions: make([]*roaring.Bitmap32, len(bm.partitions)),
	}
	for i, p := range bm.partitions {
		out.partitions[i] = p.Clone()
	}
	return out
}

// And intersects bm with other in place.
func (bm *Bitmap64) And(other *Bitmap64) {
	i, j := 0, 0
	for i < len(bm.keys) {
		switch {
		case j >= len(other.keys) || bm.keys[i] < other.keys[j]:
			bm.keys = append(bm.keys[:i], bm.keys[i+1:]...)
			bm.partitions = append(bm.partitions[:i], bm.partitions[i+1:]...)
		case bm.keys[i] > other.keys[j]:
			j++
		default:
			bm.partitions[i].And(other.partitions[j])
			if bm.partitions[i].IsEmpty() {
				bm.keys = append(bm.keys[:i], bm.keys[i+1:]...)
				bm.partitions = append(bm.partitions[:i], bm.partitions[i+1:]...)
			} else {
				i++
			}
			j++
		}
	}
}

// Or unions bm with other in place.
func (bm *Bitmap64) Or(other *Bitmap64) {
	for j, hi := range other.keys {
		bm.partitionOrAdd(hi).Or(other.partitions[j])
	}
}

// AndNot removes every value present in other from bm.
func (bm *Bitmap64) AndNot(other *Bitmap64) {
	i, j := 0, 0
	for i < len(bm.keys) {
		switch {
		case j >= len(other.keys) || bm.keys[i] < other.keys[j]:
			i++
		case bm.keys[i] > other.keys[j]:
			j++
		default:
			bm.partitions[i].AndNot(other.partitions[j])
			if bm.partitions[i].IsEmpty() {
				bm.keys = append(bm.keys[:i], bm.keys[i+1:]...)
				bm.partitions = append(bm.partitions[:i], bm.partitions[i+1:]...)
			} else {
				i++
			}
			j++
		}
	}
}

// Xor replaces bm with its symmetric difference against other.
func (bm *Bitmap64) Xor(other *Bitmap64) {
	for j, hi := range other.keys {
		bm.partitionOrAdd(hi).Xor(other.partitions[j])
	}
	i := 0
	for i < len(bm.keys) {
		if bm.partitions[i].IsEmpty() {
			bm.keys = append(bm.keys[:i], bm.keys[i+1:]...)
			bm.partitions = append(bm.partitions[:i], bm.partitions[i+1:]...)
			continue
		}
		i++
	}
}
