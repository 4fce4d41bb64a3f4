// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Bitmap32 is a compressed bitmap of uint32 values backed by a sorted set
// of 65536-wide containers, each represented as an Array, a Bitmap or a
// Run. After every mutation a container switches between Array and Bitmap
// by cardinality; Run is chosen by Optimize (and can come out of set
// operations on Run containers) when it is the most compact. Callers only
// ever see the logical set of uint32 values.
type Bitmap32 struct {
	keys       []uint16 // container keys, sorted, parallel to containers
	containers []store
}

// NewBitmap32 creates a new, empty Bitmap32.
func NewBitmap32() *Bitmap32 {
	return &Bitmap32{}
}

// FromValues creates a new Bitmap32 containing the given values, which need
// not be sorted or deduplicated.
func FromValues(values ...uint32) *Bitmap32 {
	rb := NewBitmap32()
	for _, v := range values {
		rb.Insert(v)
	}
	return rb
}

// FromSortedIter builds a Bitmap32 from a strictly increasing sequence of
// values produced by next, appending each value in turn. It returns
// ErrNonSortedInput if the sequence is not strictly increasing.
func FromSortedIter(next func() (uint32, bool)) (*Bitmap32, error) {
	rb := NewBitmap32()
	for {
		v, ok := next()
		if !ok {
			return rb, nil
		}
		if !rb.Push(v) {
			return rb, ErrNonSortedInput
		}
	}
}

// FromLSB0Bytes treats data as a packed bitmap in least-significant-bit-
// first order, with bit 0 of data[0] addressing value offset, and returns
// the Bitmap32 of every value whose bit is set.
func FromLSB0Bytes(offset uint32, data []byte) *Bitmap32 {
	rb := NewBitmap32()
	for i, b := range data {
		if b == 0 {
			continue
		}
		base := offset + uint32(i)*8
		for bit := uint32(0); bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				rb.Insert(base + bit)
			}
		}
	}
	return rb
}

func keyLo(x uint32) (uint16, uint16) {
	return uint16(x >> 16), uint16(x & 0xFFFF)
}

// Insert adds x to the set, returning whether it was newly added.
func (rb *Bitmap32) Insert(x uint32) bool {
	hi, lo := keyLo(x)
	c := rb.ctrGetOrAdd(hi)
	added := c.insert(lo)
	if added {
		c.normalize()
	}
	return added
}

// Remove removes x from the set, returning whether it was present.
func (rb *Bitmap32) Remove(x uint32) bool {
	hi, lo := keyLo(x)
	idx, exists := find16(rb.keys, hi)
	if !exists {
		return false
	}
	c := &rb.containers[idx]
	removed := c.remove(lo)
	switch {
	case !removed:
	case c.isEmpty():
		rb.ctrDel(idx)
	default:
		c.normalize()
	}
	return removed
}

// Contains reports whether x is a member of the set.
func (rb *Bitmap32) Contains(x uint32) bool {
	hi, lo := keyLo(x)
	idx, exists := find16(rb.keys, hi)
	return exists && rb.containers[idx].contains(lo)
}

// InsertRange adds every value in [a,b] to the set, returning the count of
// newly added values.
func (rb *Bitmap32) InsertRange(a, b uint32) uint64 {
	if a > b {
		return 0
	}
	var added uint64
	hiA, loA := keyLo(a)
	hiB, loB := keyLo(b)

	for hi := uint32(hiA); hi <= uint32(hiB); hi++ {
		lo, hiEnd := uint16(0), uint16(0xFFFF)
		if uint16(hi) == hiA {
			lo = loA
		}
		if uint16(hi) == hiB {
			hiEnd = loB
		}
		c := rb.ctrGetOrAdd(uint16(hi))
		n := c.insertRange(lo, hiEnd)
		if n > 0 {
			c.normalize()
		}
		added += uint64(n)
	}
	return added
}

// RemoveRange deletes every value in [a,b], returning the count removed.
func (rb *Bitmap32) RemoveRange(a, b uint32) uint64 {
	if a > b {
		return 0
	}
	var removed uint64
	hiA, loA := keyLo(a)
	hiB, loB := keyLo(b)

	i := 0
	for i < len(rb.keys) {
		hi := rb.keys[i]
		if uint32(hi) < uint32(hiA) || uint32(hi) > uint32(hiB) {
			i++
			continue
		}
		lo, hiEnd := uint16(0), uint16(0xFFFF)
		if hi == hiA {
			lo = loA
		}
		if hi == hiB {
			hiEnd = loB
		}
		c := &rb.containers[i]
		removed += uint64(c.removeRange(lo, hiEnd))
		if c.isEmpty() {
			rb.ctrDel(i)
			continue
		}
		c.normalize()
		i++
	}
	return removed
}

// ContainsRange reports whether every value in [a,b] is a member of the set.
func (rb *Bitmap32) ContainsRange(a, b uint32) bool {
	if a > b {
		return false
	}
	hiA, loA := keyLo(a)
	hiB, loB := keyLo(b)

	for hi := uint32(hiA); hi <= uint32(hiB); hi++ {
		idx, exists := find16(rb.keys, uint16(hi))
		if !exists {
			return false
		}
		lo, hiEnd := uint16(0), uint16(0xFFFF)
		if uint16(hi) == hiA {
			lo = loA
		}
		if uint16(hi) == hiB {
			hiEnd = loB
		}
		if !rb.containers[idx].containsRange(lo, hiEnd) {
			return false
		}
	}
	return true
}

// RangeCardinality returns the number of values in [a,b] that are members
// of the set.
func (rb *Bitmap32) RangeCardinality(a, b uint32) uint64 {
	if a > b {
		return 0
	}
	var n uint64
	hiA, loA := keyLo(a)
	hiB, loB := keyLo(b)

	for i, hi := range rb.keys {
		if uint32(hi) < uint32(hiA) || uint32(hi) > uint32(hiB) {
			continue
		}
		lo, hiEnd := uint16(0), uint16(0xFFFF)
		if hi == hiA {
			lo = loA
		}
		if hi == hiB {
			hiEnd = loB
		}
		n += uint64(rb.containers[i].rank(hiEnd)) - uint64(lo0rank(&rb.containers[i], lo))
	}
	return n
}

// lo0rank returns the rank of the value just below lo, i.e. rank(lo-1), or 0
// if lo is 0.
func lo0rank(s *store, lo uint16) uint32 {
	if lo == 0 {
		return 0
	}
	return s.rank(lo - 1)
}

// Cardinality returns the total number of values in the set.
func (rb *Bitmap32) Cardinality() uint64 {
	var n uint64
	for i := range rb.containers {
		n += uint64(rb.containers[i].cardinality())
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (rb *Bitmap32) IsEmpty() bool {
	return len(rb.containers) == 0
}

// IsFull reports whether the set contains every value in [0, 2^32).
func (rb *Bitmap32) IsFull() bool {
	if len(rb.containers) != 65536 {
		return false
	}
	for i := range rb.containers {
		if !rb.containers[i].isFull() {
			return false
		}
	}
	return true
}

// Clear removes every value from the set.
func (rb *Bitmap32) Clear() {
	rb.keys = rb.keys[:0]
	rb.containers = rb.containers[:0]
}

// Min returns the smallest member of the set.
func (rb *Bitmap32) Min() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}
	lo, ok := rb.containers[0].min()
	if !ok {
		return 0, false
	}
	return uint32(rb.keys[0])<<16 | uint32(lo), true
}

// Max returns the largest member of the set.
func (rb *Bitmap32) Max() (uint32, bool) {
	if len(rb.containers) == 0 {
		return 0, false
	}
	last := len(rb.containers) - 1
	lo, ok := rb.containers[last].max()
	if !ok {
		return 0, false
	}
	return uint32(rb.keys[last])<<16 | uint32(lo), true
}

// Rank returns the number of values in the set that are ≤ x.
func (rb *Bitmap32) Rank(x uint32) uint64 {
	hi, lo := keyLo(x)
	var n uint64
	for i, k := range rb.keys {
		switch {
		case k < hi:
			n += uint64(rb.containers[i].cardinality())
		case k == hi:
			n += uint64(rb.containers[i].rank(lo))
			return n
		default:
			return n
		}
	}
	return n
}

// Select returns the (n+1)-th smallest member of the set.
func (rb *Bitmap32) Select(n uint64) (uint32, bool) {
	for i := range rb.containers {
		card := uint64(rb.containers[i].cardinality())
		if n < card {
			lo, _ := rb.containers[i].selectNth(uint32(n))
			return uint32(rb.keys[i])<<16 | uint32(lo), true
		}
		n -= card
	}
	return 0, false
}

// RemoveSmallest drops the n values with the smallest value from the set.
func (rb *Bitmap32) RemoveSmallest(n uint64) {
	for n > 0 && len(rb.containers) > 0 {
		card := uint64(rb.containers[0].cardinality())
		if n >= card {
			rb.ctrDel(0)
			n -= card
			continue
		}
		rb.containers[0].removeSmallest(uint32(n))
		rb.containers[0].normalize()
		return
	}
}

// RemoveBiggest drops the n values with the largest value from the set.
func (rb *Bitmap32) RemoveBiggest(n uint64) {
	for n > 0 && len(rb.containers) > 0 {
		last := len(rb.containers) - 1
		card := uint64(rb.containers[last].cardinality())
		if n >= card {
			rb.ctrDel(last)
			n -= card
			continue
		}
		rb.containers[last].removeBiggest(uint32(n))
		rb.containers[last].normalize()
		return
	}
}

// Push appends x to the set. It succeeds only if x is strictly greater
// than the current maximum, and is meant for building a Bitmap32 from an
// already-sorted source at lower cost than repeated Insert calls.
func (rb *Bitmap32) Push(x uint32) bool {
	if max, ok := rb.Max(); ok && x <= max {
		return false
	}
	return rb.PushUnchecked(x)
}

// PushUnchecked appends x without checking ordering against the current
// maximum; the caller must guarantee x is strictly greater than every value
// already present, or the resulting Bitmap32 is corrupt.
func (rb *Bitmap32) PushUnchecked(x uint32) bool {
	hi, lo := keyLo(x)
	n := len(rb.keys)
	if n == 0 || rb.keys[n-1] != hi {
		rb.ctrAdd(hi, n, newArrayStore())
		n++
	}
	c := &rb.containers[n-1]
	added := c.push(lo)
	if added {
		c.normalize()
	}
	return added
}

// Append merges every value of other into rb. An empty rb becomes a clone
// of other; otherwise the merge is a plain Or, with no separate path for
// containers whose key lies above rb's largest key.
func (rb *Bitmap32) Append(other *Bitmap32) {
	if other == nil || other.IsEmpty() {
		return
	}
	if rb.IsEmpty() {
		*rb = *other.Clone()
		return
	}
	rb.Or(other)
}

// Clone returns a deep copy of rb.
func (rb *Bitmap32) Clone() *Bitmap32 {
	out := &Bitmap32{
		keys:       append([]uint16(nil), rb.keys...),
		containers: make([]store, len(rb.containers)),
	}
	for i := range rb.containers {
		out.containers[i] = rb.containers[i].clone()
	}
	return out
}

// Equals reports whether rb and other contain exactly the same values.
func (rb *Bitmap32) Equals(other *Bitmap32) bool {
	if rb.Cardinality() != other.Cardinality() {
		return false
	}
	if len(rb.keys) != len(other.keys) {
		return false
	}
	for i := range rb.keys {
		if rb.keys[i] != other.keys[i] {
			return false
		}
		a, b := &rb.containers[i], &other.containers[i]
		if a.cardinality() != b.cardinality() {
			return false
		}
		if !isSubset(a, b) {
			return false
		}
	}
	return true
}

// Optimize re-evaluates every container's representation, converting to
// whichever of Array, Bitmap or Run is most compact.
func (rb *Bitmap32) Optimize() {
	for i := range rb.containers {
		rb.containers[i].optimize()
	}
}

// RemoveRunCompression converts every Run container back to Array or
// Bitmap, chosen by cardinality alone. The value set is unchanged; only the
// representation is affected, and a later Optimize call may reintroduce Run
// containers where they are the most compact representation again.
func (rb *Bitmap32) RemoveRunCompression() {
	for i := range rb.containers {
		rb.containers[i].removeRunCompression()
	}
}

// ---------------------------------------- Set Algebra ----------------------------------------

// And intersects rb with other in place, plus any extra bitmaps.
func (rb *Bitmap32) And(other *Bitmap32, extra ...*Bitmap32) {
	rb.and(other)
	for _, o := range extra {
		if o != nil {
			rb.and(o)
		}
	}
}

// Or unions rb with other in place, plus any extra bitmaps.
func (rb *Bitmap32) Or(other *Bitmap32, extra ...*Bitmap32) {
	rb.or(other)
	for _, o := range extra {
		if o != nil {
			rb.or(o)
		}
	}
}

// AndNot removes every value present in other (and any extras) from rb.
func (rb *Bitmap32) AndNot(other *Bitmap32, extra ...*Bitmap32) {
	rb.andNot(other)
	for _, o := range extra {
		if o != nil {
			rb.andNot(o)
		}
	}
}

// Xor replaces rb with its symmetric difference against other, plus any
// extra bitmaps.
func (rb *Bitmap32) Xor(other *Bitmap32, extra ...*Bitmap32) {
	rb.xor(other)
	for _, o := range extra {
		if o != nil {
			rb.xor(o)
		}
	}
}

func (rb *Bitmap32) and(other *Bitmap32) {
	i, j := 0, 0
	for i < len(rb.keys) {
		switch {
		case j >= len(other.keys) || rb.keys[i] < other.keys[j]:
			rb.ctrDel(i)
		case rb.keys[i] > other.keys[j]:
			j++
		default:
			result := storeIntersect(&rb.containers[i], &other.containers[j])
			rb.containers[i] = result
			if result.isEmpty() {
				rb.ctrDel(i)
			} else {
				i++
			}
			j++
		}
	}
}

func (rb *Bitmap32) or(other *Bitmap32) {
	i, j := 0, 0
	for j < len(other.keys) {
		switch {
		case i >= len(rb.keys) || other.keys[j] < rb.keys[i]:
			rb.ctrAdd(other.keys[j], i, other.containers[j].clone())
			i++
			j++
		case other.keys[j] > rb.keys[i]:
			i++
		default:
			rb.containers[i] = storeUnion(&rb.containers[i], &other.containers[j])
			i++
			j++
		}
	}
}

func (rb *Bitmap32) andNot(other *Bitmap32) {
	i, j := 0, 0
	for i < len(rb.keys) {
		switch {
		case j >= len(other.keys) || rb.keys[i] < other.keys[j]:
			i++
		case rb.keys[i] > other.keys[j]:
			j++
		default:
			result := storeDifference(&rb.containers[i], &other.containers[j])
			rb.containers[i] = result
			if result.isEmpty() {
				rb.ctrDel(i)
			} else {
				i++
			}
			j++
		}
	}
}

func (rb *Bitmap32) xor(other *Bitmap32) {
	i, j := 0, 0
	for i < len(rb.keys) && j < len(other.keys) {
		switch {
		case rb.keys[i] < other.keys[j]:
			i++
		case rb.keys[i] > other.keys[j]:
			rb.ctrAdd(other.keys[j], i, other.containers[j].clone())
			i++
			j++
		default:
			result := storeSymmetricDifference(&rb.containers[i], &other.containers[j])
			rb.containers[i] = result
			if result.isEmpty() {
				rb.ctrDel(i)
			} else {
				i++
			}
			j++
		}
	}
	for ; j < len(other.keys); j++ {
		rb.ctrAdd(other.keys[j], len(rb.keys), other.containers[j].clone())
	}
}

// Union returns a new Bitmap32 holding the union of a, b and any extras,
// without modifying any of its arguments.
func Union(a, b *Bitmap32, extra ...*Bitmap32) *Bitmap32 {
	out := a.Clone()
	out.Or(b, extra...)
	return out
}

// Intersection returns a new Bitmap32 holding the intersection of a, b and
// any extras, without modifying any of its arguments.
func Intersection(a, b *Bitmap32, extra ...*Bitmap32) *Bitmap32 {
	out := a.Clone()
	out.And(b, extra...)
	return out
}

// Difference returns a new Bitmap32 holding a minus b (and any extras),
// without modifying any of its arguments.
func Difference(a, b *Bitmap32, extra ...*Bitmap32) *Bitmap32 {
	out := a.Clone()
	out.AndNot(b, extra...)
	return out
}

// SymmetricDifference returns a new Bitmap32 holding the symmetric
// difference of a and b, without modifying either argument.
func SymmetricDifference(a, b *Bitmap32) *Bitmap32 {
	out := a.Clone()
	out.Xor(b)
	return out
}

// ---------------------------------------- Iteration ----------------------------------------

// Range calls fn for every member of the set in ascending order, stopping
// early if fn returns false.
func (rb *Bitmap32) Range(fn func(x uint32) bool) {
	for i := range rb.containers {
		base := uint32(rb.keys[i]) << 16
		c := &rb.containers[i]
		stop := false
		c.rangeValues(func(lo uint16) bool {
			if !fn(base | uint32(lo)) {
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

// Filter iterates over every member, removing it from the set if the
// predicate returns false.
func (rb *Bitmap32) Filter(keep func(x uint32) bool) {
	var toRemove []uint32
	rb.Range(func(x uint32) bool {
		if !keep(x) {
			toRemove = append(toRemove, x)
		}
		return true
	})
	for _, x := range toRemove {
		rb.Remove(x)
	}
}

// IsDisjoint reports whether rb and other share no common value.
func (rb *Bitmap32) IsDisjoint(other *Bitmap32) bool {
	i, j := 0, 0
	for i < len(rb.keys) && j < len(other.keys) {
		switch {
		case rb.keys[i] < other.keys[j]:
			i++
		case rb.keys[i] > other.keys[j]:
			j++
		default:
			if !isDisjoint(&rb.containers[i], &other.containers[j]) {
				return false
			}
			i++
			j++
		}
	}
	return true
}

// IsSubset reports whether every value of rb is also a member of other.
func (rb *Bitmap32) IsSubset(other *Bitmap32) bool {
	if rb.Cardinality() > other.Cardinality() {
		return false
	}
	j := 0
	for i := range rb.keys {
		for j < len(other.keys) && other.keys[j] < rb.keys[i] {
			j++
		}
		if j >= len(other.keys) || other.keys[j] != rb.keys[i] {
			return false
		}
		if !isSubset(&rb.containers[i], &other.containers[j]) {
			return false
		}
	}
	return true
}
