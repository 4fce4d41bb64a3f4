// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "math/bits"

// This file implements the store's 9-way dispatch for the set-algebra
// kernels: union, intersection, difference and symmetric difference, for
// every combination of {Array, Bitmap, Run}. storeUnion and storeDifference
// switch on each kind without a default arm, so a fourth representation
// reaches their panic; storeIntersect groups pairings under a default arm
// and storeSymmetricDifference uses an if chain, so neither of those two
// rejects an unknown kind.

// storeUnion returns a new store holding a ∪ b.
func storeUnion(a, b *store) store {
	switch a.kind {
	case kindArray:
		switch b.kind {
		case kindArray:
			return unionArrArr(a, b)
		case kindBitmap:
			return unionBmpFirst(b, a)
		case kindRun:
			return unionRunFirst(b, a)
		}
	case kindBitmap:
		switch b.kind {
		case kindArray:
			return unionBmpFirst(a, b)
		case kindBitmap:
			return unionBmpBmp(a, b)
		case kindRun:
			return unionBmpRun(a, b)
		}
	case kindRun:
		switch b.kind {
		case kindArray:
			return unionRunFirst(a, b)
		case kindBitmap:
			return unionBmpRun(b, a)
		case kindRun:
			return unionRunRun(a, b)
		}
	}
	panic("roaring: unreachable store kind")
}

func unionArrArr(a, b *store) store {
	out := make([]uint16, 0, len(a.data)+len(b.data))
	i, j := 0, 0
	for i < len(a.data) && j < len(b.data) {
		switch {
		case a.data[i] == b.data[j]:
			out = append(out, a.data[i])
			i++
			j++
		case a.data[i] < b.data[j]:
			out = append(out, a.data[i])
			i++
		default:
			out = append(out, b.data[j])
			j++
		}
	}
	out = append(out, a.data[i:]...)
	out = append(out, b.data[j:]...)

	r := store{kind: kindArray, data: out, card: uint32(len(out))}
	r.normalize()
	return r
}

// unionBmpFirst unions a bitmap store with a non-bitmap store, always
// producing a Bitmap (it always wins on size).
func unionBmpFirst(bmp, other *store) store {
	r := bmp.clone()
	dst := r.bmp()
	switch other.kind {
	case kindArray:
		for _, v := range other.data {
			if dst.Set(uint32(v)) {
				r.card++
			}
		}
	case kindRun:
		words := r.words()
		for i := 0; i+1 < len(other.data); i += 2 {
			r.card += words.insertRange(other.data[i], other.data[i+1])
		}
	}
	return r
}

func unionBmpBmp(a, b *store) store {
	r := a.clone()
	r.bmp().Or(b.bmp())
	r.card = r.words().cardinality()
	return r
}

// unionBmpRun ORs every range of the run side into a copy of the bitmap
// side; the result is always a Bitmap.
func unionBmpRun(bmp, run *store) store {
	return unionBmpFirst(bmp, run)
}

// unionRunFirst unions a Run container with an Array, preferring to keep
// Run when the other side is Array.
func unionRunFirst(run, arr *store) store {
	r := store{kind: kindRun, data: append([]uint16(nil), run.data...), card: run.card}
	for _, v := range arr.data {
		r.runInsertRange(v, v)
	}
	r.optimize()
	return r
}

func unionRunRun(a, b *store) store {
	out := make([]uint16, 0, len(a.data)+len(b.data))
	i, j := 0, 0
	na, nb := len(a.data)/2, len(b.data)/2
	for i < na && j < nb {
		s1, e1 := uint32(a.data[i*2]), uint32(a.data[i*2+1])
		s2, e2 := uint32(b.data[j*2]), uint32(b.data[j*2+1])

		if s1 <= e2+1 && s2 <= e1+1 {
			us, ue := s1, e1
			if s2 < us {
				us = s2
			}
			if e2 > ue {
				ue = e2
			}
			i++
			j++
			for i < na && uint32(a.data[i*2]) <= ue+1 {
				if uint32(a.data[i*2+1]) > ue {
					ue = uint32(a.data[i*2+1])
				}
				i++
			}
			for j < nb && uint32(b.data[j*2]) <= ue+1 {
				if uint32(b.data[j*2+1]) > ue {
					ue = uint32(b.data[j*2+1])
				}
				j++
			}
			out = append(out, uint16(us), uint16(ue))
		} else if s1 < s2 {
			out = append(out, uint16(s1), uint16(e1))
			i++
		} else {
			out = append(out, uint16(s2), uint16(e2))
			j++
		}
	}
	for ; i < na; i++ {
		out = append(out, a.data[i*2], a.data[i*2+1])
	}
	for ; j < nb; j++ {
		out = append(out, b.data[j*2], b.data[j*2+1])
	}

	r := store{kind: kindRun, data: out, card: runCardinality(out)}
	r.optimize()
	return r
}

// storeIntersect returns a new store holding a ∩ b.
func storeIntersect(a, b *store) store {
	switch {
	case a.kind == kindRun && b.kind == kindRun:
		return intersectRunRun(a, b)
	case a.kind == kindBitmap && b.kind == kindBitmap:
		return intersectBmpBmp(a, b)
	case a.kind == kindArray || b.kind == kindArray:
		return intersectToArray(a, b)
	default:
		// one Bitmap, one Run: result can only shrink, build as array.
		return intersectToArray(a, b)
	}
}

func intersectRunRun(a, b *store) store {
	out := make([]uint16, 0, len(a.data))
	i, j := 0, 0
	na, nb := len(a.data)/2, len(b.data)/2
	for i < na && j < nb {
		s1, e1 := uint32(a.data[i*2]), uint32(a.data[i*2+1])
		s2, e2 := uint32(b.data[j*2]), uint32(b.data[j*2+1])

		lo, hi := s1, e1
		if s2 > lo {
			lo = s2
		}
		if e2 < hi {
			hi = e2
		}
		if lo <= hi {
			out = append(out, uint16(lo), uint16(hi))
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
	r := store{kind: kindRun, data: out, card: runCardinality(out)}
	r.optimize()
	return r
}

func intersectBmpBmp(a, b *store) store {
	r := a.clone()
	r.bmp().And(b.bmp())
	r.card = r.words().cardinality()
	r.normalize()
	return r
}

// intersectToArray handles every pairing that includes at least one Array,
// and the Bitmap∩Run case, by filtering the smaller side's values through
// the other's membership test.
func intersectToArray(a, b *store) store {
	small, large := a, b
	if smallerHint(b, a) {
		small, large = b, a
	}

	var candidates []uint16
	switch small.kind {
	case kindArray:
		candidates = small.data
	case kindRun:
		candidates = make([]uint16, 0, small.card)
		for i := 0; i+1 < len(small.data); i += 2 {
			for v := uint32(small.data[i]); v <= uint32(small.data[i+1]); v++ {
				candidates = append(candidates, uint16(v))
				if v == uint32(small.data[i+1]) {
					break
				}
			}
		}
	case kindBitmap:
		bm := small.words()
		candidates = make([]uint16, 0, small.card)
		for w, word := range bm {
			for word != 0 {
				candidates = append(candidates, uint16(w*64+bits.TrailingZeros64(word)))
				word &= word - 1
			}
		}
	}

	out := make([]uint16, 0, len(candidates))
	for _, v := range candidates {
		if large.contains(v) {
			out = append(out, v)
		}
	}

	r := store{kind: kindArray, data: out, card: uint32(len(out))}
	r.normalize()
	return r
}

// smallerHint estimates which store is cheaper to enumerate for filtering.
func smallerHint(x, y *store) bool {
	if x.kind == kindArray && y.kind != kindArray {
		return true
	}
	if y.kind == kindArray && x.kind != kindArray {
		return false
	}
	return x.card < y.card
}

// storeDifference returns a new store holding a − b.
func storeDifference(a, b *store) store {
	switch a.kind {
	case kindArray:
		out := make([]uint16, 0, len(a.data))
		for _, v := range a.data {
			if !b.contains(v) {
				out = append(out, v)
			}
		}
		r := store{kind: kindArray, data: out, card: uint32(len(out))}
		r.normalize()
		return r
	case kindBitmap:
		r := a.clone()
		switch b.kind {
		case kindBitmap:
			r.bmp().AndNot(b.bmp())
		case kindArray:
			dst := r.bmp()
			for _, v := range b.data {
				dst.Remove(uint32(v))
			}
		case kindRun:
			words := r.words()
			for i := 0; i+1 < len(b.data); i += 2 {
				words.removeRange(b.data[i], b.data[i+1])
			}
		}
		r.card = r.words().cardinality()
		r.normalize()
		return r
	case kindRun:
		// Run − anything: materialize as array, filter, let optimize pick
		// Run back up if it is still the most compact shape.
		out := make([]uint16, 0, a.card)
		for i := 0; i+1 < len(a.data); i += 2 {
			for v := uint32(a.data[i]); v <= uint32(a.data[i+1]); v++ {
				if !b.contains(uint16(v)) {
					out = append(out, uint16(v))
				}
				if v == uint32(a.data[i+1]) {
					break
				}
			}
		}
		r := store{kind: kindArray, data: out, card: uint32(len(out))}
		r.normalize()
		r.optimize()
		return r
	}
	panic("roaring: unreachable store kind")
}

// storeSymmetricDifference returns a new store holding a △ b.
func storeSymmetricDifference(a, b *store) store {
	if a.kind == kindBitmap || b.kind == kindBitmap {
		bmpSide, other := a, b
		if bmpSide.kind != kindBitmap {
			bmpSide, other = b, a
		}
		r := bmpSide.clone()
		switch other.kind {
		case kindBitmap:
			r.bmp().Xor(other.bmp())
		case kindArray:
			dst := r.bmp()
			for _, v := range other.data {
				if dst.Contains(uint32(v)) {
					dst.Remove(uint32(v))
				} else {
					dst.Set(uint32(v))
				}
			}
		case kindRun:
			words := r.words()
			for i := 0; i+1 < len(other.data); i += 2 {
				for v := uint32(other.data[i]); v <= uint32(other.data[i+1]); v++ {
					if words.contains16(uint16(v)) {
						words.clear16(uint16(v))
					} else {
						words.set16(uint16(v))
					}
					if v == uint32(other.data[i+1]) {
						break
					}
				}
			}
		}
		r.card = r.words().cardinality()
		r.normalize()
		return r
	}

	if a.kind == kindRun && b.kind == kindRun {
		u := unionRunRun(a, b)
		i := intersectRunRun(a, b)
		return storeDifference(&u, &i)
	}

	// Array/Run combinations without a Bitmap side: union minus intersection.
	u := storeUnion(a, b)
	in := storeIntersect(a, b)
	return storeDifference(&u, &in)
}
