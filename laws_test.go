// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// lawCase pairs three independently-generated value sets with a label, so
// every universal law below runs against sequential, random, sparse, dense,
// boundary and mixed-representation data rather than a single fixed fixture.
type lawCase struct {
	name    string
	a, b, c dataGen
}

func lawCases() []lawCase {
	return []lawCase{
		{"seq", genSeq(500, 0), genSeq(300, 400), genSeq(200, 600)},
		{"sparse_dense", genSparse(200), genDense(3000), genRand(1000, 100000)},
		{"boundary", genBoundary(), genSeq(10, 65530), genRand(50, 200000)},
		{"mixed", genMixed(), genRand(2000, 200000), genSparse(150)},
		{"rand", genRand(3000, 500000), genRand(3000, 500000), genRand(3000, 500000)},
	}
}

func fromGen(gen dataGen) *Bitmap32 {
	values, _ := gen()
	return FromValues(values...)
}

func TestLawCommutativity(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b := fromGen(lc.a), fromGen(lc.b)
			assert.True(t, Union(a, b).Equals(Union(b, a)))
			assert.True(t, Intersection(a, b).Equals(Intersection(b, a)))
			assert.True(t, SymmetricDifference(a, b).Equals(SymmetricDifference(b, a)))
		})
	}
}

func TestLawAssociativity(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b, c := fromGen(lc.a), fromGen(lc.b), fromGen(lc.c)
			assert.True(t, Union(Union(a, b), c).Equals(Union(a, Union(b, c))))
			assert.True(t, Intersection(Intersection(a, b), c).Equals(Intersection(a, Intersection(b, c))))
		})
	}
}

func TestLawDistributivity(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b, c := fromGen(lc.a), fromGen(lc.b), fromGen(lc.c)
			// A ∩ (B ∪ C) == (A ∩ B) ∪ (A ∩ C)
			lhs := Intersection(a, Union(b, c))
			rhs := Union(Intersection(a, b), Intersection(a, c))
			assert.True(t, lhs.Equals(rhs))

			// A ∪ (B ∩ C) == (A ∪ B) ∩ (A ∪ C)
			lhs2 := Union(a, Intersection(b, c))
			rhs2 := Intersection(Union(a, b), Union(a, c))
			assert.True(t, lhs2.Equals(rhs2))
		})
	}
}

func TestLawIdentity(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a := fromGen(lc.a)
			empty := NewBitmap32()
			assert.True(t, Union(a, empty).Equals(a))
			assert.True(t, Intersection(a, empty).Equals(empty))
			assert.True(t, Difference(a, empty).Equals(a))
		})
	}
}

func TestLawIdempotenceAndInvolution(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b := fromGen(lc.a), fromGen(lc.b)
			assert.True(t, Union(a, a).Equals(a))
			assert.True(t, Intersection(a, a).Equals(a))
			assert.True(t, Difference(a, a).IsEmpty())
			assert.True(t, SymmetricDifference(a, a).IsEmpty())

			// Symmetric difference is its own inverse: (A △ B) △ B == A.
			assert.True(t, SymmetricDifference(SymmetricDifference(a, b), b).Equals(a))
		})
	}
}

func TestLawDifference(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b := fromGen(lc.a), fromGen(lc.b)
			// (A - B) ∩ B == ∅
			assert.True(t, Intersection(Difference(a, b), b).IsEmpty())
			// A - (A - B) == A ∩ B
			assert.True(t, Difference(a, Difference(a, b)).Equals(Intersection(a, b)))
		})
	}
}

func TestLawCardinality(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b := fromGen(lc.a), fromGen(lc.b)
			inter := Intersection(a, b).Cardinality()

			assert.Equal(t, a.Cardinality()+b.Cardinality()-inter, Union(a, b).Cardinality())
			assert.Equal(t, a.Cardinality()-inter, Difference(a, b).Cardinality())
			assert.Equal(t, a.Cardinality()+b.Cardinality()-2*inter, SymmetricDifference(a, b).Cardinality())
		})
	}
}

func TestLawSubsetOrder(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a, b := fromGen(lc.a), fromGen(lc.b)
			assert.True(t, Intersection(a, b).IsSubset(a))
			assert.True(t, a.IsSubset(Union(a, b)))
		})
	}
}

func TestLawRoundTrip(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a := fromGen(lc.a)
			buf := a.ToBytes()
			got, err := FromBytes(buf)
			assert.NoError(t, err)
			assert.True(t, a.Equals(got))

			// For these cases, run-optimizing adds at most 8 bytes to the
			// wire size: the run-aware header (run bitset and offset table)
			// can cost more than the converted containers save.
			a.Optimize()
			assert.LessOrEqual(t, len(a.ToBytes()), len(buf)+8)
		})
	}
}

func TestLawOptimizeRemoveRunCompressionIdentity(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a := fromGen(lc.a)
			clone := a.Clone()

			clone.Optimize()
			assert.True(t, clone.Equals(a))

			clone.RemoveRunCompression()
			assert.True(t, clone.Equals(a))
		})
	}
}

func TestLawRankSelectInverse(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			a := fromGen(lc.a)
			if a.IsEmpty() {
				return
			}
			max, _ := a.Max()
			assert.EqualValues(t, a.Cardinality(), a.Rank(max))

			it := a.Iterator()
			for i := 0; i < 8; i++ {
				v, ok := it.Next()
				if !ok {
					break
				}
				selected, ok := a.Select(a.Rank(v) - 1)
				assert.True(t, ok)
				assert.Equal(t, v, selected)
			}
		})
	}
}

func TestLawIteratorOrdering(t *testing.T) {
	for _, lc := range lawCases() {
		t.Run(lc.name, func(t *testing.T) {
			values, _ := lc.a()
			a := FromValues(values...)
			set := toSet(values)
			want := make([]uint32, 0, len(set))
			for v := range set {
				want = append(want, v)
			}
			sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

			var got []uint32
			it := a.Iterator()
			for {
				v, ok := it.Next()
				if !ok {
					break
				}
				got = append(got, v)
			}
			assert.Equal(t, want, got)
			for i := 1; i < len(got); i++ {
				assert.Less(t, got[i-1], got[i])
			}
		})
	}
}

func TestLawInsertRangeExactness(t *testing.T) {
	cases := []struct{ a, b uint32 }{
		{0, 0}, {5, 5}, {10, 20}, {4090, 4100}, {65530, 65540}, {0, 65536}, {131070, 131180},
	}
	for _, tc := range cases {
		rb := NewBitmap32()
		added := rb.InsertRange(tc.a, tc.b)
		assert.EqualValues(t, uint64(tc.b)-uint64(tc.a)+1, added)
		assert.True(t, rb.ContainsRange(tc.a, tc.b))
		assert.EqualValues(t, added, rb.Cardinality())
	}
}

func TestLawBulkAppendStopsAtFirstOffender(t *testing.T) {
	a := fromGen(genSeq(20, 0))
	var sorted []uint32
	a.Range(func(x uint32) bool {
		sorted = append(sorted, x)
		return true
	})

	// Inject an out-of-order element in the middle of an otherwise strictly
	// increasing sequence.
	offenderAt := len(sorted) / 2
	corrupted := append([]uint32(nil), sorted...)
	corrupted[offenderAt] = corrupted[offenderAt-1]

	i := 0
	got, err := FromSortedIter(func() (uint32, bool) {
		if i >= len(corrupted) {
			return 0, false
		}
		v := corrupted[i]
		i++
		return v, true
	})
	assert.ErrorIs(t, err, ErrNonSortedInput)
	assert.EqualValues(t, offenderAt, got.Cardinality())

	var gotVals []uint32
	got.Range(func(x uint32) bool {
		gotVals = append(gotVals, x)
		return true
	})
	assert.Equal(t, sorted[:offenderAt], gotVals)
}

// Seed scenarios from the serialization/range/bitmap design notes, pinned to
// exact values rather than generated data.

func TestSeedS1BasicOps(t *testing.T) {
	rb := FromValues(2, 3, 5, 7)
	assert.EqualValues(t, 4, rb.Cardinality())
	min, _ := rb.Min()
	max, _ := rb.Max()
	assert.EqualValues(t, 2, min)
	assert.EqualValues(t, 7, max)
	assert.EqualValues(t, 3, rb.Rank(5))
	v, ok := rb.Select(2)
	assert.True(t, ok)
	assert.EqualValues(t, 5, v)
	assert.False(t, rb.Contains(4))
}

func TestSeedS2RangeAcrossContainers(t *testing.T) {
	rb := NewBitmap32()
	added := rb.InsertRange(0, 65536)
	assert.EqualValues(t, 65537, added)
	assert.Len(t, rb.keys, 2)
	assert.EqualValues(t, 0, rb.keys[0])
	assert.EqualValues(t, 1, rb.keys[1])

	rb.RemoveRange(65536, 65536)
	assert.Len(t, rb.keys, 1)
	assert.EqualValues(t, 0, rb.keys[0])
	assert.EqualValues(t, 65536, rb.containers[0].cardinality())
}

func TestSeedS3SetAlgebra(t *testing.T) {
	a := NewBitmap32()
	a.InsertRange(1, 4)
	b := NewBitmap32()
	b.InsertRange(3, 5)

	assert.EqualValues(t, 4, Union(a, b).Cardinality())
	assert.EqualValues(t, 1, Intersection(a, b).Cardinality())
	assert.EqualValues(t, 2, Difference(a, b).Cardinality())
	assert.EqualValues(t, 3, SymmetricDifference(a, b).Cardinality())
}

func TestSeedS4FromLSB0Bytes(t *testing.T) {
	data := []byte{0b00000101, 0b00000010, 0x00, 0x80}

	rb := FromLSB0Bytes(0, data)
	for _, v := range []uint32{0, 2, 9, 31} {
		assert.True(t, rb.Contains(v))
	}
	assert.EqualValues(t, 4, rb.Cardinality())

	shifted := FromLSB0Bytes(3, data)
	for _, v := range []uint32{3, 5, 12, 34} {
		assert.True(t, shifted.Contains(v))
	}
	assert.EqualValues(t, 4, shifted.Cardinality())
}

func TestSeedS5SerializeRoundTrip(t *testing.T) {
	array := NewBitmap32()
	array.InsertRange(0, 4095)
	buf := array.ToBytes()
	got, err := FromBytes(buf)
	assert.NoError(t, err)
	assert.True(t, array.Equals(got))
	assert.Equal(t, buf, got.ToBytes())

	twoContainers := NewBitmap32()
	twoContainers.InsertRange(0, 65536)
	twoContainers.Optimize()
	assert.EqualValues(t, kindRun, twoContainers.containers[0].kind)
	buf2 := twoContainers.ToBytes()
	got2, err := FromBytes(buf2)
	assert.NoError(t, err)
	assert.True(t, twoContainers.Equals(got2))
	assert.Equal(t, buf2, got2.ToBytes())
}

func TestSeedS6ThresholdContainer(t *testing.T) {
	rb := NewBitmap32()
	for i := uint32(0); i < arrayMaxSize; i++ {
		rb.Insert(i)
	}
	assert.EqualValues(t, kindArray, rb.containers[0].kind)

	rb.Insert(arrayMaxSize)
	assert.EqualValues(t, kindBitmap, rb.containers[0].kind)

	rb.Remove(arrayMaxSize)
	assert.EqualValues(t, kindArray, rb.containers[0].kind)
}
