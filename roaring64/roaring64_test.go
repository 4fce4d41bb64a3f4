// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmap64InsertContainsRemove(t *testing.T) {
	bm := New()
	v := uint64(1)<<40 | 5
	assert.True(t, bm.Insert(v))
	assert.False(t, bm.Insert(v))
	assert.True(t, bm.Contains(v))
	assert.True(t, bm.Remove(v))
	assert.False(t, bm.Contains(v))
	assert.True(t, bm.IsEmpty())
}

func TestBitmap64MinMaxRange(t *testing.T) {
	bm := New()
	values := []uint64{1, 1 << 40, 1<<40 + 7, 1 << 63}
	for _, v := range values {
		bm.Insert(v)
	}

	min, ok := bm.Min()
	assert.True(t, ok)
	assert.EqualValues(t, 1, min)

	max, ok := bm.Max()
	assert.True(t, ok)
	assert.EqualValues(t, 1<<63, max)

	var got []uint64
	bm.Range(func(v uint64) bool {
		got = append(got, v)
		return true
	})
	assert.Equal(t, values, got)
}

func TestBitmap64SetAlgebra(t *testing.T) {
	a := New()
	b := New()
	for _, v := range []uint64{1, 2, 1 << 40} {
		a.Insert(v)
	}
	for _, v := range []uint64{2, 3, 1 << 40} {
		b.Insert(v)
	}

	union := a.Clone()
	union.Or(b)
	assert.EqualValues(t, 4, union.Cardinality())

	inter := a.Clone()
	inter.And(b)
	assert.EqualValues(t, 2, inter.Cardinality())

	diff := a.Clone()
	diff.AndNot(b)
	assert.EqualValues(t, 1, diff.Cardinality())
	assert.True(t, diff.Contains(1))
}
