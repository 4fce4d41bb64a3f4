// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsBreakdown(t *testing.T) {
	rb := NewBitmap32()
	for i := uint32(0); i < 10; i++ {
		rb.Insert(i)
	}
	for i := uint32(200000); i < 210000; i++ {
		rb.Insert(i)
	}

	s := rb.Statistics()
	assert.EqualValues(t, 2, s.Containers)
	assert.EqualValues(t, 10, s.ValuesInArrays)
	assert.EqualValues(t, 10000, s.Cardinality-10)
	assert.True(t, s.HasValues)
	assert.EqualValues(t, 0, s.MinValue)
}

func TestStatisticsString(t *testing.T) {
	rb := FromValues(1, 2, 3)
	out := rb.Statistics().String()
	assert.True(t, strings.Contains(out, "array"))
	assert.True(t, strings.Contains(out, "total:"))
}
