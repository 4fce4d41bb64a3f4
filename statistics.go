// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "fmt"

// Stats describes the composition of a Bitmap32: how many containers use
// each representation, how many values and bytes each representation
// accounts for, and the overall bounds of the set.
type Stats struct {
	Containers       uint32
	ArrayContainers  uint32
	RunContainers    uint32
	BitmapContainers uint32
	ValuesInArrays   uint32
	ValuesInRuns     uint32
	ValuesInBitmaps  uint64
	BytesInArrays    uint64
	BytesInRuns      uint64
	BytesInBitmaps   uint64
	MinValue         uint32
	MaxValue         uint32
	HasValues        bool
	Cardinality      uint64
}

// Statistics reports the current composition of rb.
func (rb *Bitmap32) Statistics() Stats {
	var s Stats
	for i := range rb.containers {
		c := &rb.containers[i]
		s.Containers++
		s.Cardinality += uint64(c.cardinality())

		switch c.kind {
		case kindArray:
			s.ArrayContainers++
			s.ValuesInArrays += c.cardinality()
			s.BytesInArrays += uint64(cap(c.data)) * 2
		case kindRun:
			s.RunContainers++
			s.ValuesInRuns += c.cardinality()
			s.BytesInRuns += uint64(cap(c.data)) * 2
		case kindBitmap:
			s.BitmapContainers++
			s.ValuesInBitmaps += uint64(c.cardinality())
			s.BytesInBitmaps += uint64(bitmapWords) * 8
		}
	}

	if min, ok := rb.Min(); ok {
		s.MinValue = min
		s.HasValues = true
	}
	if max, ok := rb.Max(); ok {
		s.MaxValue = max
	}
	return s
}

// String renders a per-representation breakdown of s as a fixed-width
// table, one row per container kind.
func (s Stats) String() string {
	const rowFmt = "%-10s %-12s %-12s %-12s\n"
	out := fmt.Sprintf(rowFmt, "kind", "containers", "values", "bytes")
	out += fmt.Sprintf(rowFmt, "array", fmt.Sprintf("%d", s.ArrayContainers), fmt.Sprintf("%d", s.ValuesInArrays), fmt.Sprintf("%d", s.BytesInArrays))
	out += fmt.Sprintf(rowFmt, "run", fmt.Sprintf("%d", s.RunContainers), fmt.Sprintf("%d", s.ValuesInRuns), fmt.Sprintf("%d", s.BytesInRuns))
	out += fmt.Sprintf(rowFmt, "bitmap", fmt.Sprintf("%d", s.BitmapContainers), fmt.Sprintf("%d", s.ValuesInBitmaps), fmt.Sprintf("%d", s.BytesInBitmaps))
	out += fmt.Sprintf("total: %d containers, %d values, min=%d max=%d", s.Containers, s.Cardinality, s.MinValue, s.MaxValue)
	return out
}
