// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"unsafe"

	"github.com/kelindar/bitmap"
)

// bitmapWords is the number of uint16 words backing a full bitmap container:
// 65536 bits = 8192 bytes = 4096 uint16s = 1024 uint64s.
const bitmapWords = 4096

// asBitmap reinterprets a container's []uint16 backing array as a
// kelindar/bitmap.Bitmap (a []uint64) without copying; every store
// representation lives behind a single []uint16 slice so conversions
// never change the field a container keeps its data in.
func asBitmap(data []uint16) bitmap.Bitmap {
	if len(data) == 0 {
		return nil
	}
	return bitmap.Bitmap(unsafe.Slice((*uint64)(unsafe.Pointer(&data[0])), len(data)/4))
}

// asUint16s reinterprets a bitmap.Bitmap back into its []uint16 backing form.
func asUint16s(data bitmap.Bitmap) []uint16 {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(&data[0])), len(data)*4)
}

// newBitmapData allocates a zeroed bitmap-container backing array.
func newBitmapData() []uint16 {
	return make([]uint16, bitmapWords)
}
