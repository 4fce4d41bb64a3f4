// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "math/rand/v2"

type dataGen = func() ([]uint32, string)

// genSeq creates consecutive integers starting from offset.
func genSeq(size int, offset uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = offset + uint32(i)
		}
		return data, "seq"
	}
}

// genRand creates random integers within a range.
func genRand(size int, maxVal uint32) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(rand.IntN(int(maxVal)))
		}
		return data, "rnd"
	}
}

// genSparse creates sparse integers with large gaps.
func genSparse(size int) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(i * 1000)
		}
		return data, "sps"
	}
}

// genDense creates dense integers in a small range.
func genDense(size int) dataGen {
	return func() ([]uint32, string) {
		data := make([]uint32, size)
		for i := 0; i < size; i++ {
			data[i] = uint32(rand.IntN(size/10 + 1))
		}
		return data, "dns"
	}
}

// genBoundary creates boundary/edge case values.
func genBoundary() dataGen {
	return func() ([]uint32, string) {
		return []uint32{0, 65535, 65536, 131071, 131072, 4294967295}, "bnd"
	}
}

// genMixed creates values spread across multiple containers, each biased
// toward a different representation.
func genMixed() dataGen {
	return func() ([]uint32, string) {
		var data []uint32
		data = append(data, 1, 5, 10, 100, 500, 1000) // array-shaped
		for i := 0; i < 5000; i++ {
			data = append(data, uint32(65536+i*3)) // bitmap-shaped
		}
		for i := 131072; i <= 131172; i++ {
			data = append(data, uint32(i)) // run-shaped
		}
		return data, "mix"
	}
}

func toSet(values []uint32) map[uint32]bool {
	out := make(map[uint32]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
