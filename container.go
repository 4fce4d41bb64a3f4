// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// A container is one 65536-wide slice of the key space, addressed by the
// high 16 bits of a uint32. Bitmap32 does not keep a separate Container
// struct: instead it keeps two parallel, same-length slices (keys and
// containers) so that searching for a key and iterating its store stay in
// two flat, cache-friendly arrays rather than one slice of pointers.

// ctrAdd inserts a new container for key hi at position pos, keeping both
// the keys and containers slices in sorted-by-key order.
func (rb *Bitmap32) ctrAdd(hi uint16, pos int, s store) {
	rb.containers = append(rb.containers, store{})
	if pos < len(rb.containers)-1 {
		copy(rb.containers[pos+1:], rb.containers[pos:len(rb.containers)-1])
	}
	rb.containers[pos] = s

	rb.keys = append(rb.keys, 0)
	if pos < len(rb.keys)-1 {
		copy(rb.keys[pos+1:], rb.keys[pos:len(rb.keys)-1])
	}
	rb.keys[pos] = hi
}

// ctrDel removes the container at pos.
func (rb *Bitmap32) ctrDel(pos int) {
	if pos < 0 || pos >= len(rb.containers) {
		return
	}
	copy(rb.containers[pos:], rb.containers[pos+1:])
	rb.containers = rb.containers[:len(rb.containers)-1]
	copy(rb.keys[pos:], rb.keys[pos+1:])
	rb.keys = rb.keys[:len(rb.keys)-1]
}

// ctrGetOrAdd returns a pointer to the container for key hi, creating an
// empty array container for it if one does not already exist.
func (rb *Bitmap32) ctrGetOrAdd(hi uint16) *store {
	idx, exists := find16(rb.keys, hi)
	if !exists {
		rb.ctrAdd(hi, idx, newArrayStore())
	}
	return &rb.containers[idx]
}
