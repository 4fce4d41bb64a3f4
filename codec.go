// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

// Serialization cookies. cookieRun marks a header carrying a run-container
// bitset; cookieNoRun marks a plain container count.
const (
	cookieNoRun uint16 = 0x3A30
	cookieRun   uint16 = 0x3B30
)

// ToBytes serializes the bitmap to a freshly-allocated byte slice.
func (rb *Bitmap32) ToBytes() []byte {
	var buf bytes.Buffer
	if _, err := rb.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteTo writes rb in the on-disk wire format: a header and container
// descriptors followed by the container bodies.
func (rb *Bitmap32) WriteTo(w io.Writer) (int64, error) {
	n := len(rb.containers)
	hasRun := false
	for i := range rb.containers {
		if rb.containers[i].kind == kindRun {
			hasRun = true
			break
		}
	}

	var written int64
	bw := bufio.NewWriter(w)

	if hasRun {
		cookie := uint32(cookieRun) | (uint32(n-1) << 16)
		if err := binary.Write(bw, binary.LittleEndian, cookie); err != nil {
			return written, err
		}
		written += 4

		runBits := make([]byte, (n+7)/8)
		for i := range rb.containers {
			if rb.containers[i].kind == kindRun {
				runBits[i/8] |= 1 << uint(i%8)
			}
		}
		if _, err := bw.Write(runBits); err != nil {
			return written, err
		}
		written += int64(len(runBits))
	} else {
		if err := binary.Write(bw, binary.LittleEndian, uint32(cookieNoRun)); err != nil {
			return written, err
		}
		written += 4
		if err := binary.Write(bw, binary.LittleEndian, uint32(n)); err != nil {
			return written, err
		}
		written += 4
	}

	for i := range rb.containers {
		c := &rb.containers[i]
		if err := binary.Write(bw, binary.LittleEndian, rb.keys[i]); err != nil {
			return written, err
		}
		written += 2
		if err := binary.Write(bw, binary.LittleEndian, uint16(c.cardinality()-1)); err != nil {
			return written, err
		}
		written += 2
	}

	withOffsets := hasRun || n >= 4
	if withOffsets {
		offset := uint32(0)
		for i := range rb.containers {
			if err := binary.Write(bw, binary.LittleEndian, offset); err != nil {
				return written, err
			}
			written += 4
			offset += uint32(bodySize(&rb.containers[i]))
		}
	}

	for i := range rb.containers {
		bn, err := writeBody(bw, &rb.containers[i])
		written += bn
		if err != nil {
			return written, err
		}
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

func bodySize(c *store) int {
	switch c.kind {
	case kindRun:
		return 2 + 4*(len(c.data)/2)
	case kindArray:
		return 2 * len(c.data)
	case kindBitmap:
		return bitmapWords * 8
	}
	return 0
}

func writeBody(w io.Writer, c *store) (int64, error) {
	switch c.kind {
	case kindRun:
		var n int64
		if err := binary.Write(w, binary.LittleEndian, uint16(len(c.data)/2)); err != nil {
			return n, err
		}
		n += 2
		for i := 0; i+1 < len(c.data); i += 2 {
			start, end := c.data[i], c.data[i+1]
			if err := binary.Write(w, binary.LittleEndian, start); err != nil {
				return n, err
			}
			n += 2
			if err := binary.Write(w, binary.LittleEndian, end-start); err != nil {
				return n, err
			}
			n += 2
		}
		return n, nil
	case kindArray:
		if err := binary.Write(w, binary.LittleEndian, c.data); err != nil {
			return 0, err
		}
		return int64(len(c.data) * 2), nil
	case kindBitmap:
		words := c.words()
		if err := binary.Write(w, binary.LittleEndian, []uint64(words)); err != nil {
			return 0, err
		}
		return int64(len(words) * 8), nil
	}
	return 0, nil
}

// ReadFrom replaces rb's contents with the bitmap decoded from r.
func (rb *Bitmap32) ReadFrom(r io.Reader) (int64, error) {
	rb.Clear()
	br := bufio.NewReader(r)
	var read int64

	var cookie32 uint32
	if err := binary.Read(br, binary.LittleEndian, &cookie32); err != nil {
		return read, err
	}
	read += 4

	cookie := uint16(cookie32 & 0xFFFF)

	var n int
	var runBits []byte
	switch cookie {
	case cookieRun:
		n = int(cookie32>>16) + 1
		runBits = make([]byte, (n+7)/8)
		if _, err := io.ReadFull(br, runBits); err != nil {
			return read, err
		}
		read += int64(len(runBits))
	case cookieNoRun:
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return read, err
		}
		read += 4
		if count > 65536 {
			return read, ErrSizeExceedsUniverse
		}
		n = int(count)
	default:
		return read, ErrUnknownCookie
	}

	keys := make([]uint16, n)
	cards := make([]uint32, n)
	for i := 0; i < n; i++ {
		if err := binary.Read(br, binary.LittleEndian, &keys[i]); err != nil {
			return read, err
		}
		read += 2
		var cm1 uint16
		if err := binary.Read(br, binary.LittleEndian, &cm1); err != nil {
			return read, err
		}
		read += 2
		cards[i] = uint32(cm1) + 1
	}

	withOffsets := cookie == cookieRun || n >= 4
	if withOffsets {
		skip := make([]byte, 4*n)
		if _, err := io.ReadFull(br, skip); err != nil {
			return read, err
		}
		read += int64(len(skip))
	}

	rb.keys = keys
	rb.containers = make([]store, n)
	for i := 0; i < n; i++ {
		isRun := runBits != nil && runBits[i/8]&(1<<uint(i%8)) != 0
		c, bn, err := readBody(br, isRun, cards[i])
		read += bn
		if err != nil {
			return read, err
		}
		rb.containers[i] = c
	}
	return read, nil
}

func readBody(r io.Reader, isRun bool, cardinality uint32) (store, int64, error) {
	switch {
	case isRun:
		var nRuns uint16
		if err := binary.Read(r, binary.LittleEndian, &nRuns); err != nil {
			return store{}, 0, err
		}
		n := int64(2)
		data := make([]uint16, 0, int(nRuns)*2)
		for i := 0; i < int(nRuns); i++ {
			var start, lenMinus1 uint16
			if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
				return store{}, n, err
			}
			n += 2
			if err := binary.Read(r, binary.LittleEndian, &lenMinus1); err != nil {
				return store{}, n, err
			}
			n += 2
			end := uint32(start) + uint32(lenMinus1)
			if end > 0xFFFF {
				return store{}, n, ErrInvalidRunExtent
			}
			if len(data) > 0 && uint32(start) <= uint32(data[len(data)-1])+1 {
				return store{}, n, ErrMalformedRun
			}
			data = append(data, start, uint16(end))
		}
		return store{kind: kindRun, data: data, card: runCardinality(data)}, n, nil
	case cardinality <= arrayMaxSize:
		data := make([]uint16, cardinality)
		if err := binary.Read(r, binary.LittleEndian, data); err != nil {
			return store{}, 0, err
		}
		for i := 1; i < len(data); i++ {
			if data[i] <= data[i-1] {
				return store{}, int64(len(data) * 2), ErrMalformedArray
			}
		}
		return store{kind: kindArray, data: data, card: cardinality}, int64(len(data) * 2), nil
	default:
		data := newBitmapData()
		words := bitmapView(asBitmap(data))
		if err := binary.Read(r, binary.LittleEndian, []uint64(words)); err != nil {
			return store{}, 0, err
		}
		n := int64(len(words) * 8)
		if words.cardinality() != cardinality {
			return store{}, n, ErrMalformedBitmap
		}
		return store{kind: kindBitmap, data: data, card: cardinality}, n, nil
	}
}

// FromBytes decodes a Bitmap32 from a byte slice produced by ToBytes.
func FromBytes(buf []byte) (*Bitmap32, error) {
	rb := NewBitmap32()
	if _, err := rb.ReadFrom(bytes.NewReader(buf)); err != nil {
		return nil, err
	}
	return rb, nil
}

// ReadFromReader decodes a Bitmap32 from r.
func ReadFromReader(r io.Reader) (*Bitmap32, error) {
	rb := NewBitmap32()
	if _, err := rb.ReadFrom(r); err != nil {
		return nil, err
	}
	return rb, nil
}

// IntersectionWithSerialized decodes the header and descriptors of the
// serialized bitmap in r, then streams each container body, decoding only
// the containers whose key is also present in rb. Bodies belonging to
// containers rb doesn't care about are never decoded: their byte length is
// computed from the descriptor cardinality (or, for Run bodies, from the
// offset table that the format guarantees whenever a Run container is
// present) and discarded with io.CopyN, so a malformed or incompatible body
// that isn't part of the intersection can't abort the call.
func (rb *Bitmap32) IntersectionWithSerialized(r io.Reader) (*Bitmap32, error) {
	br := bufio.NewReader(r)

	var cookie32 uint32
	if err := binary.Read(br, binary.LittleEndian, &cookie32); err != nil {
		return nil, err
	}
	cookie := uint16(cookie32 & 0xFFFF)

	var n int
	var runBits []byte
	switch cookie {
	case cookieRun:
		n = int(cookie32>>16) + 1
		runBits = make([]byte, (n+7)/8)
		if _, err := io.ReadFull(br, runBits); err != nil {
			return nil, err
		}
	case cookieNoRun:
		var count uint32
		if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
			return nil, err
		}
		if count > 65536 {
			return nil, ErrSizeExceedsUniverse
		}
		n = int(count)
	default:
		return nil, ErrUnknownCookie
	}

	keys := make([]uint16, n)
	cards := make([]uint32, n)
	for i := 0; i < n; i++ {
		if err := binary.Read(br, binary.LittleEndian, &keys[i]); err != nil {
			return nil, err
		}
		var cm1 uint16
		if err := binary.Read(br, binary.LittleEndian, &cm1); err != nil {
			return nil, err
		}
		cards[i] = uint32(cm1) + 1
	}

	withOffsets := cookie == cookieRun || n >= 4
	var offsets []uint32
	if withOffsets {
		offsets = make([]uint32, n)
		if err := binary.Read(br, binary.LittleEndian, offsets); err != nil {
			return nil, err
		}
	}

	out := NewBitmap32()
	for i := 0; i < n; i++ {
		isRun := runBits != nil && runBits[i/8]&(1<<uint(i%8)) != 0
		idx, present := find16(rb.keys, keys[i])

		if !present {
			if i == n-1 {
				// Nothing follows the last container; no need to skip it.
				break
			}
			size := nonRunBodySize(isRun, cards[i])
			if isRun {
				size = int(offsets[i+1] - offsets[i])
			}
			if _, err := io.CopyN(io.Discard, br, int64(size)); err != nil {
				return nil, err
			}
			continue
		}

		c, _, err := readBody(br, isRun, cards[i])
		if err != nil {
			return nil, err
		}
		result := storeIntersect(&rb.containers[idx], &c)
		if !result.isEmpty() {
			out.ctrAdd(keys[i], len(out.keys), result)
		}
	}
	return out, nil
}

// nonRunBodySize returns the on-disk size of an Array or Bitmap container
// body from its descriptor cardinality alone; it is not meaningful for Run
// bodies, whose size can only be known from the offset table or by reading
// the body itself.
func nonRunBodySize(isRun bool, cardinality uint32) int {
	if isRun {
		return 0
	}
	if cardinality <= arrayMaxSize {
		return 2 * int(cardinality)
	}
	return bitmapWords * 8
}
