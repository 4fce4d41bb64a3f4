// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodecRoundtripNoRun(t *testing.T) {
	rb := FromValues(1, 2, 3, 70000, 140000, 140001, 140002)
	buf := rb.ToBytes()

	got, err := FromBytes(buf)
	assert.NoError(t, err)
	assert.True(t, rb.Equals(got))
}

func TestCodecRoundtripWithRun(t *testing.T) {
	rb := NewBitmap32()
	rb.InsertRange(0, 999)
	rb.Optimize()
	assert.EqualValues(t, kindRun, rb.containers[0].kind)

	buf := rb.ToBytes()
	got, err := FromBytes(buf)
	assert.NoError(t, err)
	assert.True(t, rb.Equals(got))
	assert.EqualValues(t, kindRun, got.containers[0].kind)
}

func TestCodecRoundtripManyContainers(t *testing.T) {
	rb := NewBitmap32()
	for i := uint32(0); i < 6; i++ {
		rb.Insert(i * 100000)
	}
	buf := rb.ToBytes()

	got, err := FromBytes(buf)
	assert.NoError(t, err)
	assert.True(t, rb.Equals(got))
}

func TestCodecUnknownCookie(t *testing.T) {
	_, err := FromBytes([]byte{0xFF, 0xFF, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrUnknownCookie)
}

func TestCodecWriteToReader(t *testing.T) {
	rb := FromValues(1, 65537, 131073)
	var buf bytes.Buffer
	n, err := rb.WriteTo(&buf)
	assert.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)

	got, err := ReadFromReader(&buf)
	assert.NoError(t, err)
	assert.True(t, rb.Equals(got))
}

func TestCodecMalformedArray(t *testing.T) {
	rb := FromValues(1, 2, 3)
	buf := rb.ToBytes()
	// swap the low bytes of the last two array values (2 and 3) so the
	// payload is no longer strictly increasing.
	n := len(buf)
	buf[n-2], buf[n-4] = buf[n-4], buf[n-2]
	_, err := FromBytes(buf)
	assert.ErrorIs(t, err, ErrMalformedArray)
}

func TestCodecMalformedRun(t *testing.T) {
	rb := NewBitmap32()
	rb.InsertRange(0, 9)
	rb.InsertRange(20, 29)
	rb.Optimize()
	buf := rb.ToBytes()

	// the two runs are [0,9] and [20,29]; rewrite the second run's start
	// so it overlaps the first, which FromBytes must reject.
	idx := bytes.Index(buf, []byte{20, 0})
	assert.NotEqual(t, -1, idx)
	buf[idx] = 5

	_, err := FromBytes(buf)
	assert.ErrorIs(t, err, ErrMalformedRun)
}

func TestIntersectionWithSerialized(t *testing.T) {
	a := FromValues(1, 2, 3, 70000, 140000)
	b := FromValues(2, 3, 4, 70000, 150000)

	buf := b.ToBytes()
	got, err := a.IntersectionWithSerialized(bytes.NewReader(buf))
	assert.NoError(t, err)

	want := Intersection(a, b)
	assert.True(t, want.Equals(got))
}

func TestIntersectionWithSerializedSkipsIrrelevantMalformed(t *testing.T) {
	a := FromValues(1, 2, 140000)
	b := FromValues(1, 2, 70000, 70001, 140000)
	buf := b.ToBytes()

	// Corrupt the key-70000 container's array body, which a doesn't share a
	// key with, so it is no longer strictly increasing. Since it isn't the
	// last container, this exercises the discard-skip path rather than the
	// early-return used for a trailing irrelevant container.
	idx := bytes.Index(buf, []byte{0x70, 0x11, 0x71, 0x11})
	assert.NotEqual(t, -1, idx)
	buf[idx], buf[idx+2] = buf[idx+2], buf[idx]

	got, err := a.IntersectionWithSerialized(bytes.NewReader(buf))
	assert.NoError(t, err)

	want := Intersection(a, b)
	assert.True(t, want.Equals(got))
}

func TestCodecSizeExceedsUniverse(t *testing.T) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(cookieNoRun))
	binary.LittleEndian.PutUint32(buf[4:8], 70000)

	_, err := FromBytes(buf)
	assert.ErrorIs(t, err, ErrSizeExceedsUniverse)

	_, err = NewBitmap32().IntersectionWithSerialized(bytes.NewReader(buf))
	assert.ErrorIs(t, err, ErrSizeExceedsUniverse)
}
