// Command roaring-bench compares this module's Bitmap32 against
// github.com/RoaringBitmap/roaring across insertion, set algebra, range
// iteration and serialization, printing a tinybench table and persisting
// results so repeat runs show a delta.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand/v2"

	ref "github.com/RoaringBitmap/roaring"
	roaring "github.com/arrowgrid/roaring"
	"github.com/arrowgrid/roaring/tinybench"
)

var sizes = []int{1_000, 100_000}

func main() {
	file := flag.String("file", tinybench.DefaultFilename, "results file to persist and diff against")
	filter := flag.String("filter", "", "only run benchmarks whose name has this prefix")
	samples := flag.Int("samples", tinybench.DefaultSamples, "number of samples to collect per benchmark")
	duration := flag.Duration("duration", tinybench.DefaultDuration, "how long to run each sample")
	flag.Parse()

	tinybench.Run(func(r *tinybench.Runner) {
		runInsertContainsRemove(r)
		runSetAlgebra(r)
		runRange(r)
		runCodec(r)
	},
		tinybench.WithReference(),
		tinybench.WithFile(*file),
		tinybench.WithFilter(*filter),
		tinybench.WithSamples(*samples),
		tinybench.WithDuration(*duration),
	)
}

type shape struct {
	name string
	gen  func(size int) []uint32
}

var shapes = []shape{
	{"seq", dataSeq},
	{"rnd", dataRand},
	{"sps", dataSparse},
	{"dns", dataDense},
}

func dataSeq(size int) []uint32 {
	data := make([]uint32, size)
	for i := range data {
		data[i] = uint32(i)
	}
	return data
}

func dataRand(size int) []uint32 {
	data := make([]uint32, size)
	for i := range data {
		data[i] = uint32(rand.IntN(size * 4))
	}
	return data
}

func dataSparse(size int) []uint32 {
	data := make([]uint32, size)
	for i := range data {
		data[i] = uint32(i * 1000)
	}
	return data
}

func dataDense(size int) []uint32 {
	data := make([]uint32, size)
	for i := range data {
		data[i] = uint32(rand.IntN(size/10 + 1))
	}
	return data
}

func formatSize(size int) string {
	if size >= 1_000_000 {
		return fmt.Sprintf("%.0fM", float64(size)/1e6)
	}
	if size >= 1_000 {
		return fmt.Sprintf("%.0fK", float64(size)/1e3)
	}
	return fmt.Sprintf("%d", size)
}

// halfFilled builds a Bitmap32 and a reference *ref.Bitmap over the same
// half-random subset of data, so both start from an equivalent state.
func halfFilled(data []uint32) (*roaring.Bitmap32, *ref.Bitmap) {
	ours := roaring.NewBitmap32()
	theirs := ref.NewBitmap()
	for _, v := range data {
		if rand.IntN(2) == 0 {
			ours.Insert(v)
			theirs.Add(v)
		}
	}
	return ours, theirs
}

func runInsertContainsRemove(b *tinybench.Runner) {
	ops := []struct {
		name   string
		ours   func(*roaring.Bitmap32, uint32)
		theirs func(*ref.Bitmap, uint32)
	}{
		{"insert", func(bm *roaring.Bitmap32, v uint32) { bm.Insert(v) }, func(bm *ref.Bitmap, v uint32) { bm.Add(v) }},
		{"contains", func(bm *roaring.Bitmap32, v uint32) { bm.Contains(v) }, func(bm *ref.Bitmap, v uint32) { bm.Contains(v) }},
		{"remove", func(bm *roaring.Bitmap32, v uint32) { bm.Remove(v) }, func(bm *ref.Bitmap, v uint32) { bm.Remove(v) }},
	}

	for _, op := range ops {
		for _, size := range sizes {
			for _, sh := range shapes {
				data := sh.gen(size)
				ours, theirs := halfFilled(data)

				name := fmt.Sprintf("%s %s (%s)", op.name, formatSize(size), sh.name)
				b.Run(name,
					func() { op.ours(ours, data[rand.IntN(len(data))]) },
					func() { op.theirs(theirs, data[rand.IntN(len(data))]) },
				)
			}
		}
	}
}

func runSetAlgebra(b *tinybench.Runner) {
	ops := []struct {
		name   string
		ours   func(dst, src *roaring.Bitmap32)
		theirs func(dst, src *ref.Bitmap)
	}{
		{"or", func(dst, src *roaring.Bitmap32) { dst.Or(src) }, func(dst, src *ref.Bitmap) { dst.Or(src) }},
		{"and", func(dst, src *roaring.Bitmap32) { dst.And(src) }, func(dst, src *ref.Bitmap) { dst.And(src) }},
		{"andnot", func(dst, src *roaring.Bitmap32) { dst.AndNot(src) }, func(dst, src *ref.Bitmap) { dst.AndNot(src) }},
		{"xor", func(dst, src *roaring.Bitmap32) { dst.Xor(src) }, func(dst, src *ref.Bitmap) { dst.Xor(src) }},
	}

	for _, op := range ops {
		for _, size := range sizes {
			for _, sh := range shapes {
				data := sh.gen(size)
				ours, theirs := halfFilled(data)
				oursSrc, theirsSrc := halfFilled(data)
				ours.Optimize()
				theirs.RunOptimize()
				oursSrc.Optimize()
				theirsSrc.RunOptimize()

				name := fmt.Sprintf("%s %s (%s)", op.name, formatSize(size), sh.name)
				b.Run(name,
					func() { op.ours(ours.Clone(), oursSrc) },
					func() { op.theirs(theirs.Clone(), theirsSrc) },
				)
			}
		}
	}
}

func runRange(b *tinybench.Runner) {
	for _, size := range sizes {
		for _, sh := range shapes {
			data := sh.gen(size)
			ours, theirs := halfFilled(data)

			name := fmt.Sprintf("range %s (%s)", formatSize(size), sh.name)
			b.Run(name,
				func() { ours.Range(func(uint32) bool { return true }) },
				func() { theirs.Iterate(func(uint32) bool { return true }) },
			)
		}
	}
}

func runCodec(b *tinybench.Runner) {
	const size = 100_000
	for _, sh := range shapes {
		data := sh.gen(size)
		ours, theirs := halfFilled(data)

		b.Run("write "+sh.name,
			func() {
				var buf bytes.Buffer
				_, _ = ours.WriteTo(&buf)
			},
			func() {
				var buf bytes.Buffer
				_, _ = theirs.WriteTo(&buf)
			},
		)

		ourEncoded := ours.ToBytes()
		var theirEncoded bytes.Buffer
		_, _ = theirs.WriteTo(&theirEncoded)

		b.Run("read "+sh.name,
			func() { _, _ = roaring.FromBytes(ourEncoded) },
			func() {
				dst := ref.NewBitmap()
				_, _ = dst.ReadFrom(bytes.NewReader(theirEncoded.Bytes()))
			},
		)
	}
}
