// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package ipcr

// DepthTable maps a canonical 32-mer to its observed depth (spec §3/§4.7).
// Built from the selected reads, then denoised in place; read-only during
// extension.
type DepthTable struct {
	counts map[uint64]uint32

	NoiseLevel float64
	MeanDepth  float64
}

func newDepthTable() *DepthTable {
	return &DepthTable{counts: make(map[uint64]uint32)}
}

func (dt *DepthTable) get(code uint64) uint32 {
	return dt.counts[Canonical(code, 32)]
}

func (dt *DepthTable) set(code uint64, v uint32) {
	key := Canonical(code, 32)
	if v == 0 {
		delete(dt.counts, key)
		return
	}
	dt.counts[key] = v
}

func (dt *DepthTable) add(code uint64, delta uint32) {
	dt.set(code, dt.get(code)+delta)
}

// close holds iff both a and b are positive and max-min <= max/2 (spec
// §4.7).
func closeDepth(a, b uint32) bool {
	if a == 0 || b == 0 {
		return false
	}
	max, min := a, b
	if min > max {
		max, min = min, max
	}
	return float64(max-min) <= float64(max)/2
}

// tileCodes packs every clean (no N) 32-mer of seq, left to right,
// returning their left-justified (non-canonical) codes in read order.
// Windows containing an N are silently dropped (spec §7).
func tileCodes(seq []byte) []uint64 {
	if len(seq) < 32 {
		return nil
	}
	out := make([]uint64, 0, len(seq)-31)
	t := NewTiler(seq, 32)
	for {
		code, _, clean, ok := t.Next()
		if !ok {
			break
		}
		if !clean {
			continue
		}
		out = append(out, code)
	}
	return out
}

// harmonicMeanAbove returns the harmonic mean of every count in dt strictly
// above minDepth (spec §4.7).
func (dt *DepthTable) harmonicMeanAbove(minDepth int) float64 {
	var n int
	var sumInv float64
	for _, c := range dt.counts {
		if int(c) <= minDepth {
			continue
		}
		n++
		sumInv += 1 / float64(c)
	}
	if n == 0 || sumInv == 0 {
		return 0
	}
	return float64(n) / sumInv
}

// recomputeSummary derives NoiseLevel and MeanDepth from the current
// counts (spec §4.7): noiseLevel = max(minDepth, mean/10), meanDepth =
// max(mean, 5*noiseLevel).
func (dt *DepthTable) recomputeSummary(minDepth int) {
	mean := dt.harmonicMeanAbove(minDepth)
	noise := mean / 10
	if float64(minDepth) > noise {
		noise = float64(minDepth)
	}
	md := mean
	if 5*noise > md {
		md = 5 * noise
	}
	dt.NoiseLevel = noise
	dt.MeanDepth = md
}

// BuildDepthTable tiles every selected read for 32-mers (spec §4.7),
// inserting canonical forms and incrementing counts, computes the initial
// noise/mean summary, runs the denoising pass over every read, and
// recomputes the summary from the denoised table.
func BuildDepthTable(reads []ReadRecord, minDepth int) *DepthTable {
	dt := newDepthTable()
	for _, r := range reads {
		for _, code := range tileCodes(r.Seq) {
			dt.add(code, 1)
		}
	}
	dt.recomputeSummary(minDepth)

	for _, r := range reads {
		dt.denoiseRead(r.Seq)
	}
	dt.recomputeSummary(minDepth)
	return dt
}

// denoiseRead walks one read's 32-mers left to right, culling kMers that
// look like sequencing-error branches off a deeper, better-supported
// neighbour and propagating the cull forward (spec §4.7).
func (dt *DepthTable) denoiseRead(seq []byte) {
	codes := tileCodes(seq)
	n := len(codes)
	if n == 0 {
		return
	}

	previousDepth := dt.get(codes[0])
	i := 1
	for i < n {
		code := codes[i]
		d := dt.get(code)

		if d == 0 || closeDepth(d, previousDepth) || d > previousDepth {
			previousDepth = d
			i++
			continue
		}

		var followingDepth uint32
		if i+1 < n {
			followingDepth = dt.get(codes[i+1])
		}
		if closeDepth(d, followingDepth) {
			previousDepth = d
			i++
			continue
		}

		deepestDepth, deepestMer := dt.deepestVariant(code)

		cull := float64(d) < dt.NoiseLevel ||
			(deepestDepth > d && float64(d) < float64(deepestDepth)/100 && float64(d) < dt.MeanDepth/2)
		if !cull {
			previousDepth = d
			i++
			continue
		}

		dt.set(code, 0)
		if deepestMer != code && deepestDepth > d {
			dt.add(deepestMer, d)
		}

		j := dt.propagateCull(codes, i+1, d)
		previousDepth = 0
		i = j + 1
	}
}

// deepestVariant returns the depth and code of the deepest of the four
// last-base variants of code (spec §4.7's "form the four last-base
// variants; find the deepest").
func (dt *DepthTable) deepestVariant(code uint64) (depth uint32, mer uint64) {
	for _, v := range VariantsLastBase(code, 32) {
		if vd := dt.get(v); vd > depth {
			depth, mer = vd, v
		}
	}
	return depth, mer
}

// propagateCull advances from index start, culling every kMer whose depth
// is <= culledDepth, stopping at the first that rises above it (spec
// §4.7). If that rising kMer has a deeper last-base variant, the rising
// kMer is culled too and its count transferred. Returns the index it
// stopped at.
func (dt *DepthTable) propagateCull(codes []uint64, start int, culledDepth uint32) int {
	j := start
	n := len(codes)
	for j < n {
		dj := dt.get(codes[j])
		if dj > culledDepth {
			bestDepth, bestMer := dt.deepestVariant(codes[j])
			if bestMer != codes[j] && bestDepth > dj {
				dt.set(codes[j], 0)
				dt.add(bestMer, dj)
			}
			break
		}
		dt.set(codes[j], 0)
		j++
	}
	return j
}
