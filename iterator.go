// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
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

// Tiler walks fixed-length windows across a read, incrementally packing
// each one and tracking how many non-ACGT bases currently sit inside the
// window so a caller can skip it without rescanning (spec §7: "kMer
// silently skipped; read kept").
type Tiler struct {
	seq []byte
	k   int

	pos     int // offset of the current window; -1 before the first call
	code    uint64
	bad     int  // count of non-ACGT bases currently inside the window
	started bool
}

// NewTiler returns a Tiler over seq with window length k. seq may be
// shorter than k, in which case Next always reports ok=false.
func NewTiler(seq []byte, k int) *Tiler {
	return &Tiler{seq: seq, k: k, pos: -1}
}

// Next returns the next window's packed (left-justified) code, its start
// offset, and whether every base in the window is strict ACGT. ok is false
// once the read is exhausted.
func (t *Tiler) Next() (code uint64, offset int, clean bool, ok bool) {
	if len(t.seq) < t.k {
		return 0, 0, false, false
	}

	if !t.started {
		t.pos = 0
		t.code, clean = PackKmer(t.seq, 0, t.k)
		t.bad = 0
		if !clean {
			t.bad = countBad(t.seq, 0, t.k)
		}
		t.started = true
		return t.code, t.pos, t.bad == 0, true
	}

	next := t.pos + t.k
	if next >= len(t.seq) {
		return 0, 0, false, false
	}

	leaving := t.seq[t.pos]
	entering := t.seq[next]

	var ok2 bool
	t.code, ok2 = ShiftIn(t.code, t.k, entering)
	if !ok2 {
		t.bad++
	}
	if _, leavingOK := baseCode(leaving); !leavingOK {
		t.bad--
	}
	t.pos++

	return t.code, t.pos, t.bad == 0, true
}

// Pos returns the offset of the window last returned by Next.
func (t *Tiler) Pos() int {
	return t.pos
}

func countBad(seq []byte, offset, k int) int {
	n := 0
	for i := 0; i < k; i++ {
		if _, ok := baseCode(seq[offset+i]); !ok {
			n++
		}
	}
	return n
}
