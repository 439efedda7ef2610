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

import "testing"

func TestTilerCleanWindows(t *testing.T) {
	seq := []byte("ACGTACGTTTGGCCAATTGGCCAATTGGCCAATTGG")
	k := 20
	tl := NewTiler(seq, k)
	offset := 0
	for {
		code, pos, clean, ok := tl.Next()
		if !ok {
			break
		}
		if pos != offset {
			t.Fatalf("expected offset %d, got %d", offset, pos)
		}
		want, wantClean := PackKmer(seq, offset, k)
		if !clean || !wantClean {
			t.Fatalf("offset %d: unexpected dirty window", offset)
		}
		if code != want {
			t.Errorf("offset %d: Tiler code %x != PackKmer %x", offset, code, want)
		}
		if tl.Pos() != pos {
			t.Errorf("Pos() = %d, want %d", tl.Pos(), pos)
		}
		offset++
	}
	if offset != len(seq)-k+1 {
		t.Errorf("visited %d windows, want %d", offset, len(seq)-k+1)
	}
}

func TestTilerShortSequence(t *testing.T) {
	tl := NewTiler([]byte("ACGT"), 20)
	if _, _, _, ok := tl.Next(); ok {
		t.Error("expected ok=false for a sequence shorter than k")
	}
}

func TestTilerSkipsDirtyWindow(t *testing.T) {
	// a run of Ns at offsets 5-9; any window spanning one must report
	// clean=false, and windows once they have slid out must report
	// clean=true again.
	seq := []byte("ACGTANNNNNGTACGTACGTACGTACGTACGTACGTACGT")
	seq[5] = 'N'
	k := 10
	tl := NewTiler(seq, k)
	sawDirty := false
	for {
		_, pos, clean, ok := tl.Next()
		if !ok {
			break
		}
		containsN := false
		for i := pos; i < pos+k; i++ {
			if seq[i] == 'N' {
				containsN = true
				break
			}
		}
		if containsN && clean {
			t.Errorf("offset %d: window contains N but reported clean", pos)
		}
		if containsN {
			sawDirty = true
		}
		if !containsN && !clean {
			t.Errorf("offset %d: window has no N but reported dirty", pos)
		}
	}
	if !sawDirty {
		t.Fatal("expected at least one dirty window in this fixture")
	}
}
