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

import (
	"bytes"
	"testing"
)

// minimalPrimerSet builds a PrimerSet with an exact-match-only terminating
// set, bypassing NewPrimerSet's mismatch-variant expansion so extension
// fixtures can't collide with it by chance.
func minimalPrimerSet(length int, terminating ...uint64) *PrimerSet {
	ps := &PrimerSet{
		Length:      length,
		forward:     map[uint64]struct{}{},
		reverse:     map[uint64]struct{}{},
		starting:    map[uint64]struct{}{},
		terminating: map[uint64]struct{}{},
	}
	for _, c := range terminating {
		ps.terminating[c] = struct{}{}
	}
	return ps
}

func TestExtendRejectsShortStart(t *testing.T) {
	ext := NewExtender(newDepthTable(), emptyContextTables(), minimalPrimerSet(20))
	short := []byte("ACGT")
	seq, reached := ext.Extend(short)
	if reached || !bytes.Equal(seq, short) {
		t.Error("expected a sub-32-base start to be returned unchanged with reached=false")
	}
}

func TestExtendDeadEndsWithNoCandidates(t *testing.T) {
	start := periodicACGT(32)
	ext := NewExtender(newDepthTable(), emptyContextTables(), minimalPrimerSet(20))
	seq, reached := ext.Extend(start)
	if reached {
		t.Error("expected reached=false with no depth support at all")
	}
	if !bytes.Equal(seq, start) {
		t.Error("expected the read to come back unextended when every candidate is dead")
	}
}

func TestExtendDeterministicWalkReachesTerminalPrimer(t *testing.T) {
	// a 32-base run, then the reverse primer verbatim, then 12 trailing
	// bases so the terminal window is full length.
	fullSeq := concatBytes(periodicACGT(32), []byte(testReversePrimer), periodicACGT(12))

	dt := newDepthTable()
	for off := 1; off+32 <= len(fullSeq); off++ {
		code, clean := PackKmer(fullSeq, off, 32)
		if !clean {
			t.Fatalf("fixture window at %d unexpectedly dirty", off)
		}
		dt.set(code, 10)
	}
	dt.NoiseLevel = 1
	dt.MeanDepth = 5

	termCode, _ := PackKmer([]byte(testReversePrimer), 0, 20)
	ps := minimalPrimerSet(20, termCode)
	ext := NewExtender(dt, emptyContextTables(), ps)

	seq, reached := ext.Extend(fullSeq[:32])
	if !reached {
		t.Fatal("expected the deterministic walk to reach the terminal primer")
	}
	if !bytes.Equal(seq, fullSeq) {
		t.Errorf("got %s\nwant %s", seq, fullSeq)
	}
}

func TestExtendLoopTrapStopsOnRevisitedKmer(t *testing.T) {
	// a purely period-4 sequence: the 32-mer at offset 4 is byte-identical
	// to the one at offset 0, so the loop trap must fire on the second lap.
	fullSeq := periodicACGT(100)

	code0, _ := PackKmer(fullSeq, 0, 32)
	code1, _ := PackKmer(fullSeq, 1, 32)
	code2, _ := PackKmer(fullSeq, 2, 32)
	code3, _ := PackKmer(fullSeq, 3, 32)
	code4, _ := PackKmer(fullSeq, 4, 32)
	if code4 != code0 {
		t.Fatal("fixture error: period-4 sequence must repeat its 32-mer every 4 bases")
	}

	dt := newDepthTable()
	dt.set(code1, 10)
	dt.set(code2, 10)
	dt.set(code3, 10)
	dt.set(code0, 10) // serves as the (code3 -> code4==code0) step

	ps := minimalPrimerSet(20) // no terminating primer can ever match
	ext := NewExtender(dt, emptyContextTables(), ps)

	seq, reached := ext.Extend(fullSeq[:32])
	if reached {
		t.Error("a purely cyclic walk must never reach a terminal primer")
	}
	if len(seq) != 36 {
		t.Errorf("expected the walk to stop after 4 steps (len 36), got len %d", len(seq))
	}
	if !bytes.Equal(seq, fullSeq[:36]) {
		t.Errorf("got %s, want %s", seq, fullSeq[:36])
	}
}
