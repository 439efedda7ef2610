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

func mustPrimerSet(t *testing.T) *PrimerSet {
	t.Helper()
	ps, err := NewPrimerSet(testForwardPrimer, testReversePrimer)
	if err != nil {
		t.Fatal(err)
	}
	return ps
}

func TestScanFP(t *testing.T) {
	ps := mustPrimerSet(t)
	seq := append([]byte("GGGG"), []byte(testForwardPrimer)...)
	seq = append(seq, bytes.Repeat([]byte("T"), 20)...)
	tag, pos, found := ScanPrimers(ps, seq)
	if !found || tag != FP || pos != 4 {
		t.Fatalf("got tag=%v pos=%d found=%v, want FP at 4", tag, pos, found)
	}
	trimmed, _, hasEnding := TrimAtPrimer(seq, ps.Length, tag, pos)
	if !bytes.Equal(trimmed, seq[4:]) {
		t.Errorf("FP trim should start the read at the primer")
	}
	if hasEnding {
		t.Error("a starting match never produces an ending k-mer")
	}
}

func TestScanRP(t *testing.T) {
	ps := mustPrimerSet(t)
	rcReverse := reverseComplementSeq([]byte(testReversePrimer))
	// "GGGG" would make offset 0 a reverse-primer variant with two head
	// mismatches (GG for TT); "AAAA" leaves offset 4 the first match.
	seq := append([]byte("AAAA"), rcReverse...)
	seq = append(seq, bytes.Repeat([]byte("T"), 20)...)
	tag, pos, found := ScanPrimers(ps, seq)
	if !found || tag != RP || pos != 4 {
		t.Fatalf("got tag=%v pos=%d found=%v, want RP at 4", tag, pos, found)
	}
}

func TestScanFPPrime(t *testing.T) {
	// exact-match set: with mismatch variants, the window two bases before
	// RC(forward) is itself a forward variant for this self-similar primer
	// (whatever the two prefix bases), so FP would win there.
	rcForward := reverseComplementSeq([]byte(testForwardPrimer))
	ps := primerSetForTrim(testForwardPrimer, string(rcForward))
	prefix := bytes.Repeat([]byte("T"), 20)
	seq := append(append([]byte{}, prefix...), rcForward...)
	tag, pos, found := ScanPrimers(ps, seq)
	if !found || tag != FPPrime {
		t.Fatalf("got tag=%v found=%v, want FP'", tag, found)
	}
	if pos != len(prefix) {
		t.Fatalf("got pos=%d, want %d", pos, len(prefix))
	}
	trimmed, ek, hasEnding := TrimAtPrimer(seq, ps.Length, tag, pos)
	if !bytes.Equal(trimmed, seq[:pos+ps.Length]) {
		t.Error("FP' trim should end the read at pos+primerLength")
	}
	if !hasEnding {
		t.Fatal("expected an ending 32-mer when >=32 bases precede the primer")
	}
	want, clean := PackKmer(seq, pos+ps.Length-32, 32)
	if !clean || ek != want {
		t.Errorf("ending k-mer %x != expected %x", ek, want)
	}
}

func TestScanRPPrime(t *testing.T) {
	ps := mustPrimerSet(t)
	prefix := bytes.Repeat([]byte("T"), 20)
	seq := append(append([]byte{}, prefix...), []byte(testReversePrimer)...)
	tag, pos, found := ScanPrimers(ps, seq)
	if !found || tag != RPPrime {
		t.Fatalf("got tag=%v found=%v, want RP'", tag, found)
	}
	if pos != len(prefix) {
		t.Fatalf("got pos=%d, want %d", pos, len(prefix))
	}
}

func TestScanNoMatch(t *testing.T) {
	ps := mustPrimerSet(t)
	seq := bytes.Repeat([]byte("T"), 60)
	if _, _, found := ScanPrimers(ps, seq); found {
		t.Error("expected no primer match in an all-T read")
	}
}

func TestScanDeferredOnNoMatch(t *testing.T) {
	ps := mustPrimerSet(t)
	rec := ReadRecord{Header: "r1", Seq: bytes.Repeat([]byte("T"), 60)}
	out, _, hasEnding, matched := Scan(ps, rec)
	if matched {
		t.Fatal("expected matched=false")
	}
	if hasEnding {
		t.Error("no ending k-mer should be reported on a non-match")
	}
	if !bytes.Equal(out.Seq, rec.Seq) {
		t.Error("an unmatched read must be returned unchanged")
	}
}
